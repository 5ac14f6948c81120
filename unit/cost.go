package unit

import "math"

//*******************************************
// cost
//*******************************************

// Scalar ranking value used for frontier ordering and summing along a
// path. Additive identity is ZERO_COST.
type Cost float64

const ZERO_COST Cost = 0

var INFINITE_COST Cost = Cost(math.Inf(1))

func (self Cost) Add(other Cost) Cost {
	return self + other
}

// Total order over floating costs. NaN sorts last so a defective cost
// never wins a frontier comparison.
func (self Cost) Less(other Cost) bool {
	if math.IsNaN(float64(self)) {
		return false
	}
	if math.IsNaN(float64(other)) {
		return true
	}
	return self < other
}
