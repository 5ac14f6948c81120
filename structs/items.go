package structs

import (
	"github.com/paulmach/orb"

	"github.com/zenon18/routee-compass/unit"
)

//*******************************************
// graph structs
//*******************************************

// Directed edge between two dense node ids. Immutable once loaded.
// EdgeID mirrors the dense array index of the edge so cost models can
// key lookup tables without carrying the graph.
type Edge struct {
	EdgeID       int32
	NodeA        int32
	NodeB        int32
	Distance     float32 // meters
	Grade        float32 // decimal rise over run
	StopSign     bool
	TrafficLight bool
}

func (self Edge) DistanceIn(to unit.DistanceUnit) unit.Distance {
	return unit.METERS.Convert(unit.Distance(self.Distance), to)
}

type Node struct {
	Loc orb.Point
}
