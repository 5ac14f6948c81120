package unit

//*******************************************
// distance
//*******************************************

type Distance float64

const ZERO_DISTANCE Distance = 0

type DistanceUnit byte

const (
	METERS     DistanceUnit = 0
	KILOMETERS DistanceUnit = 1
	MILES      DistanceUnit = 2
)

func (self DistanceUnit) String() string {
	switch self {
	case METERS:
		return "meters"
	case KILOMETERS:
		return "kilometers"
	case MILES:
		return "miles"
	default:
		return "unknown"
	}
}

func DistanceUnitFromString(s string) (DistanceUnit, bool) {
	switch s {
	case "meters":
		return METERS, true
	case "kilometers":
		return KILOMETERS, true
	case "miles":
		return MILES, true
	default:
		return METERS, false
	}
}

// conversion factors to meters
var distance_to_meters = [...]float64{1.0, 1000.0, 1609.344}

func (self DistanceUnit) Convert(value Distance, to DistanceUnit) Distance {
	if self == to {
		return value
	}
	meters := float64(value) * distance_to_meters[self]
	return Distance(meters / distance_to_meters[to])
}
