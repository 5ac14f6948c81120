package unit

//*******************************************
// speed
//*******************************************

type Speed float64

type SpeedUnit byte

const (
	KILOMETERS_PER_HOUR SpeedUnit = 0
	MILES_PER_HOUR      SpeedUnit = 1
	METERS_PER_SECOND   SpeedUnit = 2
)

func (self SpeedUnit) String() string {
	switch self {
	case KILOMETERS_PER_HOUR:
		return "kph"
	case MILES_PER_HOUR:
		return "mph"
	case METERS_PER_SECOND:
		return "mps"
	default:
		return "unknown"
	}
}

func SpeedUnitFromString(s string) (SpeedUnit, bool) {
	switch s {
	case "kph":
		return KILOMETERS_PER_HOUR, true
	case "mph":
		return MILES_PER_HOUR, true
	case "mps":
		return METERS_PER_SECOND, true
	default:
		return KILOMETERS_PER_HOUR, false
	}
}

// conversion factors to meters per second
var speed_to_mps = [...]float64{1.0 / 3.6, 1609.344 / 3600.0, 1.0}

func (self SpeedUnit) Convert(value Speed, to SpeedUnit) Speed {
	if self == to {
		return value
	}
	mps := float64(value) * speed_to_mps[self]
	return Speed(mps / speed_to_mps[to])
}

//*******************************************
// grade
//*******************************************

type Grade float64

type GradeUnit byte

const (
	DECIMAL GradeUnit = 0
	PERCENT GradeUnit = 1
	MILLIS  GradeUnit = 2
)

func (self GradeUnit) String() string {
	switch self {
	case DECIMAL:
		return "decimal"
	case PERCENT:
		return "percent"
	case MILLIS:
		return "millis"
	default:
		return "unknown"
	}
}

func GradeUnitFromString(s string) (GradeUnit, bool) {
	switch s {
	case "decimal":
		return DECIMAL, true
	case "percent":
		return PERCENT, true
	case "millis":
		return MILLIS, true
	default:
		return DECIMAL, false
	}
}

// conversion factors to decimal grade
var grade_to_decimal = [...]float64{1.0, 0.01, 0.001}

func (self GradeUnit) Convert(value Grade, to GradeUnit) Grade {
	if self == to {
		return value
	}
	decimal := float64(value) * grade_to_decimal[self]
	return Grade(decimal / grade_to_decimal[to])
}
