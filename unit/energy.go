package unit

//*******************************************
// time
//*******************************************

type Time float64

type TimeUnit byte

const (
	SECONDS      TimeUnit = 0
	MINUTES      TimeUnit = 1
	HOURS        TimeUnit = 2
	MILLISECONDS TimeUnit = 3
)

func (self TimeUnit) String() string {
	switch self {
	case SECONDS:
		return "seconds"
	case MINUTES:
		return "minutes"
	case HOURS:
		return "hours"
	case MILLISECONDS:
		return "milliseconds"
	default:
		return "unknown"
	}
}

// conversion factors to seconds
var time_to_seconds = [...]float64{1.0, 60.0, 3600.0, 0.001}

func (self TimeUnit) Convert(value Time, to TimeUnit) Time {
	if self == to {
		return value
	}
	seconds := float64(value) * time_to_seconds[self]
	return Time(seconds / time_to_seconds[to])
}

//*******************************************
// energy
//*******************************************

type Energy float64

// Energy consumed per unit distance, the quantity returned by
// prediction models.
type EnergyRate float64

type EnergyRateUnit byte

const (
	GALLONS_GASOLINE_PER_MILE EnergyRateUnit = 0
	KILOWATT_HOURS_PER_KM     EnergyRateUnit = 1
)

func (self EnergyRateUnit) String() string {
	switch self {
	case GALLONS_GASOLINE_PER_MILE:
		return "gallons_gasoline_per_mile"
	case KILOWATT_HOURS_PER_KM:
		return "kilowatt_hours_per_km"
	default:
		return "unknown"
	}
}

func EnergyRateUnitFromString(s string) (EnergyRateUnit, bool) {
	switch s {
	case "gallons_gasoline_per_mile":
		return GALLONS_GASOLINE_PER_MILE, true
	case "kilowatt_hours_per_km":
		return KILOWATT_HOURS_PER_KM, true
	default:
		return GALLONS_GASOLINE_PER_MILE, false
	}
}

// The distance unit an energy rate is denominated in.
func (self EnergyRateUnit) AssociatedDistanceUnit() DistanceUnit {
	switch self {
	case GALLONS_GASOLINE_PER_MILE:
		return MILES
	case KILOWATT_HOURS_PER_KM:
		return KILOMETERS
	default:
		return METERS
	}
}

// Name of the energy quantity an energy rate accumulates into.
func (self EnergyRateUnit) AssociatedEnergyUnit() string {
	switch self {
	case GALLONS_GASOLINE_PER_MILE:
		return "gallons_gasoline"
	case KILOWATT_HOURS_PER_KM:
		return "kilowatt_hours"
	default:
		return "unknown"
	}
}
