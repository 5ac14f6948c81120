package unit

import (
	"math"
	"testing"
)

func TestDistanceConvert(t *testing.T) {
	if got := KILOMETERS.Convert(1.0, METERS); got != 1000.0 {
		t.Errorf("1 km = %v m; want 1000", got)
	}
	if got := MILES.Convert(1.0, METERS); math.Abs(float64(got)-1609.344) > 1e-9 {
		t.Errorf("1 mi = %v m; want 1609.344", got)
	}
	if got := METERS.Convert(500.0, KILOMETERS); got != 0.5 {
		t.Errorf("500 m = %v km; want 0.5", got)
	}
}

func TestSpeedConvert(t *testing.T) {
	if got := KILOMETERS_PER_HOUR.Convert(36.0, METERS_PER_SECOND); math.Abs(float64(got)-10.0) > 1e-9 {
		t.Errorf("36 kph = %v mps; want 10", got)
	}
	got := KILOMETERS_PER_HOUR.Convert(100.0, MILES_PER_HOUR)
	if math.Abs(float64(got)-62.137119) > 1e-3 {
		t.Errorf("100 kph = %v mph; want ~62.14", got)
	}
}

func TestGradeConvert(t *testing.T) {
	if got := PERCENT.Convert(5.0, DECIMAL); math.Abs(float64(got)-0.05) > 1e-12 {
		t.Errorf("5%% = %v decimal; want 0.05", got)
	}
	if got := MILLIS.Convert(50.0, PERCENT); math.Abs(float64(got)-5.0) > 1e-12 {
		t.Errorf("50 millis = %v percent; want 5", got)
	}
}

func TestTimeConvert(t *testing.T) {
	if got := HOURS.Convert(1.5, MINUTES); got != 90.0 {
		t.Errorf("1.5 h = %v min; want 90", got)
	}
	if got := MILLISECONDS.Convert(1500.0, SECONDS); got != 1.5 {
		t.Errorf("1500 ms = %v s; want 1.5", got)
	}
}

func TestCostOrdering(t *testing.T) {
	if !Cost(1.0).Less(Cost(2.0)) {
		t.Errorf("1 should be less than 2")
	}
	nan := Cost(math.NaN())
	if nan.Less(Cost(1.0)) {
		t.Errorf("NaN must never win a comparison")
	}
	if !Cost(1.0).Less(nan) {
		t.Errorf("finite cost must sort before NaN")
	}
	if ZERO_COST.Add(Cost(4.0)) != Cost(4.0) {
		t.Errorf("ZERO_COST must be the additive identity")
	}
}

func TestUnitRoundTripFromString(t *testing.T) {
	for _, du := range []DistanceUnit{METERS, KILOMETERS, MILES} {
		got, ok := DistanceUnitFromString(du.String())
		if !ok || got != du {
			t.Errorf("distance unit %v did not round trip", du)
		}
	}
	if _, ok := DistanceUnitFromString("furlongs"); ok {
		t.Errorf("unknown unit should not resolve")
	}
}
