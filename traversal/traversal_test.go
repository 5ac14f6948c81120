package traversal

import (
	"errors"
	"math"
	"testing"

	"github.com/zenon18/routee-compass/structs"
	"github.com/zenon18/routee-compass/unit"
	. "github.com/zenon18/routee-compass/util"
)

func testEdge(id int32, distance float32) structs.Edge {
	return structs.Edge{
		EdgeID:   id,
		NodeA:    0,
		NodeB:    1,
		Distance: distance,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.000001
}

//*******************************************
// distance model
//*******************************************

func TestDistanceModel(t *testing.T) {
	model := NewDistanceModel(unit.KILOMETERS)

	s := model.InitialState()
	cost, s, err := model.TraversalCost(s, testEdge(0, 1500))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if !almostEqual(float64(cost), 1.5) {
		t.Error("expected cost 1.5 km, got", cost)
	}
	cost, s, err = model.TraversalCost(s, testEdge(1, 500))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if !almostEqual(float64(cost), 0.5) {
		t.Error("expected cost 0.5 km, got", cost)
	}

	summary := model.Summary(s)
	if !almostEqual(summary["distance"].(float64), 2.0) {
		t.Error("expected accumulated distance 2 km, got", summary["distance"])
	}
	if summary["distance_unit"] != "kilometers" {
		t.Error("expected unit kilometers, got", summary["distance_unit"])
	}
}

func TestDistanceModelEstimate(t *testing.T) {
	model := NewDistanceModel(unit.KILOMETERS)

	estimate := model.CostEstimate(2500)
	if !almostEqual(float64(estimate), 2.5) {
		t.Error("expected estimate 2.5 km, got", estimate)
	}
}

//*******************************************
// speed model
//*******************************************

func testSpeedModel(t *testing.T) *SpeedModel {
	speeds := NewArray[unit.Speed](3)
	speeds[0] = 36
	speeds[1] = 72
	model, err := NewSpeedModel(speeds, 72)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	return model
}

func TestSpeedModel(t *testing.T) {
	model := testSpeedModel(t)

	// 1000 m at 36 kph (10 mps) take 100 s
	s := model.InitialState()
	cost, s, err := model.TraversalCost(s, testEdge(0, 1000))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if !almostEqual(float64(cost), 100) {
		t.Error("expected cost 100 s, got", cost)
	}

	// edge 2 has no speed entry, falls back to the 72 kph maximum
	cost, s, err = model.TraversalCost(s, testEdge(2, 1000))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if !almostEqual(float64(cost), 50) {
		t.Error("expected cost 50 s, got", cost)
	}

	summary := model.Summary(s)
	if !almostEqual(summary["distance"].(float64), 2000) {
		t.Error("expected accumulated distance 2000 m, got", summary["distance"])
	}
	if !almostEqual(summary["time"].(float64), 150) {
		t.Error("expected accumulated time 150 s, got", summary["time"])
	}
}

func TestSpeedModelEstimateAdmissible(t *testing.T) {
	model := testSpeedModel(t)

	// the estimate assumes the maximum speed, so it never exceeds the
	// cost of an actual edge of the same length
	for _, id := range []int32{0, 1, 2} {
		cost, _, err := model.TraversalCost(model.InitialState(), testEdge(id, 1000))
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		estimate := model.CostEstimate(1000)
		if estimate > cost {
			t.Error("estimate", estimate, "exceeds cost", cost, "of edge", id)
		}
	}
}

func TestSpeedModelBuildError(t *testing.T) {
	_, err := NewSpeedModel(NewArray[unit.Speed](0), 0)
	if !errors.Is(err, ErrBuild) {
		t.Error("expected build error for non-positive max speed, got", err)
	}
}

//*******************************************
// energy model
//*******************************************

// prediction stub with a fixed per-distance rate
type constRateModel struct {
	rate unit.EnergyRate
}

func (self *constRateModel) Predict(speed unit.Speed, speed_unit unit.SpeedUnit, grade unit.Grade, grade_unit unit.GradeUnit) (unit.EnergyRate, unit.EnergyRateUnit, error) {
	return self.rate, unit.KILOWATT_HOURS_PER_KM, nil
}

func testEnergyModel(t *testing.T, stop_cost unit.Energy) *EnergyModel {
	predictor := &constRateModel{rate: 0.2}
	model, err := NewEnergyModel(predictor, testSpeedModel(t), 0.1, unit.KILOWATT_HOURS_PER_KM, stop_cost)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	return model
}

func TestEnergyModel(t *testing.T) {
	model := testEnergyModel(t, 0)

	// 1000 m at 0.2 kWh/km consume 0.2 kWh
	s := model.InitialState()
	cost, s, err := model.TraversalCost(s, testEdge(0, 1000))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if !almostEqual(float64(cost), 0.2) {
		t.Error("expected cost 0.2 kWh, got", cost)
	}

	summary := model.Summary(s)
	if !almostEqual(summary["energy"].(float64), 0.2) {
		t.Error("expected accumulated energy 0.2 kWh, got", summary["energy"])
	}
	if summary["energy_unit"] != "kilowatt_hours" {
		t.Error("expected unit kilowatt_hours, got", summary["energy_unit"])
	}
	if !almostEqual(summary["time"].(float64), 100) {
		t.Error("expected accumulated time 100 s, got", summary["time"])
	}
}

func TestEnergyModelStopCosts(t *testing.T) {
	model := testEnergyModel(t, 0.05)

	base_edge := testEdge(0, 1000)
	base_cost, _, err := model.TraversalCost(model.InitialState(), base_edge)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}

	stop_edge := base_edge
	stop_edge.StopSign = true
	stop_cost, _, err := model.TraversalCost(model.InitialState(), stop_edge)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if !almostEqual(float64(stop_cost-base_cost), 0.05) {
		t.Error("expected stop sign to add 0.05 kWh, got", stop_cost-base_cost)
	}

	light_edge := base_edge
	light_edge.TrafficLight = true
	light_cost, _, err := model.TraversalCost(model.InitialState(), light_edge)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if !almostEqual(float64(light_cost-base_cost), 0.025) {
		t.Error("expected traffic light to add 0.025 kWh, got", light_cost-base_cost)
	}
}

func TestEnergyModelEstimateAdmissible(t *testing.T) {
	model := testEnergyModel(t, 0.05)

	cost, _, err := model.TraversalCost(model.InitialState(), testEdge(0, 1000))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	estimate := model.CostEstimate(1000)
	if estimate > cost {
		t.Error("estimate", estimate, "exceeds actual cost", cost)
	}
}

func TestEnergyModelBuildErrors(t *testing.T) {
	speed_model := testSpeedModel(t)
	_, err := NewEnergyModel(nil, speed_model, 0.1, unit.KILOWATT_HOURS_PER_KM, 0)
	if !errors.Is(err, ErrBuild) {
		t.Error("expected build error for missing predictor, got", err)
	}
	_, err = NewEnergyModel(&constRateModel{rate: 0.2}, speed_model, -1, unit.KILOWATT_HOURS_PER_KM, 0)
	if !errors.Is(err, ErrBuild) {
		t.Error("expected build error for negative ideal rate, got", err)
	}
}

//*******************************************
// model services
//*******************************************

func TestDistanceModelService(t *testing.T) {
	service := NewDistanceModelService(unit.KILOMETERS)

	model, err := service.Build(NewDict[string, any](0))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if model.Type() != DISTANCE_MODEL {
		t.Error("expected a distance model, got", model.Type())
	}

	query := NewDict[string, any](1)
	query["distance_unit"] = "miles"
	model, err = service.Build(query)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	cost, _, err := model.TraversalCost(model.InitialState(), testEdge(0, 1609.344))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if !almostEqual(float64(cost), 1.0) {
		t.Error("expected cost 1 mile, got", cost)
	}

	query["distance_unit"] = "furlongs"
	_, err = service.Build(query)
	if !errors.Is(err, ErrBuild) {
		t.Error("expected build error for unknown unit, got", err)
	}

	query["distance_unit"] = 5
	_, err = service.Build(query)
	if !errors.Is(err, ErrBuild) {
		t.Error("expected build error for non-string parameter, got", err)
	}
}

func TestSpeedModelService(t *testing.T) {
	service, err := NewSpeedModelService("./testdata/speeds.csv", 3)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}

	// unrecognized parameters are ignored
	query := NewDict[string, any](1)
	query["vehicle"] = "compact_ev"
	model, err := service.Build(query)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	speed_model := model.(*SpeedModel)
	if speed_model.EdgeSpeed(1) != 72 {
		t.Error("expected 72 kph for edge 1, got", speed_model.EdgeSpeed(1))
	}
}

func TestSpeedModelServiceErrors(t *testing.T) {
	_, err := NewSpeedModelService("./testdata/missing.csv", 3)
	if !errors.Is(err, ErrBuild) {
		t.Error("expected build error for missing file, got", err)
	}
	// table references edge 2, which does not exist in a 2-edge graph
	_, err = NewSpeedModelService("./testdata/speeds.csv", 2)
	if !errors.Is(err, ErrBuild) {
		t.Error("expected build error for out-of-range edge, got", err)
	}
}

func TestEnergyModelService(t *testing.T) {
	speed_service, err := NewSpeedModelService("./testdata/speeds.csv", 3)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	service, err := NewEnergyModelService([]VehicleConfig{
		{
			Name:           "compact_ev",
			ModelFile:      "./testdata/compact_ev.json",
			IdealRate:      0.09,
			EnergyRateUnit: "kilowatt_hours_per_km",
			StopCost:       0.05,
		},
	}, speed_service)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}

	// no vehicle parameter selects the first configured vehicle
	model, err := service.Build(NewDict[string, any](0))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if model.Type() != ENERGY_MODEL {
		t.Error("expected an energy model, got", model.Type())
	}

	cost, _, err := model.TraversalCost(model.InitialState(), testEdge(0, 1000))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if cost <= 0 {
		t.Error("expected positive energy cost, got", cost)
	}

	query := NewDict[string, any](1)
	query["vehicle"] = "road_train"
	_, err = service.Build(query)
	if !errors.Is(err, ErrBuild) {
		t.Error("expected build error for unknown vehicle, got", err)
	}
}

func TestEnergyModelServiceErrors(t *testing.T) {
	speed_service, err := NewSpeedModelService("./testdata/speeds.csv", 3)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	_, err = NewEnergyModelService(nil, speed_service)
	if !errors.Is(err, ErrBuild) {
		t.Error("expected build error for empty vehicle list, got", err)
	}
	_, err = NewEnergyModelService([]VehicleConfig{
		{
			Name:           "compact_ev",
			ModelFile:      "./testdata/missing.json",
			EnergyRateUnit: "kilowatt_hours_per_km",
		},
	}, speed_service)
	if !errors.Is(err, ErrBuild) {
		t.Error("expected build error for missing model file, got", err)
	}
}
