package traversal

import (
	"fmt"

	"github.com/zenon18/routee-compass/energy"
	"github.com/zenon18/routee-compass/state"
	"github.com/zenon18/routee-compass/structs"
	"github.com/zenon18/routee-compass/unit"
	. "github.com/zenon18/routee-compass/util"
)

//*******************************************
// energy model
//*******************************************

var _ ITraversalModel = &EnergyModel{}

// Energy-based traversal model backed by a prediction capability
// mapping (speed, grade) to an energy rate. Cost is the consumed
// energy.
type EnergyModel struct {
	state_model *state.StateModel
	predictor   energy.IPredictionModel
	speed_model *SpeedModel

	// best-case consumption per distance, keeps the heuristic admissible
	ideal_rate unit.EnergyRate
	rate_unit  unit.EnergyRateUnit
	// full stop costs this much extra energy; traffic lights are
	// counted as a stop half of the time
	stop_cost unit.Energy

	distance_idx int
	time_idx     int
	energy_idx   int
}

func NewEnergyModel(predictor energy.IPredictionModel, speed_model *SpeedModel, ideal_rate unit.EnergyRate, rate_unit unit.EnergyRateUnit, stop_cost unit.Energy) (*EnergyModel, error) {
	if predictor == nil {
		return nil, fmt.Errorf("%w: energy model needs a prediction model", ErrBuild)
	}
	if ideal_rate < 0 {
		return nil, fmt.Errorf("%w: negative ideal energy rate %v", ErrBuild, ideal_rate)
	}
	state_model := state.NewStateModel([]state.Feature{
		{Name: "distance", Type: "distance", Unit: unit.METERS.String()},
		{Name: "time", Type: "time", Unit: unit.SECONDS.String()},
		{Name: "energy", Type: "energy", Unit: rate_unit.AssociatedEnergyUnit()},
	})
	distance_idx, _ := state_model.IndexOf("distance")
	time_idx, _ := state_model.IndexOf("time")
	energy_idx, _ := state_model.IndexOf("energy")
	return &EnergyModel{
		state_model:  state_model,
		predictor:    predictor,
		speed_model:  speed_model,
		ideal_rate:   ideal_rate,
		rate_unit:    rate_unit,
		stop_cost:    stop_cost,
		distance_idx: distance_idx,
		time_idx:     time_idx,
		energy_idx:   energy_idx,
	}, nil
}

func (self *EnergyModel) Type() ModelType {
	return ENERGY_MODEL
}
func (self *EnergyModel) StateModel() *state.StateModel {
	return self.state_model
}
func (self *EnergyModel) InitialState() state.TraversalState {
	return self.state_model.InitialState()
}

func (self *EnergyModel) TraversalCost(prev state.TraversalState, edge structs.Edge) (unit.Cost, state.TraversalState, error) {
	speed := self.speed_model.EdgeSpeed(edge.EdgeID)
	rate, rate_unit, err := self.predictor.Predict(speed, unit.KILOMETERS_PER_HOUR, unit.Grade(edge.Grade), unit.DECIMAL)
	if err != nil {
		return unit.ZERO_COST, nil, fmt.Errorf("traversal of edge %v: %w", edge.EdgeID, err)
	}

	rate_distance := unit.METERS.Convert(unit.Distance(edge.Distance), rate_unit.AssociatedDistanceUnit())
	consumed := unit.Energy(float64(rate) * float64(rate_distance))
	if edge.StopSign {
		consumed += self.stop_cost
	}
	if edge.TrafficLight {
		consumed += self.stop_cost / 2
	}

	speed_mps := unit.KILOMETERS_PER_HOUR.Convert(speed, unit.METERS_PER_SECOND)
	time := unit.Time(float64(edge.Distance) / float64(speed_mps))

	next := prev.Copy()
	if err := self.state_model.Update(next, self.distance_idx, state.ADD, state.StateVar(edge.Distance)); err != nil {
		return unit.ZERO_COST, nil, err
	}
	if err := self.state_model.Update(next, self.time_idx, state.ADD, state.StateVar(time)); err != nil {
		return unit.ZERO_COST, nil, err
	}
	if err := self.state_model.Update(next, self.energy_idx, state.ADD, state.StateVar(consumed)); err != nil {
		return unit.ZERO_COST, nil, err
	}
	return unit.Cost(consumed), next, nil
}

func (self *EnergyModel) AccessCost(prev_edge, next_edge structs.Edge, s state.TraversalState) (unit.Cost, error) {
	return unit.ZERO_COST, nil
}

func (self *EnergyModel) CostEstimate(distance unit.Distance) unit.Cost {
	rate_distance := unit.METERS.Convert(distance, self.rate_unit.AssociatedDistanceUnit())
	return unit.Cost(float64(self.ideal_rate) * float64(rate_distance))
}

func (self *EnergyModel) Summary(s state.TraversalState) Dict[string, any] {
	summary := NewDict[string, any](6)
	summary["distance"] = float64(s[self.distance_idx])
	summary["distance_unit"] = unit.METERS.String()
	summary["time"] = float64(s[self.time_idx])
	summary["time_unit"] = unit.SECONDS.String()
	summary["energy"] = float64(s[self.energy_idx])
	summary["energy_unit"] = self.rate_unit.AssociatedEnergyUnit()
	return summary
}
