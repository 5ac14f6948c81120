package traversal

import (
	"github.com/zenon18/routee-compass/state"
	"github.com/zenon18/routee-compass/structs"
	"github.com/zenon18/routee-compass/unit"
	. "github.com/zenon18/routee-compass/util"
)

//*******************************************
// distance model
//*******************************************

var _ ITraversalModel = &DistanceModel{}

// Minimal traversal model, cost equals edge distance in the configured
// unit.
type DistanceModel struct {
	state_model   *state.StateModel
	distance_unit unit.DistanceUnit
	distance_idx  int
}

func NewDistanceModel(distance_unit unit.DistanceUnit) *DistanceModel {
	state_model := state.NewStateModel([]state.Feature{
		{Name: "distance", Type: "distance", Unit: distance_unit.String()},
	})
	distance_idx, _ := state_model.IndexOf("distance")
	return &DistanceModel{
		state_model:   state_model,
		distance_unit: distance_unit,
		distance_idx:  distance_idx,
	}
}

func (self *DistanceModel) Type() ModelType {
	return DISTANCE_MODEL
}
func (self *DistanceModel) StateModel() *state.StateModel {
	return self.state_model
}
func (self *DistanceModel) InitialState() state.TraversalState {
	return self.state_model.InitialState()
}

func (self *DistanceModel) TraversalCost(prev state.TraversalState, edge structs.Edge) (unit.Cost, state.TraversalState, error) {
	distance := edge.DistanceIn(self.distance_unit)
	next := prev.Copy()
	err := self.state_model.Update(next, self.distance_idx, state.ADD, state.StateVar(distance))
	if err != nil {
		return unit.ZERO_COST, nil, err
	}
	return unit.Cost(distance), next, nil
}

func (self *DistanceModel) AccessCost(prev_edge, next_edge structs.Edge, s state.TraversalState) (unit.Cost, error) {
	return unit.ZERO_COST, nil
}

func (self *DistanceModel) CostEstimate(distance unit.Distance) unit.Cost {
	return unit.Cost(unit.METERS.Convert(distance, self.distance_unit))
}

func (self *DistanceModel) Summary(s state.TraversalState) Dict[string, any] {
	summary := NewDict[string, any](2)
	summary["distance"] = float64(s[self.distance_idx])
	summary["distance_unit"] = self.distance_unit.String()
	return summary
}
