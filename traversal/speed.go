package traversal

import (
	"fmt"

	"github.com/zenon18/routee-compass/state"
	"github.com/zenon18/routee-compass/structs"
	"github.com/zenon18/routee-compass/unit"
	. "github.com/zenon18/routee-compass/util"
)

//*******************************************
// speed model
//*******************************************

var _ ITraversalModel = &SpeedModel{}

// Time-based traversal model over a per-edge speed table. Cost is the
// travel time in seconds.
type SpeedModel struct {
	state_model  *state.StateModel
	speeds       Array[unit.Speed] // kph per edge id
	max_speed    unit.Speed        // kph, for the heuristic
	distance_idx int
	time_idx     int
}

func NewSpeedModel(speeds Array[unit.Speed], max_speed unit.Speed) (*SpeedModel, error) {
	if max_speed <= 0 {
		return nil, fmt.Errorf("%w: non-positive max speed %v", ErrBuild, max_speed)
	}
	state_model := state.NewStateModel([]state.Feature{
		{Name: "distance", Type: "distance", Unit: unit.METERS.String()},
		{Name: "time", Type: "time", Unit: unit.SECONDS.String()},
	})
	distance_idx, _ := state_model.IndexOf("distance")
	time_idx, _ := state_model.IndexOf("time")
	return &SpeedModel{
		state_model:  state_model,
		speeds:       speeds,
		max_speed:    max_speed,
		distance_idx: distance_idx,
		time_idx:     time_idx,
	}, nil
}

func (self *SpeedModel) Type() ModelType {
	return SPEED_MODEL
}
func (self *SpeedModel) StateModel() *state.StateModel {
	return self.state_model
}
func (self *SpeedModel) InitialState() state.TraversalState {
	return self.state_model.InitialState()
}

// Speed for an edge, falling back to the table maximum when the edge
// has no entry.
func (self *SpeedModel) EdgeSpeed(edge_id int32) unit.Speed {
	if int(edge_id) < self.speeds.Length() && self.speeds[edge_id] > 0 {
		return self.speeds[edge_id]
	}
	return self.max_speed
}

func (self *SpeedModel) TraversalCost(prev state.TraversalState, edge structs.Edge) (unit.Cost, state.TraversalState, error) {
	speed := unit.KILOMETERS_PER_HOUR.Convert(self.EdgeSpeed(edge.EdgeID), unit.METERS_PER_SECOND)
	time := unit.Time(float64(edge.Distance) / float64(speed))

	next := prev.Copy()
	if err := self.state_model.Update(next, self.distance_idx, state.ADD, state.StateVar(edge.Distance)); err != nil {
		return unit.ZERO_COST, nil, err
	}
	if err := self.state_model.Update(next, self.time_idx, state.ADD, state.StateVar(time)); err != nil {
		return unit.ZERO_COST, nil, err
	}
	return unit.Cost(time), next, nil
}

func (self *SpeedModel) AccessCost(prev_edge, next_edge structs.Edge, s state.TraversalState) (unit.Cost, error) {
	return unit.ZERO_COST, nil
}

func (self *SpeedModel) CostEstimate(distance unit.Distance) unit.Cost {
	max_mps := unit.KILOMETERS_PER_HOUR.Convert(self.max_speed, unit.METERS_PER_SECOND)
	return unit.Cost(float64(distance) / float64(max_mps))
}

func (self *SpeedModel) Summary(s state.TraversalState) Dict[string, any] {
	summary := NewDict[string, any](4)
	summary["distance"] = float64(s[self.distance_idx])
	summary["distance_unit"] = unit.METERS.String()
	summary["time"] = float64(s[self.time_idx])
	summary["time_unit"] = unit.SECONDS.String()
	return summary
}
