package frontier

import (
	"github.com/paulmach/orb"
	"github.com/zenon18/routee-compass/state"
	"github.com/zenon18/routee-compass/structs"
	. "github.com/zenon18/routee-compass/util"
)

//*******************************************
// frontier model
//*******************************************

// Edge-admissibility predicate consulted once per candidate expansion
// edge. Returning false excludes the edge before its traversal cost is
// computed. prev is empty when expanding from the search origin.
//
// Implementations are constructed once and shared read-only between
// concurrent searches.
type IFrontierModel interface {
	Valid(prev Optional[structs.Edge], next structs.Edge, s state.TraversalState) bool
}

//*******************************************
// passthrough model
//*******************************************

var _ IFrontierModel = &PassthroughModel{}

// Default model, accepts every edge.
type PassthroughModel struct{}

func NewPassthroughModel() *PassthroughModel {
	return &PassthroughModel{}
}

func (self *PassthroughModel) Valid(prev Optional[structs.Edge], next structs.Edge, s state.TraversalState) bool {
	return true
}

//*******************************************
// grade limit model
//*******************************************

var _ IFrontierModel = &GradeLimitModel{}

// Excludes edges steeper than a maximum absolute grade (decimal).
type GradeLimitModel struct {
	max_grade float32
}

func NewGradeLimitModel(max_grade float32) *GradeLimitModel {
	return &GradeLimitModel{
		max_grade: max_grade,
	}
}

func (self *GradeLimitModel) Valid(prev Optional[structs.Edge], next structs.Edge, s state.TraversalState) bool {
	grade := next.Grade
	if grade < 0 {
		grade = -grade
	}
	return grade <= self.max_grade
}

//*******************************************
// bbox model
//*******************************************

var _ IFrontierModel = &BBoxModel{}

// Restricts the search to edges whose destination node lies inside a
// bounding box.
type BBoxModel struct {
	bound      orb.Bound
	node_geoms Array[orb.Point]
}

func NewBBoxModel(bound orb.Bound, node_geoms Array[orb.Point]) *BBoxModel {
	return &BBoxModel{
		bound:      bound,
		node_geoms: node_geoms,
	}
}

func (self *BBoxModel) Valid(prev Optional[structs.Edge], next structs.Edge, s state.TraversalState) bool {
	if int(next.NodeB) >= self.node_geoms.Length() {
		return false
	}
	return self.bound.Contains(self.node_geoms[next.NodeB])
}

//*******************************************
// turn restriction model
//*******************************************

var _ IFrontierModel = &TurnRestrictionModel{}

// Forbids specific (incoming edge, outgoing edge) transitions.
type TurnRestrictionModel struct {
	forbidden Dict[Tuple[int32, int32], bool]
}

func NewTurnRestrictionModel(restrictions []Tuple[int32, int32]) *TurnRestrictionModel {
	forbidden := NewDict[Tuple[int32, int32], bool](len(restrictions))
	for _, restriction := range restrictions {
		forbidden.Set(restriction, true)
	}
	return &TurnRestrictionModel{
		forbidden: forbidden,
	}
}

func (self *TurnRestrictionModel) Valid(prev Optional[structs.Edge], next structs.Edge, s state.TraversalState) bool {
	if !prev.HasValue() {
		return true
	}
	return !self.forbidden.ContainsKey(MakeTuple(prev.Value.EdgeID, next.EdgeID))
}

//*******************************************
// combined model
//*******************************************

var _ IFrontierModel = &CombinedModel{}

// Accepts an edge only if every inner model accepts it.
type CombinedModel struct {
	models []IFrontierModel
}

func NewCombinedModel(models ...IFrontierModel) *CombinedModel {
	return &CombinedModel{
		models: models,
	}
}

func (self *CombinedModel) Valid(prev Optional[structs.Edge], next structs.Edge, s state.TraversalState) bool {
	for _, model := range self.models {
		if !model.Valid(prev, next, s) {
			return false
		}
	}
	return true
}
