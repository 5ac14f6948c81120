package traversal

import (
	"github.com/zenon18/routee-compass/state"
	"github.com/zenon18/routee-compass/structs"
	"github.com/zenon18/routee-compass/unit"
	. "github.com/zenon18/routee-compass/util"
)

//*******************************************
// traversal model interface
//*******************************************

type ModelType byte

const (
	DISTANCE_MODEL ModelType = 0
	SPEED_MODEL    ModelType = 1
	ENERGY_MODEL   ModelType = 2
)

func (self ModelType) String() string {
	switch self {
	case DISTANCE_MODEL:
		return "distance"
	case SPEED_MODEL:
		return "speed"
	case ENERGY_MODEL:
		return "energy"
	default:
		return "unknown"
	}
}

// Per-query cost function over edges.
//
// Implementations must be pure functions of their inputs so one shared
// instance can serve repeated evaluations from multiple workers.
type ITraversalModel interface {
	Type() ModelType
	StateModel() *state.StateModel

	// State at the origin before any edge is traversed.
	InitialState() state.TraversalState
	// Cost and resulting state for crossing edge from prev. The
	// returned state is a copy, never an alias of prev.
	TraversalCost(prev state.TraversalState, edge structs.Edge) (unit.Cost, state.TraversalState, error)
	// Extra cost for the transition between two consecutive edges,
	// distinct from traversing either edge alone. Defaults to zero.
	AccessCost(prev_edge, next_edge structs.Edge, s state.TraversalState) (unit.Cost, error)
	// Admissible lower bound on the cost of covering the given
	// straight-line distance (meters), used as the search heuristic.
	CostEstimate(distance unit.Distance) unit.Cost
	// Breakdown of a terminal state's dimensions for reporting.
	Summary(s state.TraversalState) Dict[string, any]
}
