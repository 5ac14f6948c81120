package routing

import (
	"errors"
	"fmt"

	"github.com/zenon18/routee-compass/state"
	"github.com/zenon18/routee-compass/unit"
	. "github.com/zenon18/routee-compass/util"
)

// Expected failure modes of a single search, reported per query
// without affecting sibling queries.
var (
	ErrOriginUnreachable      = errors.New("origin is not part of the graph")
	ErrDestinationUnreachable = errors.New("destination is unreachable")
)

// marks the tree root
const NO_PREDECESSOR int32 = -1

//*******************************************
// search tree
//*******************************************

// Record of the cheapest known way to reach one vertex (or edge, in
// edge-oriented mode): the incoming edge, the predecessor id, the
// state before and after the traversal and the incremental cost.
type EdgeTraversal struct {
	EdgeID      int32
	Predecessor int32
	StateBefore state.TraversalState
	StateAfter  state.TraversalState
	Cost        unit.Cost
}

// Mapping from vertex id (or edge id) to its cheapest traversal
// record, forming a tree rooted at the origin. At most one entry per
// id.
type SearchTree = Dict[int32, EdgeTraversal]

// Ordered traversals from origin to destination.
type Route = []EdgeTraversal

// Walks predecessor links backward from destination and reverses into
// a route. The origin id itself carries no traversal record.
func Backtrack(tree SearchTree, origin, destination int32) (Route, error) {
	if origin == destination {
		return Route{}, nil
	}
	if !tree.ContainsKey(destination) {
		return nil, fmt.Errorf("%w: no tree entry for id %v", ErrDestinationUnreachable, destination)
	}
	route := make(Route, 0, 32)
	curr := destination
	for curr != origin {
		record, ok := tree[curr]
		if !ok {
			return nil, fmt.Errorf("%w: broken predecessor chain at id %v", ErrDestinationUnreachable, curr)
		}
		route = append(route, record)
		if record.Predecessor == NO_PREDECESSOR {
			break
		}
		curr = record.Predecessor
	}
	_Reverse(route)
	return route, nil
}

// Edge-oriented backtracking. The origin edge carries its own
// traversal record with no predecessor, so the walk runs until the
// root record and includes it.
func BacktrackEdges(tree SearchTree, destination int32) (Route, error) {
	if !tree.ContainsKey(destination) {
		return nil, fmt.Errorf("%w: no tree entry for edge %v", ErrDestinationUnreachable, destination)
	}
	route := make(Route, 0, 32)
	curr := destination
	for {
		record, ok := tree[curr]
		if !ok {
			return nil, fmt.Errorf("%w: broken predecessor chain at edge %v", ErrDestinationUnreachable, curr)
		}
		route = append(route, record)
		if record.Predecessor == NO_PREDECESSOR {
			break
		}
		curr = record.Predecessor
	}
	_Reverse(route)
	return route, nil
}

func _Reverse(route Route) {
	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
}
