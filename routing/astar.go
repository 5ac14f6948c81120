package routing

import (
	"fmt"

	"github.com/paulmach/orb/geo"
	"github.com/zenon18/routee-compass/frontier"
	"github.com/zenon18/routee-compass/graph"
	"github.com/zenon18/routee-compass/structs"
	"github.com/zenon18/routee-compass/termination"
	"github.com/zenon18/routee-compass/traversal"
	"github.com/zenon18/routee-compass/unit"
	. "github.com/zenon18/routee-compass/util"
)

//*******************************************
// a-star search
//*******************************************

// Outcome of one search: the tree built so far, the final counters and
// whether the termination model cut the search short. A terminated or
// exhausted search still returns its partial tree; reconstructing a
// route from it fails with ErrDestinationUnreachable when the
// destination was never settled.
type SearchResult struct {
	Tree            SearchTree
	Stats           termination.SearchStats
	TerminatedEarly bool
}

type _SearchFlag struct {
	cost    unit.Cost
	settled bool
}

// Forward a-star from origin to destination, keyed on vertex identity.
// The frontier is ordered by settled cost plus the traversal model's
// estimate over the straight-line distance to the destination; stale
// entries from re-insertion are skipped on pop.
func RunAStar(g graph.IGraph, origin, destination int32, model traversal.ITraversalModel, frontier_model frontier.IFrontierModel, termination_model termination.ITerminationModel) (*SearchResult, error) {
	if !g.IsNode(origin) {
		return nil, fmt.Errorf("%w: no vertex %v", ErrOriginUnreachable, origin)
	}
	if !g.IsNode(destination) {
		return nil, fmt.Errorf("%w: no vertex %v", ErrDestinationUnreachable, destination)
	}

	explorer := g.GetGraphExplorer()
	dest_geom := g.GetNodeGeom(destination)
	heuristic := func(node int32) unit.Cost {
		distance := unit.Distance(geo.Distance(g.GetNodeGeom(node), dest_geom))
		return model.CostEstimate(distance)
	}

	flags := NewFlags[_SearchFlag](int32(g.NodeCount()), _SearchFlag{cost: unit.INFINITE_COST})
	tree := NewDict[int32, EdgeTraversal](100)
	heap := NewMinHeap(100)
	stats := termination.NewSearchStats()
	terminated := false

	origin_flag := flags.Get(origin)
	origin_flag.cost = unit.ZERO_COST
	heap.Push(origin, heuristic(origin))

	for {
		curr, _, ok := heap.Pop()
		if !ok {
			break
		}
		stats.Iterations += 1
		// the budget is checked once per dequeue, stale pops included
		if termination_model.ShouldStop(stats) {
			terminated = true
			break
		}
		curr_flag := flags.Get(curr)
		if curr_flag.settled {
			continue
		}
		curr_flag.settled = true
		stats.TreeSize += 1
		if curr == destination {
			break
		}

		curr_state := model.InitialState()
		prev_edge := None[structs.Edge]()
		if record, ok := tree[curr]; ok {
			curr_state = record.StateAfter
			prev_edge = Some(g.GetEdge(record.EdgeID))
		}
		curr_cost := curr_flag.cost

		var expand_err error
		explorer.ForAdjacentEdges(curr, graph.FORWARD, func(ref graph.EdgeRef) {
			if expand_err != nil {
				return
			}
			other_flag := flags.Get(ref.OtherID)
			if other_flag.settled {
				return
			}
			edge := g.GetEdge(ref.EdgeID)
			if !frontier_model.Valid(prev_edge, edge, curr_state) {
				return
			}
			t_cost, next_state, err := model.TraversalCost(curr_state, edge)
			if err != nil {
				expand_err = err
				return
			}
			total := t_cost
			if prev_edge.HasValue() {
				a_cost, err := model.AccessCost(prev_edge.Value, edge, curr_state)
				if err != nil {
					expand_err = err
					return
				}
				total = total.Add(a_cost)
			}
			new_cost := curr_cost.Add(total)
			if !new_cost.Less(other_flag.cost) {
				return
			}
			other_flag.cost = new_cost
			tree.Set(ref.OtherID, EdgeTraversal{
				EdgeID:      ref.EdgeID,
				Predecessor: curr,
				StateBefore: curr_state,
				StateAfter:  next_state,
				Cost:        total,
			})
			heap.Push(ref.OtherID, new_cost.Add(heuristic(ref.OtherID)))
		})
		if expand_err != nil {
			return nil, expand_err
		}
	}

	return &SearchResult{
		Tree:            tree,
		Stats:           stats,
		TerminatedEarly: terminated,
	}, nil
}

// Forward a-star keyed on edge identity, required when cost depends on
// the incoming edge. The origin edge carries the root traversal record
// and transitions pay the model's access cost.
func RunAStarEdgeOriented(g graph.IGraph, origin, destination int32, model traversal.ITraversalModel, frontier_model frontier.IFrontierModel, termination_model termination.ITerminationModel) (*SearchResult, error) {
	if !g.IsEdge(origin) {
		return nil, fmt.Errorf("%w: no edge %v", ErrOriginUnreachable, origin)
	}
	if !g.IsEdge(destination) {
		return nil, fmt.Errorf("%w: no edge %v", ErrDestinationUnreachable, destination)
	}

	explorer := g.GetGraphExplorer()
	dest_geom := g.GetNodeGeom(g.GetEdge(destination).NodeB)
	heuristic := func(edge structs.Edge) unit.Cost {
		distance := unit.Distance(geo.Distance(g.GetNodeGeom(edge.NodeB), dest_geom))
		return model.CostEstimate(distance)
	}

	flags := NewFlags[_SearchFlag](int32(g.EdgeCount()), _SearchFlag{cost: unit.INFINITE_COST})
	tree := NewDict[int32, EdgeTraversal](100)
	heap := NewMinHeap(100)
	stats := termination.NewSearchStats()
	terminated := false

	initial_state := model.InitialState()
	origin_edge := g.GetEdge(origin)
	if !frontier_model.Valid(None[structs.Edge](), origin_edge, initial_state) {
		return nil, fmt.Errorf("%w: edge %v is excluded by the frontier model", ErrOriginUnreachable, origin)
	}
	origin_cost, origin_state, err := model.TraversalCost(initial_state, origin_edge)
	if err != nil {
		return nil, err
	}
	tree.Set(origin, EdgeTraversal{
		EdgeID:      origin,
		Predecessor: NO_PREDECESSOR,
		StateBefore: initial_state,
		StateAfter:  origin_state,
		Cost:        origin_cost,
	})
	origin_flag := flags.Get(origin)
	origin_flag.cost = origin_cost
	heap.Push(origin, origin_cost.Add(heuristic(origin_edge)))

	for {
		curr, _, ok := heap.Pop()
		if !ok {
			break
		}
		stats.Iterations += 1
		// the budget is checked once per dequeue, stale pops included
		if termination_model.ShouldStop(stats) {
			terminated = true
			break
		}
		curr_flag := flags.Get(curr)
		if curr_flag.settled {
			continue
		}
		curr_flag.settled = true
		stats.TreeSize += 1
		if curr == destination {
			break
		}

		record := tree[curr]
		curr_edge := g.GetEdge(curr)
		curr_state := record.StateAfter
		curr_cost := curr_flag.cost

		var expand_err error
		explorer.ForAdjacentEdges(curr_edge.NodeB, graph.FORWARD, func(ref graph.EdgeRef) {
			if expand_err != nil {
				return
			}
			next_flag := flags.Get(ref.EdgeID)
			if next_flag.settled {
				return
			}
			next_edge := g.GetEdge(ref.EdgeID)
			if !frontier_model.Valid(Some(curr_edge), next_edge, curr_state) {
				return
			}
			t_cost, next_state, err := model.TraversalCost(curr_state, next_edge)
			if err != nil {
				expand_err = err
				return
			}
			a_cost, err := model.AccessCost(curr_edge, next_edge, curr_state)
			if err != nil {
				expand_err = err
				return
			}
			total := t_cost.Add(a_cost)
			new_cost := curr_cost.Add(total)
			if !new_cost.Less(next_flag.cost) {
				return
			}
			next_flag.cost = new_cost
			tree.Set(ref.EdgeID, EdgeTraversal{
				EdgeID:      ref.EdgeID,
				Predecessor: curr,
				StateBefore: curr_state,
				StateAfter:  next_state,
				Cost:        total,
			})
			heap.Push(ref.EdgeID, new_cost.Add(heuristic(next_edge)))
		})
		if expand_err != nil {
			return nil, expand_err
		}
	}

	return &SearchResult{
		Tree:            tree,
		Stats:           stats,
		TerminatedEarly: terminated,
	}, nil
}
