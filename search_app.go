package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/zenon18/routee-compass/frontier"
	"github.com/zenon18/routee-compass/graph"
	"github.com/zenon18/routee-compass/routing"
	"github.com/zenon18/routee-compass/termination"
	"github.com/zenon18/routee-compass/traversal"
	"github.com/zenon18/routee-compass/unit"
	"github.com/zenon18/routee-compass/utility"
	. "github.com/zenon18/routee-compass/util"
)

var ErrIndex = errors.New("id out of range")

//**********************************************************
// search app
//**********************************************************

// Owns the shared read-only structures and runs queries against them.
//
// The driver builds the locks once at startup; every query acquires
// its own executor handles and never a write handle, so parallel
// queries only ever contend on nothing.
type SearchApp struct {
	graph       *DriverReadOnlyLock[graph.IGraph]
	services    Dict[string, *DriverReadOnlyLock[traversal.ITraversalModelService]]
	utility     *DriverReadOnlyLock[*utility.UtilityModelService]
	frontier    *DriverReadOnlyLock[frontier.IFrontierModel]
	termination *DriverReadOnlyLock[termination.ITerminationModel]
}

func NewSearchApp(g graph.IGraph, services Dict[string, traversal.ITraversalModelService], utility_service *utility.UtilityModelService, frontier_model frontier.IFrontierModel, termination_model termination.ITerminationModel) *SearchApp {
	locked := NewDict[string, *DriverReadOnlyLock[traversal.ITraversalModelService]](len(services))
	for name, service := range services {
		locked.Set(name, NewDriverReadOnlyLock(service))
	}
	return &SearchApp{
		graph:       NewDriverReadOnlyLock(g),
		services:    locked,
		utility:     NewDriverReadOnlyLock(utility_service),
		frontier:    NewDriverReadOnlyLock(frontier_model),
		termination: NewDriverReadOnlyLock(termination_model),
	}
}

// Everything one query needs, read without blocking.
type _QueryHandles struct {
	graph       graph.IGraph
	model       traversal.ITraversalModel
	utility     *utility.UtilityModel
	frontier    frontier.IFrontierModel
	termination termination.ITerminationModel
}

func (self *SearchApp) _Acquire(model_name string, query Dict[string, any]) (_QueryHandles, error) {
	var handles _QueryHandles

	g, err := self.graph.ReadOnly().Read()
	if err != nil {
		return handles, err
	}
	lock, ok := self.services[model_name]
	if !ok {
		return handles, fmt.Errorf("%w: no traversal service '%v'", traversal.ErrBuild, model_name)
	}
	service, err := lock.ReadOnly().Read()
	if err != nil {
		return handles, err
	}
	model, err := service.Build(query)
	if err != nil {
		return handles, err
	}
	utility_service, err := self.utility.ReadOnly().Read()
	if err != nil {
		return handles, err
	}
	utility_model, err := utility_service.Build(query, model.StateModel())
	if err != nil {
		return handles, err
	}
	frontier_model, err := self.frontier.ReadOnly().Read()
	if err != nil {
		return handles, err
	}
	termination_model, err := self.termination.ReadOnly().Read()
	if err != nil {
		return handles, err
	}

	handles.graph = g
	handles.model = model
	handles.utility = utility_model
	handles.frontier = frontier_model
	handles.termination = termination_model
	return handles, nil
}

//**********************************************************
// queries
//**********************************************************

type SearchOutcome struct {
	Route           routing.Route
	Tree            routing.SearchTree
	Summary         Dict[string, any]
	Cost            unit.Cost
	TerminatedEarly bool
	SearchRuntime   time.Duration
	RouteRuntime    time.Duration
}

func (self *SearchApp) RunVertexOriented(model_name string, origin, destination int32, query Dict[string, any]) (*SearchOutcome, error) {
	handles, err := self._Acquire(model_name, query)
	if err != nil {
		return nil, err
	}

	search_start := time.Now()
	result, err := routing.RunAStar(handles.graph, origin, destination, handles.model, handles.frontier, handles.termination)
	if err != nil {
		return nil, err
	}
	search_runtime := time.Since(search_start)

	route_start := time.Now()
	route, err := routing.Backtrack(result.Tree, origin, destination)
	if err != nil {
		return nil, err
	}
	route_runtime := time.Since(route_start)

	return self._BuildOutcome(handles, result, route, search_runtime, route_runtime)
}

func (self *SearchApp) RunEdgeOriented(model_name string, origin, destination int32, query Dict[string, any]) (*SearchOutcome, error) {
	handles, err := self._Acquire(model_name, query)
	if err != nil {
		return nil, err
	}

	search_start := time.Now()
	result, err := routing.RunAStarEdgeOriented(handles.graph, origin, destination, handles.model, handles.frontier, handles.termination)
	if err != nil {
		return nil, err
	}
	search_runtime := time.Since(search_start)

	route_start := time.Now()
	route, err := routing.BacktrackEdges(result.Tree, destination)
	if err != nil {
		return nil, err
	}
	route_runtime := time.Since(route_start)

	return self._BuildOutcome(handles, result, route, search_runtime, route_runtime)
}

func (self *SearchApp) _BuildOutcome(handles _QueryHandles, result *routing.SearchResult, route routing.Route, search_runtime, route_runtime time.Duration) (*SearchOutcome, error) {
	summary := NewDict[string, any](4)
	cost := unit.ZERO_COST
	if len(route) > 0 {
		terminal := route[len(route)-1].StateAfter
		summary = handles.model.Summary(terminal)
		var err error
		cost, err = handles.utility.StateCost(terminal)
		if err != nil {
			return nil, err
		}
		summary["cost"] = float64(cost)
		summary["cost_aggregation"] = handles.utility.Aggregation().String()
	}
	return &SearchOutcome{
		Route:           route,
		Tree:            result.Tree,
		Summary:         summary,
		Cost:            cost,
		TerminatedEarly: result.TerminatedEarly,
		SearchRuntime:   search_runtime,
		RouteRuntime:    route_runtime,
	}, nil
}

//**********************************************************
// reference accessors
//**********************************************************

// Builds a traversal model outside of a search, for post-search
// reporting and tooling.
func (self *SearchApp) TraversalModel(model_name string, query Dict[string, any]) (traversal.ITraversalModel, error) {
	lock, ok := self.services[model_name]
	if !ok {
		return nil, fmt.Errorf("%w: no traversal service '%v'", traversal.ErrBuild, model_name)
	}
	service, err := lock.ReadOnly().Read()
	if err != nil {
		return nil, err
	}
	return service.Build(query)
}

// Builds a utility model for the given traversal model's dimensions.
func (self *SearchApp) UtilityModel(query Dict[string, any], model traversal.ITraversalModel) (*utility.UtilityModel, error) {
	service, err := self.utility.ReadOnly().Read()
	if err != nil {
		return nil, err
	}
	return service.Build(query, model.StateModel())
}

func (self *SearchApp) ModelNames() []string {
	names := make([]string, 0, len(self.services))
	for name := range self.services {
		names = append(names, name)
	}
	return names
}

//**********************************************************
// graph ops
//**********************************************************

func (self *SearchApp) _ReadGraph() (graph.IGraph, error) {
	return self.graph.ReadOnly().Read()
}

func (self *SearchApp) EdgeOrigin(edge int32) (int32, error) {
	g, err := self._ReadGraph()
	if err != nil {
		return -1, err
	}
	if !g.IsEdge(edge) {
		return -1, fmt.Errorf("%w: edge %v", ErrIndex, edge)
	}
	return g.GetEdge(edge).NodeA, nil
}

func (self *SearchApp) EdgeDestination(edge int32) (int32, error) {
	g, err := self._ReadGraph()
	if err != nil {
		return -1, err
	}
	if !g.IsEdge(edge) {
		return -1, fmt.Errorf("%w: edge %v", ErrIndex, edge)
	}
	return g.GetEdge(edge).NodeB, nil
}

func (self *SearchApp) EdgeDistance(edge int32, distance_unit unit.DistanceUnit) (unit.Distance, error) {
	g, err := self._ReadGraph()
	if err != nil {
		return 0, err
	}
	if !g.IsEdge(edge) {
		return 0, fmt.Errorf("%w: edge %v", ErrIndex, edge)
	}
	return g.GetEdge(edge).DistanceIn(distance_unit), nil
}

func (self *SearchApp) IncidentEdges(node int32, dir graph.Direction) ([]int32, error) {
	g, err := self._ReadGraph()
	if err != nil {
		return nil, err
	}
	if !g.IsNode(node) {
		return nil, fmt.Errorf("%w: vertex %v", ErrIndex, node)
	}
	edges := make([]int32, 0, 4)
	g.GetGraphExplorer().ForAdjacentEdges(node, dir, func(ref graph.EdgeRef) {
		edges = append(edges, ref.EdgeID)
	})
	return edges, nil
}

func (self *SearchApp) ClosestNode(point orb.Point) (int32, bool, error) {
	g, err := self._ReadGraph()
	if err != nil {
		return -1, false, err
	}
	node, ok := g.GetClosestNode(point)
	return node, ok, nil
}

func (self *SearchApp) NodeGeom(node int32) (orb.Point, error) {
	g, err := self._ReadGraph()
	if err != nil {
		return orb.Point{}, err
	}
	if !g.IsNode(node) {
		return orb.Point{}, fmt.Errorf("%w: vertex %v", ErrIndex, node)
	}
	return g.GetNodeGeom(node), nil
}
