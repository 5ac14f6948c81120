package main

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"sync"
	"testing"

	"github.com/paulmach/orb"
	"github.com/zenon18/routee-compass/frontier"
	"github.com/zenon18/routee-compass/graph"
	"github.com/zenon18/routee-compass/routing"
	"github.com/zenon18/routee-compass/structs"
	"github.com/zenon18/routee-compass/termination"
	"github.com/zenon18/routee-compass/traversal"
	"github.com/zenon18/routee-compass/unit"
	. "github.com/zenon18/routee-compass/util"
	"github.com/zenon18/routee-compass/utility"
)

func almostEqualApp(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

// directed line 0 -> 1 -> 2 -> 3 -> 4, every edge 1000 m
func buildTestGraph() *graph.Graph {
	nodes := NewArray[structs.Node](5)
	for i := 0; i < 5; i++ {
		nodes[i] = structs.Node{Loc: orb.Point{float64(i) * 0.008, 0}}
	}
	edges := NewArray[structs.Edge](4)
	for i := 0; i < 4; i++ {
		edges[i] = structs.Edge{NodeA: int32(i), NodeB: int32(i + 1), Distance: 1000}
	}
	return graph.NewGraph(graph.NewGraphBase(nodes, edges))
}

func buildTestApp() *SearchApp {
	g := buildTestGraph()
	speeds := NewArray[unit.Speed](4)
	for i := 0; i < 4; i++ {
		speeds[i] = 36
	}
	services := NewDict[string, traversal.ITraversalModelService](2)
	services.Set("distance", traversal.NewDistanceModelService(unit.KILOMETERS))
	services.Set("time", traversal.NewSpeedModelServiceFromTable(speeds, 36))
	utility_service := utility.NewUtilityModelService(nil, nil)
	return NewSearchApp(g, services, utility_service, frontier.NewPassthroughModel(), termination.NewUnlimitedModel())
}

//*******************************************
// queries
//*******************************************

func TestSearchAppVertexOriented(t *testing.T) {
	app := buildTestApp()

	outcome, err := app.RunVertexOriented("distance", 0, 4, NewDict[string, any](0))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if len(outcome.Route) != 4 {
		t.Fatal("expected a route of 4 edges, got", len(outcome.Route))
	}
	for i, record := range outcome.Route {
		if record.EdgeID != int32(i) {
			t.Error("expected edge", i, "at position", i, "got", record.EdgeID)
		}
	}
	if outcome.TerminatedEarly {
		t.Error("search terminated early without a budget")
	}
	distance, ok := outcome.Summary["distance"].(float64)
	if !ok || distance < 3.9 || distance > 4.1 {
		t.Error("expected summary distance around 4 km, got", outcome.Summary["distance"])
	}
	if outcome.SearchRuntime < 0 || outcome.RouteRuntime < 0 {
		t.Error("runtimes should be non-negative")
	}
}

func TestSearchAppEdgeOriented(t *testing.T) {
	app := buildTestApp()

	outcome, err := app.RunEdgeOriented("distance", 0, 3, NewDict[string, any](0))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if len(outcome.Route) != 4 {
		t.Fatal("expected a route of 4 edges, got", len(outcome.Route))
	}
	if outcome.Route[0].EdgeID != 0 || outcome.Route[3].EdgeID != 3 {
		t.Error("expected route spanning edges 0 to 3, got", outcome.Route)
	}
}

func TestSearchAppQueryOverride(t *testing.T) {
	app := buildTestApp()

	query := NewDict[string, any](1)
	query["distance_unit"] = "miles"
	outcome, err := app.RunVertexOriented("distance", 0, 4, query)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if outcome.Summary["distance_unit"] != "miles" {
		t.Error("expected summary in miles, got", outcome.Summary["distance_unit"])
	}
}

func TestSearchAppUtilityCost(t *testing.T) {
	app := buildTestApp()

	// default utility dimension set is {distance}: 4 edges x 1000 m
	outcome, err := app.RunVertexOriented("time", 0, 4, NewDict[string, any](0))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if !almostEqualApp(float64(outcome.Cost), 4000) {
		t.Error("expected cost 4000, got", outcome.Cost)
	}
	if !almostEqualApp(outcome.Summary["cost"].(float64), 4000) {
		t.Error("expected summary cost 4000, got", outcome.Summary["cost"])
	}
	if outcome.Summary["cost_aggregation"] != "sum" {
		t.Error("expected sum aggregation by default, got", outcome.Summary["cost_aggregation"])
	}

	// the reference accessors build the same models outside a search
	model, err := app.TraversalModel("time", NewDict[string, any](0))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	utility_model, err := app.UtilityModel(NewDict[string, any](0), model)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	cost, err := utility_model.StateCost(outcome.Route[len(outcome.Route)-1].StateAfter)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if !almostEqualApp(float64(cost), 4000) {
		t.Error("expected cost 4000 from the reference model, got", cost)
	}
}

func TestSearchAppCostAggregation(t *testing.T) {
	app := buildTestApp()

	// distance 4000 m and time 400 s across the line
	query := NewDict[string, any](2)
	query["vehicle_dimensions"] = []string{"distance", "time"}
	outcome, err := app.RunVertexOriented("time", 0, 4, query)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if !almostEqualApp(float64(outcome.Cost), 4400) {
		t.Error("expected summed cost 4400, got", outcome.Cost)
	}

	query["cost_aggregation"] = "mul"
	outcome, err = app.RunVertexOriented("time", 0, 4, query)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if !almostEqualApp(float64(outcome.Cost), 1600000) {
		t.Error("expected multiplied cost 1600000, got", outcome.Cost)
	}
	if outcome.Summary["cost_aggregation"] != "mul" {
		t.Error("expected mul aggregation, got", outcome.Summary["cost_aggregation"])
	}
}

func TestSearchAppUndeclaredDimension(t *testing.T) {
	app := buildTestApp()

	// the distance model does not carry an energy dimension
	query := NewDict[string, any](1)
	query["vehicle_dimensions"] = []string{"energy"}
	_, err := app.RunVertexOriented("distance", 0, 4, query)
	if !errors.Is(err, utility.ErrBuild) {
		t.Error("expected a utility build error, got", err)
	}
}

func TestSearchAppUnknownService(t *testing.T) {
	app := buildTestApp()

	_, err := app.RunVertexOriented("teleport", 0, 4, NewDict[string, any](0))
	if !errors.Is(err, traversal.ErrBuild) {
		t.Error("expected a model-build error, got", err)
	}
}

func TestSearchAppUnreachable(t *testing.T) {
	app := buildTestApp()

	// all edges point forward, so the reverse direction has no route
	_, err := app.RunVertexOriented("distance", 4, 0, NewDict[string, any](0))
	if !errors.Is(err, routing.ErrDestinationUnreachable) {
		t.Error("expected destination-unreachable, got", err)
	}
}

func TestSearchAppConcurrentQueries(t *testing.T) {
	app := buildTestApp()

	serial, err := app.RunVertexOriented("time", 0, 4, NewDict[string, any](0))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := app.RunVertexOriented("time", 0, 4, NewDict[string, any](0))
			if err != nil {
				t.Error("unexpected error:", err)
				return
			}
			if len(outcome.Route) != len(serial.Route) {
				t.Error("parallel route differs from serial route")
			}
		}()
	}
	wg.Wait()
}

func TestSearchAppPoisoned(t *testing.T) {
	app := buildTestApp()

	err := app.graph.ReadOnly().Guard(func(g graph.IGraph) error {
		panic("worker crashed mid-read")
	})
	if err == nil {
		t.Fatal("expected the panic to surface as an error")
	}

	_, err = app.RunVertexOriented("distance", 0, 4, NewDict[string, any](0))
	if !errors.Is(err, ErrPoisoned) {
		t.Error("expected ErrPoisoned after a guarded panic, got", err)
	}
}

//*******************************************
// graph ops
//*******************************************

func TestSearchAppGraphOps(t *testing.T) {
	app := buildTestApp()

	origin, err := app.EdgeOrigin(2)
	if err != nil || origin != 2 {
		t.Error("expected edge 2 to start at vertex 2, got", origin, err)
	}
	destination, err := app.EdgeDestination(2)
	if err != nil || destination != 3 {
		t.Error("expected edge 2 to end at vertex 3, got", destination, err)
	}
	distance, err := app.EdgeDistance(2, unit.KILOMETERS)
	if err != nil || distance < 0.99 || distance > 1.01 {
		t.Error("expected edge length 1 km, got", distance, err)
	}

	outgoing, err := app.IncidentEdges(1, graph.FORWARD)
	if err != nil || len(outgoing) != 1 || outgoing[0] != 1 {
		t.Error("expected vertex 1 to have outgoing edge 1, got", outgoing, err)
	}
	incoming, err := app.IncidentEdges(1, graph.BACKWARD)
	if err != nil || len(incoming) != 1 || incoming[0] != 0 {
		t.Error("expected vertex 1 to have incoming edge 0, got", incoming, err)
	}

	node, ok, err := app.ClosestNode(orb.Point{0.0161, 0.0001})
	if err != nil || !ok || node != 2 {
		t.Error("expected vertex 2 to be closest, got", node, ok, err)
	}

	point, err := app.NodeGeom(3)
	if err != nil || point[0] != 0.024 {
		t.Error("unexpected vertex geometry:", point, err)
	}
}

func TestSearchAppIndexErrors(t *testing.T) {
	app := buildTestApp()

	_, err := app.EdgeOrigin(99)
	if !errors.Is(err, ErrIndex) {
		t.Error("expected an index error for edge 99, got", err)
	}
	_, err = app.NodeGeom(-1)
	if !errors.Is(err, ErrIndex) {
		t.Error("expected an index error for vertex -1, got", err)
	}
	_, err = app.IncidentEdges(99, graph.FORWARD)
	if !errors.Is(err, ErrIndex) {
		t.Error("expected an index error for vertex 99, got", err)
	}
}

//*******************************************
// handlers
//*******************************************

func TestHandleRoutingRequest(t *testing.T) {
	APP = buildTestApp()

	req := RoutingRequest{
		Start: []float64{0, 0},
		End:   []float64{0.032, 0},
		Model: "distance",
	}
	res := HandleRoutingRequest(req)
	if res.status != http.StatusOK {
		t.Fatal("expected status 200, got", res.status, res.result)
	}
	resp, ok := res.result.(RoutingResponse)
	if !ok {
		t.Fatal("expected a routing response")
	}
	if len(resp.Edges) != 4 {
		t.Error("expected 4 route edges, got", resp.Edges)
	}
	if len(resp.Route.Features) != 1 {
		t.Fatal("expected one route feature")
	}
	line, ok := resp.Route.Features[0].Geometry.(orb.LineString)
	if !ok || len(line) != 5 {
		t.Error("expected a 5-point line geometry, got", resp.Route.Features[0].Geometry)
	}
	if !almostEqualApp(resp.Cost, 4) {
		t.Error("expected cost 4 for 4 km priced by distance, got", resp.Cost)
	}
}

func TestHandleRoutingRequestByIDs(t *testing.T) {
	APP = buildTestApp()

	req := RoutingRequest{
		Origin:       0,
		Destination:  3,
		Model:        "time",
		EdgeOriented: true,
	}
	res := HandleRoutingRequest(req)
	if res.status != http.StatusOK {
		t.Fatal("expected status 200, got", res.status, res.result)
	}
	resp := res.result.(RoutingResponse)
	if len(resp.Edges) != 4 {
		t.Error("expected 4 route edges, got", resp.Edges)
	}
}

func TestRoutingRequestDecodeDefaults(t *testing.T) {
	var req RoutingRequest
	if err := json.Unmarshal([]byte(`{"model":"distance"}`), &req); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if req.Origin != -1 || req.Destination != -1 {
		t.Error("expected omitted endpoint ids to decode as -1, got", req.Origin, req.Destination)
	}

	if err := json.Unmarshal([]byte(`{"origin":0,"destination":3}`), &req); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if req.Origin != 0 || req.Destination != 3 {
		t.Error("expected explicit endpoint ids to survive decoding, got", req.Origin, req.Destination)
	}
}

func TestHandleRoutingRequestMissingEndpoints(t *testing.T) {
	APP = buildTestApp()

	var req RoutingRequest
	if err := json.Unmarshal([]byte(`{"model":"distance"}`), &req); err != nil {
		t.Fatal("unexpected error:", err)
	}
	res := HandleRoutingRequest(req)
	if res.status != http.StatusBadRequest {
		t.Error("expected status 400 for a request without endpoints, got", res.status)
	}
}

func TestHandleRoutingRequestUnreachable(t *testing.T) {
	APP = buildTestApp()

	req := RoutingRequest{
		Origin:      4,
		Destination: 0,
		Model:       "distance",
	}
	res := HandleRoutingRequest(req)
	if res.status != http.StatusBadRequest {
		t.Error("expected status 400, got", res.status)
	}
}

func TestHandleEdgeInfoRequest(t *testing.T) {
	APP = buildTestApp()

	res := HandleEdgeInfoRequest(EdgeInfoRequest{Edge: 1, Unit: "kilometers"})
	if res.status != http.StatusOK {
		t.Fatal("expected status 200, got", res.status, res.result)
	}
	resp := res.result.(EdgeInfoResponse)
	if resp.Origin != 1 || resp.Destination != 2 {
		t.Error("unexpected edge endpoints:", resp)
	}

	res = HandleEdgeInfoRequest(EdgeInfoRequest{Edge: 1, Unit: "parsecs"})
	if res.status != http.StatusBadRequest {
		t.Error("expected status 400 for an unknown unit, got", res.status)
	}
	res = HandleEdgeInfoRequest(EdgeInfoRequest{Edge: 99})
	if res.status != http.StatusNotFound {
		t.Error("expected status 404 for an unknown edge, got", res.status)
	}
}
