package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/zenon18/routee-compass/graph"
	"github.com/zenon18/routee-compass/routing"
	"github.com/zenon18/routee-compass/traversal"
	"github.com/zenon18/routee-compass/unit"
	. "github.com/zenon18/routee-compass/util"
	"github.com/zenon18/routee-compass/utility"
	"golang.org/x/exp/slog"
)

//**********************************************************
// routing requests
//**********************************************************

// Endpoints are given either as lon-lat coordinates or as graph ids.
// Coordinates win when both are present.
type RoutingRequest struct {
	Start        []float64         `json:"start"`
	End          []float64         `json:"end"`
	Origin       int32             `json:"origin"`
	Destination  int32             `json:"destination"`
	Model        string            `json:"model"`
	EdgeOriented bool              `json:"edge_oriented"`
	Query        Dict[string, any] `json:"query"`
}

// Ids default to -1 so that an omitted endpoint is rejected instead of
// silently routing from id 0.
func (self *RoutingRequest) UnmarshalJSON(data []byte) error {
	type _Alias RoutingRequest
	req := _Alias{Origin: -1, Destination: -1}
	if err := json.Unmarshal(data, &req); err != nil {
		return err
	}
	*self = RoutingRequest(req)
	return nil
}

//**********************************************************
// routing handlers
//**********************************************************

func HandleRoutingRequest(req RoutingRequest) Result {
	model_name := req.Model
	if model_name == "" {
		model_name = "distance"
	}
	query := req.Query
	if query == nil {
		query = NewDict[string, any](1)
	}

	origin, destination, res := _ResolveEndpoints(req)
	if res.status != 0 {
		return res
	}

	slog.Debug(fmt.Sprintf("routing from %v to %v with model '%v'", origin, destination, model_name))
	var outcome *SearchOutcome
	var err error
	if req.EdgeOriented {
		outcome, err = APP.RunEdgeOriented(model_name, origin, destination, query)
	} else {
		outcome, err = APP.RunVertexOriented(model_name, origin, destination, query)
	}
	if err != nil {
		return _ErrorResult(err)
	}

	line, err := _RouteGeometry(outcome.Route)
	if err != nil {
		return _ErrorResult(err)
	}
	return OK(NewRoutingResponse(line, outcome))
}

// _ResolveEndpoints maps the request onto graph ids. The zero-valued
// Result signals success.
func _ResolveEndpoints(req RoutingRequest) (int32, int32, Result) {
	if req.EdgeOriented && (len(req.Start) > 0 || len(req.End) > 0) {
		return -1, -1, BadRequest("edge-oriented queries take edge ids, not coordinates")
	}
	origin := req.Origin
	destination := req.Destination
	if len(req.Start) == 2 {
		node, ok, err := APP.ClosestNode(orb.Point{req.Start[0], req.Start[1]})
		if err != nil {
			return -1, -1, _ErrorResult(err)
		}
		if !ok {
			return -1, -1, BadRequest("no vertex near start coordinate")
		}
		origin = node
	}
	if len(req.End) == 2 {
		node, ok, err := APP.ClosestNode(orb.Point{req.End[0], req.End[1]})
		if err != nil {
			return -1, -1, _ErrorResult(err)
		}
		if !ok {
			return -1, -1, BadRequest("no vertex near end coordinate")
		}
		destination = node
	}
	return origin, destination, Result{}
}

// _RouteGeometry stitches the route records into a single line using
// the vertex coordinates along the way.
func _RouteGeometry(route routing.Route) (orb.LineString, error) {
	line := make(orb.LineString, 0, len(route)+1)
	if len(route) == 0 {
		return line, nil
	}
	first, err := APP.EdgeOrigin(route[0].EdgeID)
	if err != nil {
		return nil, err
	}
	point, err := APP.NodeGeom(first)
	if err != nil {
		return nil, err
	}
	line = append(line, point)
	for _, record := range route {
		node, err := APP.EdgeDestination(record.EdgeID)
		if err != nil {
			return nil, err
		}
		point, err := APP.NodeGeom(node)
		if err != nil {
			return nil, err
		}
		line = append(line, point)
	}
	return line, nil
}

//**********************************************************
// graph-op requests and handlers
//**********************************************************

type EdgeInfoRequest struct {
	Edge int32  `json:"edge"`
	Unit string `json:"unit"`
}

type EdgeInfoResponse struct {
	Edge        int32         `json:"edge"`
	Origin      int32         `json:"origin"`
	Destination int32         `json:"destination"`
	Distance    unit.Distance `json:"distance"`
	Unit        string        `json:"unit"`
}

func HandleEdgeInfoRequest(req EdgeInfoRequest) Result {
	distance_unit := unit.METERS
	if req.Unit != "" {
		parsed, ok := unit.DistanceUnitFromString(req.Unit)
		if !ok {
			return BadRequest(fmt.Sprintf("unknown distance unit '%v'", req.Unit))
		}
		distance_unit = parsed
	}
	origin, err := APP.EdgeOrigin(req.Edge)
	if err != nil {
		return _ErrorResult(err)
	}
	destination, err := APP.EdgeDestination(req.Edge)
	if err != nil {
		return _ErrorResult(err)
	}
	distance, err := APP.EdgeDistance(req.Edge, distance_unit)
	if err != nil {
		return _ErrorResult(err)
	}
	return OK(EdgeInfoResponse{
		Edge:        req.Edge,
		Origin:      origin,
		Destination: destination,
		Distance:    distance,
		Unit:        distance_unit.String(),
	})
}

type NodeInfoRequest struct {
	Node int32 `json:"node"`
}

type NodeInfoResponse struct {
	Node     int32     `json:"node"`
	Point    []float64 `json:"point"`
	Outgoing []int32   `json:"outgoing"`
	Incoming []int32   `json:"incoming"`
}

func HandleNodeInfoRequest(req NodeInfoRequest) Result {
	point, err := APP.NodeGeom(req.Node)
	if err != nil {
		return _ErrorResult(err)
	}
	outgoing, err := APP.IncidentEdges(req.Node, graph.FORWARD)
	if err != nil {
		return _ErrorResult(err)
	}
	incoming, err := APP.IncidentEdges(req.Node, graph.BACKWARD)
	if err != nil {
		return _ErrorResult(err)
	}
	return OK(NodeInfoResponse{
		Node:     req.Node,
		Point:    []float64{point[0], point[1]},
		Outgoing: outgoing,
		Incoming: incoming,
	})
}

type ClosestNodeRequest struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type ClosestNodeResponse struct {
	Node  int32     `json:"node"`
	Point []float64 `json:"point"`
}

func HandleClosestNodeRequest(req ClosestNodeRequest) Result {
	node, ok, err := APP.ClosestNode(orb.Point{req.Lon, req.Lat})
	if err != nil {
		return _ErrorResult(err)
	}
	if !ok {
		return NotFound("no vertex found")
	}
	point, err := APP.NodeGeom(node)
	if err != nil {
		return _ErrorResult(err)
	}
	return OK(ClosestNodeResponse{
		Node:  node,
		Point: []float64{point[0], point[1]},
	})
}

func HandleModelsRequest(none) Result {
	return OK(ModelsResponse{Models: APP.ModelNames()})
}

//**********************************************************
// error mapping
//**********************************************************

func _ErrorResult(err error) Result {
	switch {
	case errors.Is(err, ErrIndex):
		return NotFound(err.Error())
	case errors.Is(err, ErrPoisoned):
		return InternalError(err.Error())
	case errors.Is(err, routing.ErrOriginUnreachable),
		errors.Is(err, routing.ErrDestinationUnreachable),
		errors.Is(err, traversal.ErrBuild),
		errors.Is(err, utility.ErrBuild):
		return BadRequest(err.Error())
	default:
		return InternalError(err.Error())
	}
}
