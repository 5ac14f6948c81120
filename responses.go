package main

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	. "github.com/zenon18/routee-compass/util"
)

type ErrorResponse struct {
	Request string `json:"request"`
	Error   any    `json:"error"`
}

func NewErrorResponse(request string, error any) ErrorResponse {
	return ErrorResponse{
		Request: request,
		Error:   error,
	}
}

type RoutingResponse struct {
	Route           *geojson.FeatureCollection `json:"route"`
	Edges           []int32                    `json:"edges"`
	Summary         Dict[string, any]          `json:"summary"`
	Cost            float64                    `json:"cost"`
	TerminatedEarly bool                       `json:"terminated_early"`
	SearchRuntimeMS float64                    `json:"search_runtime_ms"`
	RouteRuntimeMS  float64                    `json:"route_runtime_ms"`
}

func NewRoutingResponse(line orb.LineString, outcome *SearchOutcome) RoutingResponse {
	feature := geojson.NewFeature(line)
	feature.Properties["summary"] = outcome.Summary
	collection := geojson.NewFeatureCollection()
	collection.Append(feature)
	edges := make([]int32, len(outcome.Route))
	for i, record := range outcome.Route {
		edges[i] = record.EdgeID
	}
	return RoutingResponse{
		Route:           collection,
		Edges:           edges,
		Summary:         outcome.Summary,
		Cost:            float64(outcome.Cost),
		TerminatedEarly: outcome.TerminatedEarly,
		SearchRuntimeMS: float64(outcome.SearchRuntime.Microseconds()) / 1000,
		RouteRuntimeMS:  float64(outcome.RouteRuntime.Microseconds()) / 1000,
	}
}

type GraphOpResponse struct {
	Value any `json:"value"`
}

type ModelsResponse struct {
	Models []string `json:"models"`
}
