package main

import (
	"fmt"
	"os"
	"time"

	"github.com/paulmach/orb"
	"github.com/zenon18/routee-compass/frontier"
	"github.com/zenon18/routee-compass/graph"
	"github.com/zenon18/routee-compass/parser"
	"github.com/zenon18/routee-compass/termination"
	"github.com/zenon18/routee-compass/traversal"
	"github.com/zenon18/routee-compass/unit"
	"github.com/zenon18/routee-compass/utility"
	. "github.com/zenon18/routee-compass/util"
	"golang.org/x/exp/slog"
)

//**********************************************************
// app construction
//**********************************************************

// One-time driver-side construction of the shared structures: graph
// snapshot, per-edge speed table and the model services. Everything
// built here is read-only afterwards.
func BuildSearchApp(path string, config Config) (*SearchApp, error) {
	base, speeds, err := _BuildOrLoadGraph(path, config)
	if err != nil {
		return nil, err
	}
	g := graph.NewGraph(base)
	slog.Info(fmt.Sprintf("graph ready with %v nodes and %v edges", g.NodeCount(), g.EdgeCount()))

	services, err := _BuildTraversalServices(config, base, speeds)
	if err != nil {
		return nil, err
	}
	utility_service, err := _BuildUtilityService(config, base)
	if err != nil {
		return nil, err
	}
	frontier_model := _BuildFrontierModel(config, base)
	termination_model := _BuildTerminationModel(config)

	return NewSearchApp(g, services, utility_service, frontier_model, termination_model), nil
}

func _BuildOrLoadGraph(path string, config Config) (*graph.GraphBase, Array[unit.Speed], error) {
	graph_file := path + "/graph"
	speeds_file := path + "/speeds"

	build := config.BuildGraph
	if _, err := os.Stat(graph_file); err != nil {
		build = true
	}
	if build {
		slog.Info("building graph from " + config.Build.Source.OSM)
		base, speeds, err := parser.ParseGraph(config.Build.Source.OSM, &parser.DrivingDecoder{})
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, nil, err
		}
		if err := graph.Store(base, graph_file); err != nil {
			return nil, nil, err
		}
		if err := WriteJSONToFile(speeds, speeds_file); err != nil {
			return nil, nil, err
		}
		return base, speeds, nil
	}

	slog.Info("loading graph from " + graph_file)
	base, err := graph.Load(graph_file)
	if err != nil {
		return nil, nil, err
	}
	speeds, err := ReadJSONFromFile[Array[unit.Speed]](speeds_file)
	if err != nil {
		return nil, nil, err
	}
	return base, speeds, nil
}

//**********************************************************
// service construction
//**********************************************************

func _BuildTraversalServices(config Config, base *graph.GraphBase, speeds Array[unit.Speed]) (Dict[string, traversal.ITraversalModelService], error) {
	services := NewDict[string, traversal.ITraversalModelService](len(config.Services.Traversal))
	for name, options := range config.Services.Traversal {
		if options.Value == nil {
			continue
		}
		service, err := _BuildTraversalService(options.Value, base, speeds)
		if err != nil {
			return nil, fmt.Errorf("traversal service '%v': %w", name, err)
		}
		services.Set(name, service)
		slog.Info("built traversal service " + name + " (" + options.Value.Type().String() + ")")
	}
	if len(services) == 0 {
		// a bare app still routes by distance
		services.Set("distance", traversal.NewDistanceModelService(unit.METERS))
	}
	return services, nil
}

func _BuildTraversalService(options ITraversalOptions, base *graph.GraphBase, speeds Array[unit.Speed]) (traversal.ITraversalModelService, error) {
	switch opts := options.(type) {
	case DistanceOptions:
		distance_unit := unit.METERS
		if opts.DistanceUnit != "" {
			parsed, ok := unit.DistanceUnitFromString(opts.DistanceUnit)
			if !ok {
				return nil, fmt.Errorf("%w: unknown distance unit '%v'", traversal.ErrBuild, opts.DistanceUnit)
			}
			distance_unit = parsed
		}
		return traversal.NewDistanceModelService(distance_unit), nil
	case SpeedOptions:
		return _BuildSpeedService(opts.SpeedFile, base, speeds)
	case EnergyOptions:
		speed_service, err := _BuildSpeedService(opts.SpeedFile, base, speeds)
		if err != nil {
			return nil, err
		}
		return traversal.NewEnergyModelService(opts.Vehicles, speed_service)
	default:
		return nil, fmt.Errorf("%w: unhandled traversal options %T", traversal.ErrBuild, options)
	}
}

func _BuildSpeedService(speed_file string, base *graph.GraphBase, speeds Array[unit.Speed]) (*traversal.SpeedModelService, error) {
	if speed_file != "" {
		return traversal.NewSpeedModelService(speed_file, base.EdgeCount())
	}
	max_speed := unit.Speed(0)
	for _, speed := range speeds {
		if speed > max_speed {
			max_speed = speed
		}
	}
	if max_speed == 0 {
		return nil, fmt.Errorf("%w: osm source carries no speeds, configure a speed-file", traversal.ErrBuild)
	}
	return traversal.NewSpeedModelServiceFromTable(speeds, max_speed), nil
}

type _EdgeCostRow struct {
	Edge int32   `csv:"edge"`
	Cost float64 `csv:"cost"`
}

func _BuildUtilityService(config Config, base *graph.GraphBase) (*utility.UtilityModelService, error) {
	mappings := NewDict[string, utility.IVehicleMapping](len(config.Services.Utility.Mappings))
	for name, options := range config.Services.Utility.Mappings {
		switch options.Kind {
		case "", "raw":
			mappings.Set(name, utility.RawMapping{})
		case "factor":
			mappings.Set(name, utility.FactorMapping{Factor: options.Factor})
		case "offset":
			mappings.Set(name, utility.OffsetMapping{Offset: options.Offset})
		default:
			return nil, fmt.Errorf("%w: unknown mapping kind '%v' for dimension '%v'", utility.ErrBuild, options.Kind, name)
		}
	}

	var network utility.INetworkMapping
	if file := config.Services.Utility.EdgeCostFile; file != "" {
		if _, err := os.Stat(file); err != nil {
			return nil, fmt.Errorf("%w: edge cost table %v: %v", utility.ErrBuild, file, err)
		}
		costs := NewArray[unit.Cost](base.EdgeCount())
		for row := range ReadCSVFromFile[_EdgeCostRow](file, ',') {
			if row.Edge < 0 || int(row.Edge) >= base.EdgeCount() {
				return nil, fmt.Errorf("%w: edge cost table references unknown edge %v", utility.ErrBuild, row.Edge)
			}
			costs[row.Edge] = unit.Cost(row.Cost)
		}
		network = utility.NewEdgeLookupMapping(costs)
	}
	return utility.NewUtilityModelService(mappings, network), nil
}

func _BuildFrontierModel(config Config, base *graph.GraphBase) frontier.IFrontierModel {
	models := make([]frontier.IFrontierModel, 0, 2)
	if config.Services.Frontier.MaxGrade > 0 {
		models = append(models, frontier.NewGradeLimitModel(config.Services.Frontier.MaxGrade))
	}
	if bbox := config.Services.Frontier.BBox; len(bbox) == 4 {
		node_geoms := NewArray[orb.Point](base.NodeCount())
		for i := 0; i < base.NodeCount(); i++ {
			node_geoms[i] = base.GetNodeGeom(int32(i))
		}
		bound := orb.Bound{
			Min: orb.Point{bbox[0], bbox[1]},
			Max: orb.Point{bbox[2], bbox[3]},
		}
		models = append(models, frontier.NewBBoxModel(bound, node_geoms))
	}
	switch len(models) {
	case 0:
		return frontier.NewPassthroughModel()
	case 1:
		return models[0]
	default:
		return frontier.NewCombinedModel(models...)
	}
}

func _BuildTerminationModel(config Config) termination.ITerminationModel {
	models := make([]termination.ITerminationModel, 0, 3)
	if config.Services.Termination.MaxIterations > 0 {
		models = append(models, termination.NewIterationsLimitModel(config.Services.Termination.MaxIterations))
	}
	if config.Services.Termination.MaxRuntime > 0 {
		models = append(models, termination.NewRuntimeLimitModel(time.Duration(config.Services.Termination.MaxRuntime)*time.Second))
	}
	if config.Services.Termination.MaxTreeSize > 0 {
		models = append(models, termination.NewTreeSizeLimitModel(config.Services.Termination.MaxTreeSize))
	}
	switch len(models) {
	case 0:
		return termination.NewUnlimitedModel()
	case 1:
		return models[0]
	default:
		return termination.NewCombinedModel(models...)
	}
}
