package main

import (
	"fmt"
	"os"

	"github.com/zenon18/routee-compass/traversal"
	. "github.com/zenon18/routee-compass/util"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

//**********************************************************
// config
//**********************************************************

func ReadConfig(file string) (Config, error) {
	slog.Info("Reading config file")
	data, err := os.ReadFile(file)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

type Config struct {
	Build struct {
		Source SourceOptions `yaml:"source"`
	} `yaml:"build"`
	BuildGraph bool `yaml:"build-graph"`
	Server     struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Services struct {
		Traversal   Dict[string, *TraversalOptions] `yaml:"traversal"`
		Utility     UtilityOptions                  `yaml:"utility"`
		Frontier    FrontierOptions                 `yaml:"frontier"`
		Termination TerminationOptions              `yaml:"termination"`
	} `yaml:"services"`
}

type SourceOptions struct {
	OSM string `yaml:"osm"`
}

//**********************************************************
// traversal options
//**********************************************************

// Sum type over the traversal model configurations, discriminated by
// the "type" key.
type TraversalOptions struct {
	Value ITraversalOptions
}

func (self *TraversalOptions) UnmarshalYAML(value *yaml.Node) error {
	m := map[string]interface{}{}
	if err := value.Decode(&m); err != nil {
		return err
	}
	raw, ok := m["type"].(string)
	if !ok {
		return fmt.Errorf("traversal service needs a 'type' key")
	}
	typ, err := TraversalTypeFromString(raw)
	if err != nil {
		return err
	}
	switch typ {
	case traversal.DISTANCE_MODEL:
		val := DistanceOptions{}
		value.Decode(&val)
		self.Value = val
	case traversal.SPEED_MODEL:
		val := SpeedOptions{}
		value.Decode(&val)
		self.Value = val
	case traversal.ENERGY_MODEL:
		val := EnergyOptions{}
		value.Decode(&val)
		self.Value = val
	default:
		self.Value = nil
	}
	return nil
}

type ITraversalOptions interface {
	Type() traversal.ModelType
}

type DistanceOptions struct {
	DistanceUnit string `yaml:"distance-unit"`
}

func (self DistanceOptions) Type() traversal.ModelType {
	return traversal.DISTANCE_MODEL
}

type SpeedOptions struct {
	// optional csv speed table; without it the speeds decoded from the
	// osm source are used
	SpeedFile string `yaml:"speed-file"`
}

func (self SpeedOptions) Type() traversal.ModelType {
	return traversal.SPEED_MODEL
}

type EnergyOptions struct {
	SpeedFile string                    `yaml:"speed-file"`
	Vehicles  []traversal.VehicleConfig `yaml:"vehicles"`
}

func (self EnergyOptions) Type() traversal.ModelType {
	return traversal.ENERGY_MODEL
}

func TraversalTypeFromString(s string) (traversal.ModelType, error) {
	switch s {
	case "distance":
		return traversal.DISTANCE_MODEL, nil
	case "speed":
		return traversal.SPEED_MODEL, nil
	case "energy":
		return traversal.ENERGY_MODEL, nil
	default:
		return traversal.DISTANCE_MODEL, fmt.Errorf("unknown traversal type '%v'", s)
	}
}

//**********************************************************
// model options
//**********************************************************

type UtilityOptions struct {
	Mappings Dict[string, MappingOptions] `yaml:"mappings"`
	// optional csv table of per-edge costs
	EdgeCostFile string `yaml:"edge-cost-file"`
}

type MappingOptions struct {
	Kind   string  `yaml:"kind"`
	Factor float64 `yaml:"factor"`
	Offset float64 `yaml:"offset"`
}

type FrontierOptions struct {
	// maximum absolute decimal grade, zero disables the limit
	MaxGrade float32 `yaml:"max-grade"`
	// [min_lon, min_lat, max_lon, max_lat], empty disables the bbox
	BBox []float64 `yaml:"bbox"`
}

type TerminationOptions struct {
	MaxIterations int `yaml:"max-iterations"`
	// seconds of wall time, zero disables the limit
	MaxRuntime  int `yaml:"max-runtime"`
	MaxTreeSize int `yaml:"max-tree-size"`
}
