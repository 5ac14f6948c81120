package traversal

import (
	"errors"
	"fmt"
	"os"

	"github.com/zenon18/routee-compass/energy"
	"github.com/zenon18/routee-compass/unit"
	. "github.com/zenon18/routee-compass/util"
)

// Returned when a model cannot be constructed from its configuration
// and query parameters.
var ErrBuild = errors.New("failure building traversal model")

//*******************************************
// traversal model service
//*******************************************

// Builds one concrete traversal model per query from the query's
// parameter bag plus the service's fixed configuration.
//
// Services are constructed once by the driver and only read afterwards.
type ITraversalModelService interface {
	Build(query Dict[string, any]) (ITraversalModel, error)
}

// Reads an optional string parameter. Unrecognized keys elsewhere in
// the bag are ignored, a present key of the wrong type is a build
// error.
func _StringParam(query Dict[string, any], key string) (Optional[string], error) {
	raw, ok := query[key]
	if !ok {
		return None[string](), nil
	}
	value, ok := raw.(string)
	if !ok {
		return None[string](), fmt.Errorf("%w: parameter '%v' must be a string, got %T", ErrBuild, key, raw)
	}
	return Some(value), nil
}

//*******************************************
// distance model service
//*******************************************

var _ ITraversalModelService = &DistanceModelService{}

type DistanceModelService struct {
	default_unit unit.DistanceUnit
}

func NewDistanceModelService(default_unit unit.DistanceUnit) *DistanceModelService {
	return &DistanceModelService{
		default_unit: default_unit,
	}
}

func (self *DistanceModelService) Build(query Dict[string, any]) (ITraversalModel, error) {
	distance_unit := self.default_unit
	param, err := _StringParam(query, "distance_unit")
	if err != nil {
		return nil, err
	}
	if param.HasValue() {
		parsed, ok := unit.DistanceUnitFromString(param.Value)
		if !ok {
			return nil, fmt.Errorf("%w: unknown distance unit '%v'", ErrBuild, param.Value)
		}
		distance_unit = parsed
	}
	return NewDistanceModel(distance_unit), nil
}

//*******************************************
// speed model service
//*******************************************

var _ ITraversalModelService = &SpeedModelService{}

type SpeedModelService struct {
	speeds    Array[unit.Speed]
	max_speed unit.Speed
}

type _SpeedRow struct {
	Edge  int32   `csv:"edge"`
	Speed float64 `csv:"speed"`
}

// Loads a per-edge speed table (kph) from a csv file with columns
// "edge" and "speed".
func NewSpeedModelService(speed_file string, edge_count int) (*SpeedModelService, error) {
	if _, err := os.Stat(speed_file); err != nil {
		return nil, fmt.Errorf("%w: speed table %v: %v", ErrBuild, speed_file, err)
	}
	speeds := NewArray[unit.Speed](edge_count)
	max_speed := unit.Speed(0)
	for row := range ReadCSVFromFile[_SpeedRow](speed_file, ',') {
		if row.Edge < 0 || int(row.Edge) >= edge_count {
			return nil, fmt.Errorf("%w: speed table %v references unknown edge %v", ErrBuild, speed_file, row.Edge)
		}
		if row.Speed <= 0 {
			return nil, fmt.Errorf("%w: speed table %v has non-positive speed for edge %v", ErrBuild, speed_file, row.Edge)
		}
		speeds[row.Edge] = unit.Speed(row.Speed)
		if unit.Speed(row.Speed) > max_speed {
			max_speed = unit.Speed(row.Speed)
		}
	}
	if max_speed == 0 {
		return nil, fmt.Errorf("%w: speed table %v is empty", ErrBuild, speed_file)
	}
	return &SpeedModelService{
		speeds:    speeds,
		max_speed: max_speed,
	}, nil
}

// Builds a speed service directly from an in-memory table.
func NewSpeedModelServiceFromTable(speeds Array[unit.Speed], max_speed unit.Speed) *SpeedModelService {
	return &SpeedModelService{
		speeds:    speeds,
		max_speed: max_speed,
	}
}

func (self *SpeedModelService) Build(query Dict[string, any]) (ITraversalModel, error) {
	return NewSpeedModel(self.speeds, self.max_speed)
}

//*******************************************
// energy model service
//*******************************************

type VehicleConfig struct {
	Name           string  `yaml:"name" json:"name"`
	ModelFile      string  `yaml:"model-file" json:"model_file"`
	IdealRate      float64 `yaml:"ideal-rate" json:"ideal_rate"`
	EnergyRateUnit string  `yaml:"energy-rate-unit" json:"energy_rate_unit"`
	StopCost       float64 `yaml:"stop-cost" json:"stop_cost"`
}

type _Vehicle struct {
	predictor  energy.IPredictionModel
	ideal_rate unit.EnergyRate
	rate_unit  unit.EnergyRateUnit
	stop_cost  unit.Energy
}

var _ ITraversalModelService = &EnergyModelService{}

// Holds one loaded prediction model per configured vehicle; queries
// select a vehicle by name.
type EnergyModelService struct {
	vehicles        Dict[string, _Vehicle]
	speed_service   *SpeedModelService
	default_vehicle string
}

func NewEnergyModelService(vehicles []VehicleConfig, speed_service *SpeedModelService) (*EnergyModelService, error) {
	if len(vehicles) == 0 {
		return nil, fmt.Errorf("%w: energy model service needs at least one vehicle", ErrBuild)
	}
	loaded := NewDict[string, _Vehicle](len(vehicles))
	for _, config := range vehicles {
		rate_unit, ok := unit.EnergyRateUnitFromString(config.EnergyRateUnit)
		if !ok {
			return nil, fmt.Errorf("%w: vehicle '%v': unknown energy rate unit '%v'", ErrBuild, config.Name, config.EnergyRateUnit)
		}
		predictor, err := energy.NewBinGridModel(config.ModelFile)
		if err != nil {
			return nil, fmt.Errorf("%w: vehicle '%v': %v", ErrBuild, config.Name, err)
		}
		loaded.Set(config.Name, _Vehicle{
			predictor:  predictor,
			ideal_rate: unit.EnergyRate(config.IdealRate),
			rate_unit:  rate_unit,
			stop_cost:  unit.Energy(config.StopCost),
		})
	}
	return &EnergyModelService{
		vehicles:        loaded,
		speed_service:   speed_service,
		default_vehicle: vehicles[0].Name,
	}, nil
}

func (self *EnergyModelService) Build(query Dict[string, any]) (ITraversalModel, error) {
	name := self.default_vehicle
	param, err := _StringParam(query, "vehicle")
	if err != nil {
		return nil, err
	}
	if param.HasValue() {
		name = param.Value
	}
	if !self.vehicles.ContainsKey(name) {
		return nil, fmt.Errorf("%w: unknown vehicle '%v'", ErrBuild, name)
	}
	vehicle := self.vehicles.Get(name)

	speed_model_, err := self.speed_service.Build(query)
	if err != nil {
		return nil, err
	}
	speed_model := speed_model_.(*SpeedModel)
	return NewEnergyModel(vehicle.predictor, speed_model, vehicle.ideal_rate, vehicle.rate_unit, vehicle.stop_cost)
}
