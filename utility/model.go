package utility

import (
	"errors"
	"fmt"

	"github.com/zenon18/routee-compass/state"
	"github.com/zenon18/routee-compass/structs"
	"github.com/zenon18/routee-compass/unit"
	. "github.com/zenon18/routee-compass/util"
)

// Returned when a utility model cannot be constructed from its
// configuration and query parameters.
var ErrBuild = errors.New("failure building utility model")

//*******************************************
// cost aggregation
//*******************************************

type CostAggregation byte

const (
	AGGREGATION_SUM CostAggregation = 0
	AGGREGATION_MUL CostAggregation = 1
)

func (self CostAggregation) String() string {
	switch self {
	case AGGREGATION_SUM:
		return "sum"
	case AGGREGATION_MUL:
		return "mul"
	default:
		return "unknown"
	}
}

func CostAggregationFromString(s string) (CostAggregation, bool) {
	switch s {
	case "sum":
		return AGGREGATION_SUM, true
	case "mul":
		return AGGREGATION_MUL, true
	default:
		return AGGREGATION_SUM, false
	}
}

//*******************************************
// utility model
//*******************************************

// One monetized state dimension: the state index it reads and the
// mapping that prices its growth.
type Dimension struct {
	Name    string
	Index   int
	Mapping IVehicleMapping
}

// Reduces a multi-dimensional state delta to a scalar ranking cost:
// per selected dimension, the mapped cost of the dimension's growth
// across one traversal, aggregated by sum or product, plus any
// network-derived costs.
type UtilityModel struct {
	dimensions  []Dimension
	network     INetworkMapping
	aggregation CostAggregation
}

func NewUtilityModel(dimensions []Dimension, network INetworkMapping, aggregation CostAggregation) *UtilityModel {
	if network == nil {
		network = &ZeroNetworkMapping{}
	}
	return &UtilityModel{
		dimensions:  dimensions,
		network:     network,
		aggregation: aggregation,
	}
}

func (self *UtilityModel) Aggregation() CostAggregation {
	return self.aggregation
}

// Names of the monetized dimensions, in configuration order.
func (self *UtilityModel) Dimensions() []string {
	names := make([]string, len(self.dimensions))
	for i, dimension := range self.dimensions {
		names[i] = dimension.Name
	}
	return names
}

func (self *UtilityModel) _Aggregate(costs []unit.Cost) unit.Cost {
	switch self.aggregation {
	case AGGREGATION_MUL:
		total := unit.Cost(1)
		for _, cost := range costs {
			total = unit.Cost(float64(total) * float64(cost))
		}
		return total
	default:
		total := unit.ZERO_COST
		for _, cost := range costs {
			total = total.Add(cost)
		}
		return total
	}
}

// Scalar cost of one edge traversal, from the state before and after
// crossing the edge.
func (self *UtilityModel) TraversalCost(prev, next state.TraversalState, edge structs.Edge) (unit.Cost, error) {
	costs := make([]unit.Cost, len(self.dimensions))
	for i, dimension := range self.dimensions {
		if dimension.Index >= len(next) || dimension.Index >= len(prev) {
			return unit.ZERO_COST, fmt.Errorf("dimension '%v' out of range for state of length %v", dimension.Name, len(next))
		}
		delta := next[dimension.Index] - prev[dimension.Index]
		costs[i] = dimension.Mapping.Map(delta)
	}
	return self._Aggregate(costs).Add(self.network.TraversalCost(edge)), nil
}

// Scalar cost of the transition between two consecutive edges.
func (self *UtilityModel) AccessCost(prev_edge, next_edge structs.Edge) unit.Cost {
	return self.network.AccessCost(prev_edge, next_edge)
}

// Scalar cost of a full terminal state, used for reporting.
func (self *UtilityModel) StateCost(s state.TraversalState) (unit.Cost, error) {
	costs := make([]unit.Cost, len(self.dimensions))
	for i, dimension := range self.dimensions {
		if dimension.Index >= len(s) {
			return unit.ZERO_COST, fmt.Errorf("dimension '%v' out of range for state of length %v", dimension.Name, len(s))
		}
		costs[i] = dimension.Mapping.Map(s[dimension.Index])
	}
	return self._Aggregate(costs), nil
}

//*******************************************
// utility model service
//*******************************************

// Builds one utility model per query: the query selects the subset of
// state dimensions to monetize and the aggregation, the service
// provides the per-dimension mappings and network tables.
type UtilityModelService struct {
	mappings           Dict[string, IVehicleMapping]
	network            INetworkMapping
	default_dimensions []string
}

func NewUtilityModelService(mappings Dict[string, IVehicleMapping], network INetworkMapping) *UtilityModelService {
	if mappings == nil {
		mappings = NewDict[string, IVehicleMapping](0)
	}
	return &UtilityModelService{
		mappings:           mappings,
		network:            network,
		default_dimensions: []string{"distance"},
	}
}

func (self *UtilityModelService) _QueryDimensions(query Dict[string, any]) ([]string, error) {
	raw, ok := query["vehicle_dimensions"]
	if !ok {
		return self.default_dimensions, nil
	}
	switch value := raw.(type) {
	case []string:
		return value, nil
	case []any:
		names := make([]string, len(value))
		for i, item := range value {
			name, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: parameter 'vehicle_dimensions' must be a list of strings, got %T", ErrBuild, item)
			}
			names[i] = name
		}
		return names, nil
	default:
		return nil, fmt.Errorf("%w: parameter 'vehicle_dimensions' must be a list of strings, got %T", ErrBuild, raw)
	}
}

// Builds a utility model over the given traversal state model. A
// requested dimension the state model does not declare is a build
// error, never silently ignored.
func (self *UtilityModelService) Build(query Dict[string, any], state_model *state.StateModel) (*UtilityModel, error) {
	names, err := self._QueryDimensions(query)
	if err != nil {
		return nil, err
	}
	dimensions := make([]Dimension, len(names))
	for i, name := range names {
		index, err := state_model.IndexOf(name)
		if err != nil {
			return nil, fmt.Errorf("%w: dimension '%v' is not declared by the traversal model: %v", ErrBuild, name, err)
		}
		mapping := IVehicleMapping(RawMapping{})
		if self.mappings.ContainsKey(name) {
			mapping = self.mappings.Get(name)
		}
		dimensions[i] = Dimension{
			Name:    name,
			Index:   index,
			Mapping: mapping,
		}
	}

	aggregation := AGGREGATION_SUM
	if raw, ok := query["cost_aggregation"]; ok {
		value, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: parameter 'cost_aggregation' must be a string, got %T", ErrBuild, raw)
		}
		aggregation, ok = CostAggregationFromString(value)
		if !ok {
			return nil, fmt.Errorf("%w: unknown cost aggregation '%v'", ErrBuild, value)
		}
	}
	return NewUtilityModel(dimensions, self.network, aggregation), nil
}
