package utility

import (
	"github.com/zenon18/routee-compass/state"
	"github.com/zenon18/routee-compass/structs"
	"github.com/zenon18/routee-compass/unit"
	. "github.com/zenon18/routee-compass/util"
)

//*******************************************
// vehicle mappings
//*******************************************

// Maps one state dimension's value to a cost.
type IVehicleMapping interface {
	Map(value state.StateVar) unit.Cost
}

var _ IVehicleMapping = RawMapping{}

// Uses the dimension value as the cost unchanged.
type RawMapping struct{}

func (self RawMapping) Map(value state.StateVar) unit.Cost {
	return unit.Cost(value)
}

var _ IVehicleMapping = FactorMapping{}

// Scales the dimension value by a constant factor.
type FactorMapping struct {
	Factor float64
}

func (self FactorMapping) Map(value state.StateVar) unit.Cost {
	return unit.Cost(float64(value) * self.Factor)
}

var _ IVehicleMapping = OffsetMapping{}

// Shifts the dimension value by a constant offset.
type OffsetMapping struct {
	Offset float64
}

func (self OffsetMapping) Map(value state.StateVar) unit.Cost {
	return unit.Cost(float64(value) + self.Offset)
}

var _ IVehicleMapping = CombinedVehicleMapping{}

// Applies a list of mappings and sums their individual costs.
type CombinedVehicleMapping struct {
	Mappings []IVehicleMapping
}

func (self CombinedVehicleMapping) Map(value state.StateVar) unit.Cost {
	total := unit.ZERO_COST
	for _, mapping := range self.Mappings {
		total = total.Add(mapping.Map(value))
	}
	return total
}

//*******************************************
// network mappings
//*******************************************

// Adds network-derived costs on top of the vehicle dimensions: a
// traversal component consulted when an edge is accessed and an access
// component consulted on the transition between two edges.
type INetworkMapping interface {
	TraversalCost(edge structs.Edge) unit.Cost
	AccessCost(prev_edge, next_edge structs.Edge) unit.Cost
}

var _ INetworkMapping = &ZeroNetworkMapping{}

// Default network mapping, contributes nothing.
type ZeroNetworkMapping struct{}

func (self *ZeroNetworkMapping) TraversalCost(edge structs.Edge) unit.Cost {
	return unit.ZERO_COST
}
func (self *ZeroNetworkMapping) AccessCost(prev_edge, next_edge structs.Edge) unit.Cost {
	return unit.ZERO_COST
}

var _ INetworkMapping = &EdgeLookupMapping{}

// Direct table from edge id to cost, consulted on edge access only.
type EdgeLookupMapping struct {
	costs Array[unit.Cost]
}

func NewEdgeLookupMapping(costs Array[unit.Cost]) *EdgeLookupMapping {
	return &EdgeLookupMapping{
		costs: costs,
	}
}

func (self *EdgeLookupMapping) TraversalCost(edge structs.Edge) unit.Cost {
	if int(edge.EdgeID) >= self.costs.Length() {
		return unit.ZERO_COST
	}
	return self.costs[edge.EdgeID]
}
func (self *EdgeLookupMapping) AccessCost(prev_edge, next_edge structs.Edge) unit.Cost {
	return unit.ZERO_COST
}

var _ INetworkMapping = &EdgeEdgeLookupMapping{}

// Table keyed by (incoming edge, outgoing edge), consulted on the
// transition between two edges only.
type EdgeEdgeLookupMapping struct {
	costs Dict[Tuple[int32, int32], unit.Cost]
}

func NewEdgeEdgeLookupMapping(costs Dict[Tuple[int32, int32], unit.Cost]) *EdgeEdgeLookupMapping {
	return &EdgeEdgeLookupMapping{
		costs: costs,
	}
}

func (self *EdgeEdgeLookupMapping) TraversalCost(edge structs.Edge) unit.Cost {
	return unit.ZERO_COST
}
func (self *EdgeEdgeLookupMapping) AccessCost(prev_edge, next_edge structs.Edge) unit.Cost {
	key := MakeTuple(prev_edge.EdgeID, next_edge.EdgeID)
	if !self.costs.ContainsKey(key) {
		return unit.ZERO_COST
	}
	return self.costs.Get(key)
}

var _ INetworkMapping = &CombinedNetworkMapping{}

// Applies a list of network mappings and sums their costs.
type CombinedNetworkMapping struct {
	mappings []INetworkMapping
}

func NewCombinedNetworkMapping(mappings ...INetworkMapping) *CombinedNetworkMapping {
	return &CombinedNetworkMapping{
		mappings: mappings,
	}
}

func (self *CombinedNetworkMapping) TraversalCost(edge structs.Edge) unit.Cost {
	total := unit.ZERO_COST
	for _, mapping := range self.mappings {
		total = total.Add(mapping.TraversalCost(edge))
	}
	return total
}
func (self *CombinedNetworkMapping) AccessCost(prev_edge, next_edge structs.Edge) unit.Cost {
	total := unit.ZERO_COST
	for _, mapping := range self.mappings {
		total = total.Add(mapping.AccessCost(prev_edge, next_edge))
	}
	return total
}
