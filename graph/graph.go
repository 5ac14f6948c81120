package graph

import (
	"github.com/paulmach/orb"

	"github.com/zenon18/routee-compass/structs"
	. "github.com/zenon18/routee-compass/util"
)

//*******************************************
// graph interfaces
//*******************************************

type IGraph interface {
	NodeCount() int
	EdgeCount() int
	IsNode(node int32) bool
	IsEdge(edge int32) bool
	GetNode(node int32) structs.Node
	GetEdge(edge int32) structs.Edge
	GetNodeGeom(node int32) orb.Point
	GetGraphExplorer() IGraphExplorer
	GetClosestNode(point orb.Point) (int32, bool)
}

// not thread safe, use only one instance per query
type IGraphExplorer interface {
	// Iterates the adjacency of a node calling the callback for every
	// incident edge (FORWARD means outgoing edges, BACKWARD ingoing).
	ForAdjacentEdges(node int32, dir Direction, callback func(EdgeRef))
	GetOtherNode(edge EdgeRef, node int32) int32
}

type EdgeRef struct {
	EdgeID  int32
	OtherID int32
}

//*******************************************
// base-graph
//*******************************************

var _ IGraph = &Graph{}

type Graph struct {
	base  IGraphBase
	index Optional[IGraphIndex]
}

// The spatial index is built here so the graph is never mutated after
// construction, which is what makes lock-free concurrent reads safe.
func NewGraph(base IGraphBase) *Graph {
	return &Graph{
		base:  base,
		index: Some(BuildGraphIndex(base)),
	}
}

func (self *Graph) NodeCount() int {
	return self.base.NodeCount()
}
func (self *Graph) EdgeCount() int {
	return self.base.EdgeCount()
}
func (self *Graph) IsNode(node int32) bool {
	return self.base.IsNode(node)
}
func (self *Graph) IsEdge(edge int32) bool {
	return self.base.IsEdge(edge)
}
func (self *Graph) GetNode(node int32) structs.Node {
	return self.base.GetNode(node)
}
func (self *Graph) GetEdge(edge int32) structs.Edge {
	return self.base.GetEdge(edge)
}
func (self *Graph) GetNodeGeom(node int32) orb.Point {
	return self.base.GetNodeGeom(node)
}
func (self *Graph) GetGraphExplorer() IGraphExplorer {
	return &BaseGraphExplorer{
		graph:    self,
		accessor: self.base.GetAccessor(),
	}
}
func (self *Graph) GetClosestNode(point orb.Point) (int32, bool) {
	if !self.index.HasValue() {
		return -1, false
	}
	return self.index.Value.GetClosestNode(point)
}

//*******************************************
// base-graph explorer
//*******************************************

type BaseGraphExplorer struct {
	graph    *Graph
	accessor structs.AdjArrayAccessor
}

func (self *BaseGraphExplorer) ForAdjacentEdges(node int32, dir Direction, callback func(EdgeRef)) {
	self.accessor.SetBaseNode(node, dir == FORWARD)
	for self.accessor.Next() {
		callback(EdgeRef{
			EdgeID:  self.accessor.GetEdgeID(),
			OtherID: self.accessor.GetOtherID(),
		})
	}
}

func (self *BaseGraphExplorer) GetOtherNode(edge EdgeRef, node int32) int32 {
	e := self.graph.GetEdge(edge.EdgeID)
	if node == e.NodeA {
		return e.NodeB
	}
	if node == e.NodeB {
		return e.NodeA
	}
	return -1
}
