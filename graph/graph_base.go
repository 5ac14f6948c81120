package graph

import (
	"github.com/paulmach/orb"

	"github.com/zenon18/routee-compass/structs"
	. "github.com/zenon18/routee-compass/util"
)

//*******************************************
// graph base interface
//*******************************************

type IGraphBase interface {
	NodeCount() int
	EdgeCount() int
	IsNode(node int32) bool
	IsEdge(edge int32) bool
	GetNode(node int32) structs.Node
	GetEdge(edge int32) structs.Edge
	GetNodeGeom(node int32) orb.Point
	GetAccessor() structs.AdjArrayAccessor
	GetNodeDegree(node int32, dir Direction) int16
}

//*******************************************
// graph base
//*******************************************

var _ IGraphBase = &GraphBase{}

// Arena of nodes and edges addressed by dense id. Built once, frozen,
// then shared by all query workers.
type GraphBase struct {
	nodes    Array[structs.Node]
	edges    Array[structs.Edge]
	topology structs.AdjacencyArray
}

func NewGraphBase(nodes Array[structs.Node], edges Array[structs.Edge]) *GraphBase {
	// EdgeID always mirrors the dense array index
	for i := range edges {
		edges[i].EdgeID = int32(i)
	}
	return &GraphBase{
		nodes:    nodes,
		edges:    edges,
		topology: _BuildTopology(nodes, edges),
	}
}

func (self *GraphBase) NodeCount() int {
	return len(self.nodes)
}
func (self *GraphBase) EdgeCount() int {
	return len(self.edges)
}
func (self *GraphBase) IsNode(node int32) bool {
	return node >= 0 && node < int32(len(self.nodes))
}
func (self *GraphBase) IsEdge(edge int32) bool {
	return edge >= 0 && edge < int32(len(self.edges))
}
func (self *GraphBase) GetNode(node int32) structs.Node {
	return self.nodes[node]
}
func (self *GraphBase) GetEdge(edge int32) structs.Edge {
	return self.edges[edge]
}
func (self *GraphBase) GetNodeGeom(node int32) orb.Point {
	return self.nodes[node].Loc
}
func (self *GraphBase) GetAccessor() structs.AdjArrayAccessor {
	return self.topology.GetAccessor()
}
func (self *GraphBase) GetNodeDegree(node int32, dir Direction) int16 {
	return self.topology.GetDegree(node, dir == FORWARD)
}

//*******************************************
// build graph components
//*******************************************

func _BuildTopology(nodes Array[structs.Node], edges Array[structs.Edge]) structs.AdjacencyArray {
	dyn := structs.NewAdjacencyList(nodes.Length())
	for id, edge := range edges {
		dyn.AddEdgeEntries(edge.NodeA, edge.NodeB, int32(id))
	}
	return structs.AdjacencyListToArray(&dyn)
}
