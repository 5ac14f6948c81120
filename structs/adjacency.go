package structs

import (
	. "github.com/zenon18/routee-compass/util"
)

//*******************************************
// adjacency accessor interface
//*******************************************

// Iterator over the incident edges of a node.
//
// Not thread safe, use one instance per search.
type IAdjAccessor interface {
	SetBaseNode(node int32, forward bool)
	Next() bool
	GetEdgeID() int32
	GetOtherID() int32
}

//*******************************************
// dynamic adjacency (build time)
//*******************************************

type AdjacencyList struct {
	fwd_entries List[List[Tuple[int32, int32]]]
	bwd_entries List[List[Tuple[int32, int32]]]
}

func NewAdjacencyList(node_count int) AdjacencyList {
	fwd_entries := NewList[List[Tuple[int32, int32]]](node_count)
	bwd_entries := NewList[List[Tuple[int32, int32]]](node_count)
	for i := 0; i < node_count; i++ {
		fwd_entries.Add(NewList[Tuple[int32, int32]](2))
		bwd_entries.Add(NewList[Tuple[int32, int32]](2))
	}
	return AdjacencyList{
		fwd_entries: fwd_entries,
		bwd_entries: bwd_entries,
	}
}

// Registers edge (node_a -> node_b) in the forward adjacency of node_a
// and the backward adjacency of node_b.
func (self *AdjacencyList) AddEdgeEntries(node_a, node_b, edge_id int32) {
	fwd := self.fwd_entries[node_a]
	fwd.Add(MakeTuple(edge_id, node_b))
	self.fwd_entries[node_a] = fwd
	bwd := self.bwd_entries[node_b]
	bwd.Add(MakeTuple(edge_id, node_a))
	self.bwd_entries[node_b] = bwd
}

//*******************************************
// static adjacency (search time)
//*******************************************

// Compressed adjacency built once and never mutated afterwards.
// fwd_refs/bwd_refs hold (edge_id, other_node) pairs ordered by edge id
// per node, so iteration order is deterministic for a fixed graph.
type AdjacencyArray struct {
	fwd_starts Array[int32]
	fwd_refs   Array[Tuple[int32, int32]]
	bwd_starts Array[int32]
	bwd_refs   Array[Tuple[int32, int32]]
}

func AdjacencyListToArray(dyn *AdjacencyList) AdjacencyArray {
	node_count := dyn.fwd_entries.Length()
	fwd_starts := NewArray[int32](node_count + 1)
	bwd_starts := NewArray[int32](node_count + 1)
	fwd_refs := NewList[Tuple[int32, int32]](node_count)
	bwd_refs := NewList[Tuple[int32, int32]](node_count)
	for i := 0; i < node_count; i++ {
		fwd_starts[i] = int32(fwd_refs.Length())
		for _, ref := range dyn.fwd_entries[i] {
			fwd_refs.Add(ref)
		}
		bwd_starts[i] = int32(bwd_refs.Length())
		for _, ref := range dyn.bwd_entries[i] {
			bwd_refs.Add(ref)
		}
	}
	fwd_starts[node_count] = int32(fwd_refs.Length())
	bwd_starts[node_count] = int32(bwd_refs.Length())

	return AdjacencyArray{
		fwd_starts: fwd_starts,
		fwd_refs:   Array[Tuple[int32, int32]](fwd_refs),
		bwd_starts: bwd_starts,
		bwd_refs:   Array[Tuple[int32, int32]](bwd_refs),
	}
}

func (self *AdjacencyArray) GetAccessor() AdjArrayAccessor {
	return AdjArrayAccessor{
		topology: self,
	}
}

func (self *AdjacencyArray) GetDegree(node int32, forward bool) int16 {
	if forward {
		return int16(self.fwd_starts[node+1] - self.fwd_starts[node])
	}
	return int16(self.bwd_starts[node+1] - self.bwd_starts[node])
}

//*******************************************
// static adjacency accessor
//*******************************************

var _ IAdjAccessor = &AdjArrayAccessor{}

type AdjArrayAccessor struct {
	topology *AdjacencyArray
	state    int32
	end      int32
	refs     Array[Tuple[int32, int32]]
}

func (self *AdjArrayAccessor) SetBaseNode(node int32, forward bool) {
	if forward {
		self.state = self.topology.fwd_starts[node]
		self.end = self.topology.fwd_starts[node+1]
		self.refs = self.topology.fwd_refs
	} else {
		self.state = self.topology.bwd_starts[node]
		self.end = self.topology.bwd_starts[node+1]
		self.refs = self.topology.bwd_refs
	}
	self.state -= 1
}

func (self *AdjArrayAccessor) Next() bool {
	self.state += 1
	return self.state < self.end
}

func (self *AdjArrayAccessor) GetEdgeID() int32 {
	return self.refs[self.state].A
}

func (self *AdjArrayAccessor) GetOtherID() int32 {
	return self.refs[self.state].B
}
