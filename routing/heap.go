package routing

import (
	"github.com/zenon18/routee-compass/unit"
)

//*******************************************
// frontier heap
//*******************************************

type _HeapItem struct {
	id       int32
	priority unit.Cost
}

// Concrete-typed min-heap for the search frontier, avoids the
// interface boxing of container/heap. Stale entries are skipped on pop
// instead of decreased in place.
//
// Equal priorities are ordered by id so repeated searches over the
// same inputs pop in the same order.
type MinHeap struct {
	items []_HeapItem
}

func NewMinHeap(cap int) *MinHeap {
	return &MinHeap{
		items: make([]_HeapItem, 0, cap),
	}
}

func (self *MinHeap) Len() int {
	return len(self.items)
}

func (self *MinHeap) Push(id int32, priority unit.Cost) {
	self.items = append(self.items, _HeapItem{id, priority})
	self._SiftUp(len(self.items) - 1)
}

func (self *MinHeap) Pop() (int32, unit.Cost, bool) {
	n := len(self.items)
	if n == 0 {
		return 0, unit.ZERO_COST, false
	}
	item := self.items[0]
	self.items[0] = self.items[n-1]
	self.items = self.items[:n-1]
	if len(self.items) > 0 {
		self._SiftDown(0)
	}
	return item.id, item.priority, true
}

func _ItemLess(a, b _HeapItem) bool {
	if a.priority != b.priority {
		return a.priority.Less(b.priority)
	}
	return a.id < b.id
}

func (self *MinHeap) _SiftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !_ItemLess(self.items[i], self.items[parent]) {
			break
		}
		self.items[i], self.items[parent] = self.items[parent], self.items[i]
		i = parent
	}
}

func (self *MinHeap) _SiftDown(i int) {
	n := len(self.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && _ItemLess(self.items[left], self.items[smallest]) {
			smallest = left
		}
		if right < n && _ItemLess(self.items[right], self.items[smallest]) {
			smallest = right
		}
		if smallest == i {
			break
		}
		self.items[i], self.items[smallest] = self.items[smallest], self.items[i]
		i = smallest
	}
}
