package graph

import (
	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"
)

//*******************************************
// graph index
//*******************************************

type IGraphIndex interface {
	GetClosestNode(point orb.Point) (int32, bool)
}

var _ IGraphIndex = &BaseGraphIndex{}

type BaseGraphIndex struct {
	tree rtree.RTreeG[int32]
}

func BuildGraphIndex(base IGraphBase) IGraphIndex {
	index := &BaseGraphIndex{}
	for i := 0; i < base.NodeCount(); i++ {
		loc := base.GetNodeGeom(int32(i))
		p := [2]float64{loc.Lon(), loc.Lat()}
		index.tree.Insert(p, p, int32(i))
	}
	return index
}

func (self *BaseGraphIndex) GetClosestNode(point orb.Point) (int32, bool) {
	p := [2]float64{point.Lon(), point.Lat()}
	node := int32(-1)
	found := false
	self.tree.Nearby(
		rtree.BoxDist[float64, int32](p, p, nil),
		func(min, max [2]float64, data int32, dist float64) bool {
			node = data
			found = true
			return false
		},
	)
	return node, found
}
