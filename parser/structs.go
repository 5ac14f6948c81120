package parser

import (
	"github.com/paulmach/orb"
	. "github.com/zenon18/routee-compass/util"
)

//*******************************************
// parser structs
//*******************************************

type NodeAttribs struct {
	StopSign     bool
	TrafficLight bool
}

type EdgeAttribs struct {
	Oneway bool
	// travel speed in kph
	Speed int32
	// decimal rise over run in travel direction
	Grade float32
}

type TempNode struct {
	Point orb.Point
	Count int32
}
type OSMNode struct {
	Point orb.Point
	Attr  NodeAttribs
}
type OSMEdge struct {
	NodeA int
	NodeB int
	Attr  EdgeAttribs
	Nodes List[orb.Point]
}
