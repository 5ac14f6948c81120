package parser

import (
	. "github.com/zenon18/routee-compass/util"
)

//*******************************************
// osm decoder
//*******************************************

type IOSMDecoder interface {
	IsValidHighway(tags Dict[string, string]) bool
	DecodeNode(tags Dict[string, string]) NodeAttribs
	DecodeEdge(tags Dict[string, string]) EdgeAttribs
}

type DrivingDecoder struct {
}

var driving_types = Dict[string, bool]{"motorway": true, "motorway_link": true, "trunk": true, "trunk_link": true,
	"primary": true, "primary_link": true, "secondary": true, "secondary_link": true, "tertiary": true, "tertiary_link": true,
	"residential": true, "living_street": true, "service": true, "track": true, "unclassified": true, "road": true}

func (self *DrivingDecoder) IsValidHighway(tags Dict[string, string]) bool {
	if !tags.ContainsKey("highway") {
		return false
	}
	if !driving_types.ContainsKey(tags.Get("highway")) {
		return false
	}
	return true
}
func (self *DrivingDecoder) DecodeNode(tags Dict[string, string]) NodeAttribs {
	return NodeAttribs{
		StopSign:     tags.Get("highway") == "stop",
		TrafficLight: tags.Get("highway") == "traffic_signals",
	}
}
func (self *DrivingDecoder) DecodeEdge(tags Dict[string, string]) EdgeAttribs {
	maxspeed := tags.Get("maxspeed")
	str_type := tags.Get("highway")
	oneway := tags.Get("oneway")
	track_type := tags.Get("tracktype")
	incline := tags.Get("incline")
	e := EdgeAttribs{}
	road_type := _GetType(str_type)
	e.Speed = _GetTravelSpeed(road_type, maxspeed, track_type)
	e.Oneway = _IsOneway(oneway, road_type)
	e.Grade = _DecodeIncline(incline)
	return e
}
