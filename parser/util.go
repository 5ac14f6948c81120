package parser

import (
	"strconv"
	"strings"
)

//*******************************************
// utility methods
//*******************************************

type RoadType byte

const (
	MOTORWAY       RoadType = 1
	MOTORWAY_LINK  RoadType = 2
	TRUNK          RoadType = 3
	TRUNK_LINK     RoadType = 4
	PRIMARY        RoadType = 5
	PRIMARY_LINK   RoadType = 6
	SECONDARY      RoadType = 7
	SECONDARY_LINK RoadType = 8
	TERTIARY       RoadType = 9
	TERTIARY_LINK  RoadType = 10
	RESIDENTIAL    RoadType = 11
	LIVING_STREET  RoadType = 12
	UNCLASSIFIED   RoadType = 13
	ROAD           RoadType = 14
	TRACK          RoadType = 15
)

func _IsOneway(oneway string, str_type RoadType) bool {
	if str_type == MOTORWAY || str_type == TRUNK || str_type == MOTORWAY_LINK || str_type == TRUNK_LINK {
		return true
	} else if oneway == "yes" {
		return true
	}
	return false
}

func _GetType(typ string) RoadType {
	switch typ {
	case "motorway":
		return MOTORWAY
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk":
		return TRUNK
	case "trunk_link":
		return TRUNK_LINK
	case "primary":
		return PRIMARY
	case "primary_link":
		return PRIMARY_LINK
	case "secondary":
		return SECONDARY
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary":
		return TERTIARY
	case "tertiary_link":
		return TERTIARY_LINK
	case "residential":
		return RESIDENTIAL
	case "living_street":
		return LIVING_STREET
	case "unclassified":
		return UNCLASSIFIED
	case "road":
		return ROAD
	case "track":
		return TRACK
	}
	return 0
}

func _GetTravelSpeed(streettype RoadType, maxspeed string, tracktype string) int32 {
	var speed int32

	// check if maxspeed is set
	if maxspeed != "" {
		if maxspeed == "walk" {
			speed = 10
		} else if maxspeed == "none" {
			speed = 110
		} else {
			t, err := strconv.Atoi(maxspeed)
			if err != nil {
				speed = 20
			} else {
				speed = int32(t)
			}
		}
		speed = int32(0.9 * float32(speed))
	}

	// set defaults
	if maxspeed == "" {
		switch streettype {
		case MOTORWAY:
			speed = 100
		case TRUNK:
			speed = 85
		case MOTORWAY_LINK, TRUNK_LINK:
			speed = 60
		case PRIMARY:
			speed = 65
		case SECONDARY:
			speed = 60
		case TERTIARY:
			speed = 50
		case PRIMARY_LINK, SECONDARY_LINK:
			speed = 50
		case TERTIARY_LINK:
			speed = 40
		case UNCLASSIFIED:
			speed = 30
		case RESIDENTIAL:
			speed = 30
		case LIVING_STREET:
			speed = 10
		case ROAD:
			speed = 20
		case TRACK:
			switch tracktype {
			case "grade1":
				speed = 40
			case "grade2":
				speed = 30
			case "grade3":
				speed = 20
			case "grade5":
				speed = 10
			default:
				speed = 15
			}
		default:
			speed = 20
		}
	}

	if speed == 0 {
		speed = 10
	}
	return speed
}

// "5%", "-3%", "up", "down" or a bare decimal
func _DecodeIncline(incline string) float32 {
	if incline == "" {
		return 0
	}
	switch incline {
	case "up":
		return 0.05
	case "down":
		return -0.05
	}
	if strings.HasSuffix(incline, "%") {
		value, err := strconv.ParseFloat(strings.TrimSuffix(incline, "%"), 32)
		if err != nil {
			return 0
		}
		return float32(value / 100)
	}
	value, err := strconv.ParseFloat(incline, 32)
	if err != nil {
		return 0
	}
	return float32(value)
}
