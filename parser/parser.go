package parser

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/zenon18/routee-compass/graph"
	"github.com/zenon18/routee-compass/structs"
	"github.com/zenon18/routee-compass/unit"
	. "github.com/zenon18/routee-compass/util"
	"golang.org/x/exp/slog"
)

// Reads an osm pbf extract into a graph snapshot plus the per-edge
// travel speed table (kph) consumed by the speed model service.
func ParseGraph(pbf_file string, decoder IOSMDecoder) (*graph.GraphBase, Array[unit.Speed], error) {
	nodes := NewList[OSMNode](10000)
	edges := NewList[OSMEdge](10000)
	index_mapping := NewDict[int64, int](10000)
	if err := _ParseOsm(pbf_file, decoder, &nodes, &edges, &index_mapping); err != nil {
		return nil, nil, err
	}
	slog.Info(fmt.Sprintf("parsed %v nodes and %v ways", nodes.Length(), edges.Length()))
	base, speeds := _CreateGraphBase(&nodes, &edges)
	return base, speeds, nil
}

func _ParseOsm(filename string, decoder IOSMDecoder, nodes *List[OSMNode], edges *List[OSMEdge], index_mapping *Dict[int64, int]) error {
	osm_nodes := NewDict[int64, TempNode](1000)

	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failure opening pbf file: %w", err)
	}
	defer file.Close()

	scanner := osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	_InitWayHandler(scanner, decoder, &osm_nodes)
	scanner.Close()
	file.Seek(0, 0)
	scanner = osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	_NodeHandler(scanner, decoder, &osm_nodes, nodes, index_mapping)
	scanner.Close()
	file.Seek(0, 0)
	scanner = osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	_WayHandler(scanner, decoder, edges, &osm_nodes, index_mapping)
	scanner.Close()
	return nil
}

func _CreateGraphBase(osmnodes *List[OSMNode], osmedges *List[OSMEdge]) (*graph.GraphBase, Array[unit.Speed]) {
	nodes := NewList[structs.Node](osmnodes.Length())
	edges := NewList[structs.Edge](osmedges.Length() * 2)
	speeds := NewList[unit.Speed](osmedges.Length() * 2)

	for _, osmnode := range *osmnodes {
		nodes.Add(structs.Node{
			Loc: osmnode.Point,
		})
	}

	for _, osmedge := range *osmedges {
		distance := _WayLength(osmedge.Nodes)
		// stop attributes live on the node the edge runs into
		target := osmnodes.Get(osmedge.NodeB)
		edges.Add(structs.Edge{
			NodeA:        int32(osmedge.NodeA),
			NodeB:        int32(osmedge.NodeB),
			Distance:     distance,
			Grade:        osmedge.Attr.Grade,
			StopSign:     target.Attr.StopSign,
			TrafficLight: target.Attr.TrafficLight,
		})
		speeds.Add(unit.Speed(osmedge.Attr.Speed))
		if !osmedge.Attr.Oneway {
			source := osmnodes.Get(osmedge.NodeA)
			edges.Add(structs.Edge{
				NodeA:        int32(osmedge.NodeB),
				NodeB:        int32(osmedge.NodeA),
				Distance:     distance,
				Grade:        -osmedge.Attr.Grade,
				StopSign:     source.Attr.StopSign,
				TrafficLight: source.Attr.TrafficLight,
			})
			speeds.Add(unit.Speed(osmedge.Attr.Speed))
		}
	}

	base := graph.NewGraphBase(Array[structs.Node](nodes), Array[structs.Edge](edges))
	return base, Array[unit.Speed](speeds)
}

func _WayLength(points List[orb.Point]) float32 {
	length := 0.0
	for i := 1; i < points.Length(); i++ {
		length += geo.Distance(points.Get(i-1), points.Get(i))
	}
	return float32(length)
}

//*******************************************
// osm handler methods
//*******************************************

func _InitWayHandler(scanner *osmpbf.Scanner, decoder IOSMDecoder, osm_nodes *Dict[int64, TempNode]) {
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidHighway(tags) {
				continue
			}
			nodes := object.Nodes.NodeIDs()
			l := len(nodes)
			for i := 0; i < l; i++ {
				ndref := nodes[i].FeatureID().Ref()
				if !osm_nodes.ContainsKey(ndref) {
					(*osm_nodes)[ndref] = TempNode{orb.Point{0, 0}, 1}
				} else {
					node := (*osm_nodes)[ndref]
					node.Count += 1
					(*osm_nodes)[ndref] = node
				}
			}
			node_a := (*osm_nodes)[nodes[0].FeatureID().Ref()]
			node_b := (*osm_nodes)[nodes[l-1].FeatureID().Ref()]
			node_a.Count += 1
			node_b.Count += 1
			(*osm_nodes)[nodes[0].FeatureID().Ref()] = node_a
			(*osm_nodes)[nodes[l-1].FeatureID().Ref()] = node_b
		default:
			continue
		}
	}
}

func _NodeHandler(scanner *osmpbf.Scanner, decoder IOSMDecoder, osm_nodes *Dict[int64, TempNode], nodes *List[OSMNode], index_mapping *Dict[int64, int]) {
	i := 0
	c := 0

	scanner.SkipWays = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Node:
			id := object.FeatureID().Ref()
			if !osm_nodes.ContainsKey(id) {
				continue
			}
			tags := Dict[string, string](object.TagMap())
			c += 1
			if c%1000 == 0 {
				slog.Debug(fmt.Sprintf("%v nodes scanned", c))
			}
			on := osm_nodes.Get(id)
			if on.Count > 1 {
				node_attr := decoder.DecodeNode(tags)
				nodes.Add(OSMNode{orb.Point{object.Lon, object.Lat}, node_attr})
				index_mapping.Set(id, i)
				i += 1
			}
			on.Point[0] = object.Lon
			on.Point[1] = object.Lat
			osm_nodes.Set(id, on)
		default:
			continue
		}
	}
}

func _WayHandler(scanner *osmpbf.Scanner, decoder IOSMDecoder, edges *List[OSMEdge], osm_nodes *Dict[int64, TempNode], index_mapping *Dict[int64, int]) {
	c := 0
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidHighway(tags) {
				continue
			}
			c += 1
			if c%1000 == 0 {
				slog.Debug(fmt.Sprintf("%v ways scanned", c))
			}

			nodes := object.Nodes.NodeIDs()
			l := len(nodes)
			start := nodes[0].FeatureID().Ref()
			curr := int64(0)
			e := OSMEdge{}
			for i := 0; i < l; i++ {
				curr = nodes[i].FeatureID().Ref()
				on := osm_nodes.Get(curr)
				if e.Nodes == nil {
					e.Nodes = NewList[orb.Point](4)
				}
				e.Nodes.Add(on.Point)
				if on.Count > 1 && curr != start {
					e.NodeA = index_mapping.Get(start)
					e.NodeB = index_mapping.Get(curr)
					e.Attr = decoder.DecodeEdge(tags)
					edges.Add(e)
					start = curr
					e = OSMEdge{}
					e.Nodes = NewList[orb.Point](4)
					e.Nodes.Add(on.Point)
				}
			}
		default:
			continue
		}
	}
}
