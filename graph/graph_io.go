package graph

import (
	"github.com/zenon18/routee-compass/structs"
	. "github.com/zenon18/routee-compass/util"
)

//*******************************************
// graph base store/load
//*******************************************

// Writes the frozen graph snapshot to a single binary file.
func Store(base *GraphBase, file string) error {
	writer := NewBufferWriter()
	WriteArray(writer, base.nodes)
	WriteArray(writer, base.edges)
	return WriteBytesToFile(writer, file)
}

// Loads a graph snapshot written by Store and rebuilds the topology.
func Load(file string) (*GraphBase, error) {
	reader, err := ReadBytesFromFile(file)
	if err != nil {
		return nil, err
	}
	nodes := ReadArray[structs.Node](reader)
	edges := ReadArray[structs.Edge](reader)
	return NewGraphBase(nodes, edges), nil
}
