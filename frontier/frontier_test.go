package frontier

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/zenon18/routee-compass/structs"
	. "github.com/zenon18/routee-compass/util"
)

func TestPassthroughModel(t *testing.T) {
	model := NewPassthroughModel()

	edge := structs.Edge{EdgeID: 0, NodeA: 0, NodeB: 1, Distance: 100}
	if !model.Valid(None[structs.Edge](), edge, nil) {
		t.Error("passthrough model rejected an edge")
	}
}

func TestGradeLimitModel(t *testing.T) {
	model := NewGradeLimitModel(0.1)

	flat := structs.Edge{EdgeID: 0, Grade: 0.05}
	if !model.Valid(None[structs.Edge](), flat, nil) {
		t.Error("expected edge with grade 0.05 to be valid")
	}
	steep := structs.Edge{EdgeID: 1, Grade: 0.2}
	if model.Valid(None[structs.Edge](), steep, nil) {
		t.Error("expected edge with grade 0.2 to be excluded")
	}
	downhill := structs.Edge{EdgeID: 2, Grade: -0.2}
	if model.Valid(None[structs.Edge](), downhill, nil) {
		t.Error("expected edge with grade -0.2 to be excluded")
	}
}

func TestBBoxModel(t *testing.T) {
	node_geoms := NewArray[orb.Point](3)
	node_geoms[0] = orb.Point{0, 0}
	node_geoms[1] = orb.Point{0.5, 0.5}
	node_geoms[2] = orb.Point{2, 2}
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}
	model := NewBBoxModel(bound, node_geoms)

	inside := structs.Edge{EdgeID: 0, NodeA: 0, NodeB: 1}
	if !model.Valid(None[structs.Edge](), inside, nil) {
		t.Error("expected edge towards node 1 to be valid")
	}
	outside := structs.Edge{EdgeID: 1, NodeA: 1, NodeB: 2}
	if model.Valid(None[structs.Edge](), outside, nil) {
		t.Error("expected edge towards node 2 to be excluded")
	}
}

func TestTurnRestrictionModel(t *testing.T) {
	model := NewTurnRestrictionModel([]Tuple[int32, int32]{
		MakeTuple(int32(0), int32(1)),
	})

	edge_0 := structs.Edge{EdgeID: 0}
	edge_1 := structs.Edge{EdgeID: 1}
	edge_2 := structs.Edge{EdgeID: 2}

	// expansions from the origin have no incoming edge
	if !model.Valid(None[structs.Edge](), edge_1, nil) {
		t.Error("expected origin expansion to be valid")
	}
	if model.Valid(Some(edge_0), edge_1, nil) {
		t.Error("expected transition 0 -> 1 to be excluded")
	}
	if !model.Valid(Some(edge_0), edge_2, nil) {
		t.Error("expected transition 0 -> 2 to be valid")
	}
}

func TestCombinedModel(t *testing.T) {
	model := NewCombinedModel(
		NewPassthroughModel(),
		NewGradeLimitModel(0.1),
	)

	flat := structs.Edge{EdgeID: 0, Grade: 0.0}
	if !model.Valid(None[structs.Edge](), flat, nil) {
		t.Error("expected flat edge to pass both models")
	}
	steep := structs.Edge{EdgeID: 1, Grade: 0.5}
	if model.Valid(None[structs.Edge](), steep, nil) {
		t.Error("expected steep edge to be excluded by the combined model")
	}
}
