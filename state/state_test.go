package state

import (
	"errors"
	"testing"
)

func testModel() *StateModel {
	return NewStateModel([]Feature{
		{Name: "distance", Type: "distance", Unit: "meters"},
		{Name: "time", Type: "time", Unit: "seconds"},
	})
}

func TestUpdateOperations(t *testing.T) {
	cases := []struct {
		op   UpdateOperation
		prev StateVar
		next StateVar
		want StateVar
	}{
		{REPLACE, 3, 7, 7},
		{ADD, 3, 7, 10},
		{MULTIPLY, 3, 7, 21},
		{MAX, 3, 7, 7},
		{MAX, 9, 7, 9},
		{MIN, 3, 7, 3},
		{FunctionOp(func(prev, next StateVar) StateVar { return prev - next }), 10, 4, 6},
	}
	for i, c := range cases {
		if got := c.op.Perform(c.prev, c.next); got != c.want {
			t.Errorf("case %v: got %v; want %v", i, got, c.want)
		}
	}
}

func TestStateModelResolve(t *testing.T) {
	model := testModel()

	index, err := model.IndexOf("time")
	if err != nil || index != 1 {
		t.Errorf("IndexOf(time) = %v, %v; want 1, nil", index, err)
	}
	_, err = model.IndexOf("energy")
	if !errors.Is(err, ErrUnknownName) {
		t.Errorf("got %v; want ErrUnknownName", err)
	}
}

func TestStateModelUpdate(t *testing.T) {
	model := testModel()
	s := model.InitialState()
	if len(s) != 2 || s[0] != 0 || s[1] != 0 {
		t.Fatalf("initial state = %v", s)
	}

	if err := model.Update(s, 0, ADD, 100); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := model.Update(s, 0, ADD, 50); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if s[0] != 150 {
		t.Errorf("distance slot = %v; want 150", s[0])
	}

	// out of range never silently no-ops
	err := model.Update(s, 2, ADD, 1)
	if !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("got %v; want ErrIndexOutOfBounds", err)
	}
}

func TestStateModelEncodeDecode(t *testing.T) {
	model := testModel()

	v, err := model.Encode(42.5, "distance", "meters", 0)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	got, err := model.Decode(v, 0)
	if err != nil || got != 42.5 {
		t.Errorf("round trip = %v, %v; want 42.5, nil", got, err)
	}

	_, err = model.Encode(42.5, "time", "meters", 0)
	if !errors.Is(err, ErrUnexpectedType) {
		t.Errorf("got %v; want ErrUnexpectedType", err)
	}
	_, err = model.Encode(42.5, "distance", "miles", 0)
	if !errors.Is(err, ErrUnexpectedUnit) {
		t.Errorf("got %v; want ErrUnexpectedUnit", err)
	}
	_, err = model.Decode(0, 5)
	if !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("got %v; want ErrIndexOutOfBounds", err)
	}
}

func TestStateCopyDoesNotAlias(t *testing.T) {
	s := TraversalState{1, 2, 3}
	c := s.Copy()
	c[0] = 99
	if s[0] != 1 {
		t.Errorf("copy aliases the original state")
	}
}
