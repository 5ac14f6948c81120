package state

import (
	. "github.com/zenon18/routee-compass/util"
)

//*******************************************
// state model
//*******************************************

// Declares one named dimension of a state vector together with its
// semantic type (e.g. "distance") and unit (e.g. "meters").
type Feature struct {
	Name string
	Type string
	Unit string
}

// Resolves dimension names to slot indices once at model-build time.
// Per-step reads and writes go through indices only.
type StateModel struct {
	features []Feature
	indices  Dict[string, int]
}

func NewStateModel(features []Feature) *StateModel {
	indices := NewDict[string, int](len(features))
	for i, feature := range features {
		indices[feature.Name] = i
	}
	return &StateModel{
		features: features,
		indices:  indices,
	}
}

func (self *StateModel) Length() int {
	return len(self.features)
}

func (self *StateModel) Names() []string {
	names := make([]string, len(self.features))
	for i, feature := range self.features {
		names[i] = feature.Name
	}
	return names
}

func (self *StateModel) IndexOf(name string) (int, error) {
	index, ok := self.indices[name]
	if !ok {
		return 0, unknownNameError(name, self.Names())
	}
	return index, nil
}

func (self *StateModel) FeatureAt(index int) (Feature, error) {
	if index < 0 || index >= len(self.features) {
		return Feature{}, indexError(index, len(self.features))
	}
	return self.features[index], nil
}

// State at the origin before any edge is traversed.
func (self *StateModel) InitialState() TraversalState {
	return NewTraversalState(len(self.features))
}

func (self *StateModel) Get(s TraversalState, index int) (StateVar, error) {
	if index < 0 || index >= len(s) {
		return 0, indexError(index, len(s))
	}
	return s[index], nil
}

func (self *StateModel) Update(s TraversalState, index int, op UpdateOperation, value StateVar) error {
	if index < 0 || index >= len(s) {
		return indexError(index, len(s))
	}
	s[index] = op.Perform(s[index], value)
	return nil
}

// Checks a decoded value's declared semantics against the dimension
// before writing it into a state slot.
func (self *StateModel) Encode(value float64, typ, unit string, index int) (StateVar, error) {
	feature, err := self.FeatureAt(index)
	if err != nil {
		return 0, err
	}
	if feature.Type != typ {
		return 0, typeError(feature.Type, typ)
	}
	if feature.Unit != unit {
		return 0, unitError(feature.Unit, unit)
	}
	return StateVar(value), nil
}

func (self *StateModel) Decode(v StateVar, index int) (float64, error) {
	if _, err := self.FeatureAt(index); err != nil {
		return 0, err
	}
	return float64(v), nil
}
