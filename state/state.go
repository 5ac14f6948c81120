package state

//*******************************************
// state vector
//*******************************************

// Single ordered numeric value inside a traversal state.
type StateVar float64

// Ordered, fixed-length sequence of state variables, one slot per named
// dimension of a traversal model instance. Index i refers to the same
// dimension for the lifetime of one model instance.
type TraversalState []StateVar

func NewTraversalState(length int) TraversalState {
	if length < 0 {
		panic("negative state vector length")
	}
	return make(TraversalState, length)
}

// States are copied, never aliased, when branching to sibling frontier
// entries.
func (self TraversalState) Copy() TraversalState {
	next := make(TraversalState, len(self))
	copy(next, self)
	return next
}

//*******************************************
// update operations
//*******************************************

type UpdateType byte

const (
	UPDATE_REPLACE  UpdateType = 0
	UPDATE_ADD      UpdateType = 1
	UPDATE_MULTIPLY UpdateType = 2
	UPDATE_MAX      UpdateType = 3
	UPDATE_MIN      UpdateType = 4
	UPDATE_FUNCTION UpdateType = 5
)

type UpdateOperation struct {
	Type UpdateType
	Func func(prev, next StateVar) StateVar
}

var (
	REPLACE  = UpdateOperation{Type: UPDATE_REPLACE}
	ADD      = UpdateOperation{Type: UPDATE_ADD}
	MULTIPLY = UpdateOperation{Type: UPDATE_MULTIPLY}
	MAX      = UpdateOperation{Type: UPDATE_MAX}
	MIN      = UpdateOperation{Type: UPDATE_MIN}
)

func FunctionOp(fn func(prev, next StateVar) StateVar) UpdateOperation {
	return UpdateOperation{
		Type: UPDATE_FUNCTION,
		Func: fn,
	}
}

func (self UpdateOperation) Perform(prev, next StateVar) StateVar {
	switch self.Type {
	case UPDATE_REPLACE:
		return next
	case UPDATE_ADD:
		return prev + next
	case UPDATE_MULTIPLY:
		return prev * next
	case UPDATE_MAX:
		if prev > next {
			return prev
		}
		return next
	case UPDATE_MIN:
		if prev < next {
			return prev
		}
		return next
	case UPDATE_FUNCTION:
		return self.Func(prev, next)
	default:
		panic("unknown update operation")
	}
}
