package state

import (
	"errors"
	"fmt"
	"strings"
)

//*******************************************
// state errors
//*******************************************

var (
	ErrIndexOutOfBounds  = errors.New("state vector index out of bounds")
	ErrUnknownName       = errors.New("unknown state variable name")
	ErrUnexpectedType    = errors.New("unexpected feature type")
	ErrUnexpectedUnit    = errors.New("unexpected feature unit")
)

func indexError(index, length int) error {
	return fmt.Errorf("%w: index %v, should be in range [0, %v)", ErrIndexOutOfBounds, index, length)
}

func unknownNameError(name string, names []string) error {
	return fmt.Errorf("%w: %v, should be one of [%v]", ErrUnknownName, name, strings.Join(names, ", "))
}

func typeError(expected, found string) error {
	return fmt.Errorf("%w: expected '%v' but found '%v'", ErrUnexpectedType, expected, found)
}

func unitError(expected, found string) error {
	return fmt.Errorf("%w: expected '%v' but found '%v'", ErrUnexpectedUnit, expected, found)
}
