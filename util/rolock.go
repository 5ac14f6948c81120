package util

import (
	"errors"
	"fmt"
	"sync/atomic"
)

//*******************************************
// driver/executor read-only locks
//*******************************************

// Returned by ExecutorReadOnlyLock.Read after a holder panicked during
// guarded access.
var ErrPoisoned = errors.New("shared read-only value poisoned by a prior panic")

// Single-writer-then-freeze handle for values shared between parallel
// query workers.
//
// The driver constructs the value once and hands out executor handles.
// No write path exists afterwards, so readers never block each other.
type DriverReadOnlyLock[T any] struct {
	value    T
	poisoned atomic.Bool
}

func NewDriverReadOnlyLock[T any](value T) *DriverReadOnlyLock[T] {
	return &DriverReadOnlyLock[T]{
		value: value,
	}
}

func (self *DriverReadOnlyLock[T]) ReadOnly() ExecutorReadOnlyLock[T] {
	return ExecutorReadOnlyLock[T]{
		inner: self,
	}
}

// Read handle held by one query worker.
type ExecutorReadOnlyLock[T any] struct {
	inner *DriverReadOnlyLock[T]
}

func (self ExecutorReadOnlyLock[T]) Read() (T, error) {
	if self.inner.poisoned.Load() {
		var zero T
		return zero, ErrPoisoned
	}
	return self.inner.value, nil
}

// Runs fn with read access, converting a panic inside fn into an error
// and poisoning the shared value for all other holders.
func (self ExecutorReadOnlyLock[T]) Guard(fn func(value T) error) (err error) {
	value, err := self.Read()
	if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			self.inner.poisoned.Store(true)
			err = fmt.Errorf("panic during guarded read access: %v", r)
		}
	}()
	return fn(value)
}
