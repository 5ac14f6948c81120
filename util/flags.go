package util

//*******************************************
// flags
//*******************************************

type _FlagEntry[T any] struct {
	value   T
	version int32
}

// Dense per-id scratch values with O(1) Reset.
//
// Entries older than the current version read as the default value.
type Flags[T any] struct {
	entries  []_FlagEntry[T]
	_default T
	version  int32
}

func NewFlags[T any](length int32, _default T) Flags[T] {
	return Flags[T]{
		entries:  make([]_FlagEntry[T], length),
		_default: _default,
		version:  1,
	}
}

func (self Flags[T]) Get(id int32) *T {
	entry := &self.entries[id]
	if entry.version != self.version {
		entry.value = self._default
		entry.version = self.version
	}
	return &entry.value
}

func (self Flags[T]) IsSet(id int32) bool {
	return self.entries[id].version == self.version
}

func (self *Flags[T]) Reset() {
	self.version += 1
}

func (self Flags[T]) Length() int {
	return len(self.entries)
}
