// Package sequence provides the lowest-level ordered-container storage
// used by columns: a simple contiguous array and a square-root
// decomposed tiered vector, both behind a common Sequence interface.
package sequence

import "fmt"

// Sequence is the storage contract shared by ArraySequence and
// TieredVectorSequence. Indices are 0-based.
type Sequence[T any] interface {
	// Len returns the number of elements currently stored.
	Len() int

	// IsEmpty reports whether the sequence has no elements.
	IsEmpty() bool

	// Get returns the value at index, or an error if index is out of range.
	Get(index int) (T, error)

	// Set overwrites the value at index.
	Set(index int, value T) error

	// Insert places value at index, shifting subsequent elements right.
	// index == Len() is a valid append position.
	Insert(index int, value T) error

	// Delete removes and returns the value at index.
	Delete(index int) (T, error)

	// Append adds value to the end of the sequence.
	Append(value T)

	// ForEach calls fn for every element in order. Stops early if fn
	// returns false.
	ForEach(fn func(index int, value T) bool)

	// Values returns a fresh slice holding every element in order.
	Values() []T
}

func outOfRange(index, length int) error {
	return fmt.Errorf("index %d out of range [0, %d)", index, length)
}
