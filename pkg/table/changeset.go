package table

import "github.com/kasuganosora/livetable/pkg/column"

// ChangeKind distinguishes the three shapes of TableChange.
type ChangeKind int

const (
	RowInserted ChangeKind = iota
	RowDeleted
	CellUpdated
)

// TableChange records one mutation to a Table, in enough detail for a
// view to update its index incrementally instead of rebuilding.
type TableChange struct {
	Kind  ChangeKind
	Index int // row index (RowInserted/RowDeleted) or row (CellUpdated)

	// Populated for RowInserted/RowDeleted.
	Row map[string]column.Value

	// Populated for CellUpdated.
	Column   string
	OldValue column.Value
	NewValue column.Value
}

// RowIndex returns the row index this change affects.
func (c TableChange) RowIndex() int { return c.Index }

// ShiftsIndices reports whether this change shifts subsequent row
// indices (true for insert/delete, false for an in-place cell update).
func (c TableChange) ShiftsIndices() bool {
	return c.Kind == RowInserted || c.Kind == RowDeleted
}

// Changeset accumulates TableChanges since the last clear/drain. The
// generation counter only advances on Clear or Drain, never on Push —
// views compare it against their own last-synced generation to decide
// whether a full rebuild is needed.
type Changeset struct {
	changes    []TableChange
	generation uint64
}

// NewChangeset creates an empty Changeset.
func NewChangeset() *Changeset {
	return &Changeset{}
}

// Push appends a change to the buffer.
func (cs *Changeset) Push(change TableChange) {
	cs.changes = append(cs.changes, change)
}

// Changes returns the changes accumulated since the last clear/drain.
// The returned slice aliases internal state and must not be retained
// across a subsequent Push/Clear/Drain.
func (cs *Changeset) Changes() []TableChange {
	return cs.changes
}

// Generation returns the current generation counter.
func (cs *Changeset) Generation() uint64 {
	return cs.generation
}

// Clear discards all pending changes and advances the generation.
func (cs *Changeset) Clear() {
	cs.changes = nil
	cs.generation++
}

// IsEmpty reports whether there are no pending changes.
func (cs *Changeset) IsEmpty() bool {
	return len(cs.changes) == 0
}

// Len returns the number of pending changes.
func (cs *Changeset) Len() int {
	return len(cs.changes)
}

// Drain returns the pending changes and clears the buffer, advancing
// the generation.
func (cs *Changeset) Drain() []TableChange {
	changes := cs.changes
	cs.changes = nil
	cs.generation++
	return changes
}

// IncrementalView is implemented by views that can update their index
// from a Changeset instead of rebuilding from scratch.
type IncrementalView interface {
	// ApplyChanges processes changes and reports whether the view's
	// index was modified.
	ApplyChanges(changes []TableChange) bool

	// LastSyncedGeneration returns the changeset generation this view
	// last synced to.
	LastSyncedGeneration() uint64

	// Rebuild forces a full index rebuild, the fallback for changes an
	// incremental update can't handle.
	Rebuild()
}

// AdjustForInsert returns parentIndex's new value after a row was
// inserted at insertIndex.
func AdjustForInsert(parentIndex, insertIndex int) int {
	if parentIndex >= insertIndex {
		return parentIndex + 1
	}
	return parentIndex
}

// AdjustForDelete returns parentIndex's new value after a row was
// deleted at deleteIndex, or (0, false) if parentIndex was the deleted
// row.
func AdjustForDelete(parentIndex, deleteIndex int) (int, bool) {
	switch {
	case parentIndex == deleteIndex:
		return 0, false
	case parentIndex > deleteIndex:
		return parentIndex - 1, true
	default:
		return parentIndex, true
	}
}

// AdjustMappingForInsert shifts every entry of mapping (view position
// -> parent row index) in place to account for a row inserted at
// insertIndex.
func AdjustMappingForInsert(mapping []int, insertIndex int) {
	for i, parentIdx := range mapping {
		if parentIdx >= insertIndex {
			mapping[i] = parentIdx + 1
		}
	}
}

// AdjustMappingForDelete shifts every entry of mapping in place to
// account for a row deleted at deleteIndex, and returns the view
// positions (pre-shift indices into mapping) whose parent row was the
// one deleted. The caller is responsible for actually removing those
// positions from mapping and any parallel slices — this function only
// adjusts surviving entries and reports which to drop.
func AdjustMappingForDelete(mapping []int, deleteIndex int) []int {
	var toRemove []int
	for viewIdx, parentIdx := range mapping {
		switch {
		case parentIdx == deleteIndex:
			toRemove = append(toRemove, viewIdx)
		case parentIdx > deleteIndex:
			mapping[viewIdx] = parentIdx - 1
		}
	}
	return toRemove
}
