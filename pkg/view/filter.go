package view

import (
	"github.com/kasuganosora/livetable/pkg/column"
	"github.com/kasuganosora/livetable/pkg/errs"
	"github.com/kasuganosora/livetable/pkg/table"
)

// Predicate tests a row for inclusion in a FilterView.
type Predicate func(row map[string]column.Value) bool

// FilterView presents the rows of a parent table that match a
// predicate, maintaining a view-position -> parent-row-index mapping
// that it updates incrementally from the parent's changeset rather
// than rescanning every row.
type FilterView struct {
	name      string
	parent    *table.Table
	predicate Predicate

	viewToParent         []int
	lastSyncedGeneration uint64
}

// NewFilterView builds a FilterView over parent using predicate,
// scanning the parent table once to build the initial index.
func NewFilterView(name string, parent *table.Table, predicate Predicate) *FilterView {
	v := &FilterView{
		name:      name,
		parent:    parent,
		predicate: predicate,
	}
	v.rebuildIndex()
	return v
}

func (v *FilterView) rebuildIndex() {
	v.viewToParent = v.viewToParent[:0]
	for i := 0; i < v.parent.Len(); i++ {
		row, err := v.parent.GetRow(i)
		if err != nil {
			continue
		}
		if v.predicate(row) {
			v.viewToParent = append(v.viewToParent, i)
		}
	}
	v.lastSyncedGeneration = v.parent.ChangesetGeneration()
}

func (v *FilterView) Name() string { return v.name }

func (v *FilterView) Len() int { return len(v.viewToParent) }

func (v *FilterView) IsEmpty() bool { return len(v.viewToParent) == 0 }

// GetRow returns the row at the view position index.
func (v *FilterView) GetRow(index int) (map[string]column.Value, error) {
	if index < 0 || index >= len(v.viewToParent) {
		return nil, errs.NewErrOutOfRange(index, v.Len())
	}
	return v.parent.GetRow(v.viewToParent[index])
}

// GetValue returns one column's value at the view position row.
func (v *FilterView) GetValue(row int, col string) (column.Value, error) {
	if row < 0 || row >= len(v.viewToParent) {
		return column.Value{}, errs.NewErrOutOfRange(row, v.Len())
	}
	return v.parent.GetValue(v.viewToParent[row], col)
}

// Refresh forces a full index rebuild.
func (v *FilterView) Refresh() { v.rebuildIndex() }

// Sync applies the parent's pending changes incrementally, returning
// whether the index changed. It reads the changeset without draining
// it (draining is left to the caller, Table.DrainChanges). Safe to call
// even when other views are also syncing from the same parent, since
// each call only consumes changes that are still pending.
func (v *FilterView) Sync() bool {
	changes := v.parent.Changeset().Changes()
	if len(changes) == 0 {
		return false
	}
	cp := make([]table.TableChange, len(changes))
	copy(cp, changes)
	return v.ApplyChanges(cp)
}

// ApplyChanges implements table.IncrementalView.
func (v *FilterView) ApplyChanges(changes []table.TableChange) bool {
	if len(changes) > MaxIncrementalBatch {
		v.rebuildIndex()
		return true
	}

	modified := false

	for _, change := range changes {
		switch change.Kind {
		case table.RowInserted:
			table.AdjustMappingForInsert(v.viewToParent, change.Index)
			if v.predicate(change.Row) {
				pos := insertionPosForParentIndex(v.viewToParent, change.Index)
				v.viewToParent = append(v.viewToParent, 0)
				copy(v.viewToParent[pos+1:], v.viewToParent[pos:])
				v.viewToParent[pos] = change.Index
				modified = true
			}

		case table.RowDeleted:
			toRemove := table.AdjustMappingForDelete(v.viewToParent, change.Index)
			for i := len(toRemove) - 1; i >= 0; i-- {
				pos := toRemove[i]
				v.viewToParent = append(v.viewToParent[:pos], v.viewToParent[pos+1:]...)
				modified = true
			}

		case table.CellUpdated:
			currentlyInView := indexOfInt(v.viewToParent, change.Index) >= 0

			row, err := v.parent.GetRow(change.Index)
			nowMatches := err == nil && v.predicate(row)

			switch {
			case !currentlyInView && nowMatches:
				pos := insertionPosForParentIndex(v.viewToParent, change.Index)
				v.viewToParent = append(v.viewToParent, 0)
				copy(v.viewToParent[pos+1:], v.viewToParent[pos:])
				v.viewToParent[pos] = change.Index
				modified = true
			case currentlyInView && !nowMatches:
				if pos := indexOfInt(v.viewToParent, change.Index); pos >= 0 {
					v.viewToParent = append(v.viewToParent[:pos], v.viewToParent[pos+1:]...)
					modified = true
				}
			}
		}
	}

	return modified
}

// LastSyncedGeneration implements table.IncrementalView.
func (v *FilterView) LastSyncedGeneration() uint64 { return v.lastSyncedGeneration }

// Rebuild implements table.IncrementalView.
func (v *FilterView) Rebuild() { v.rebuildIndex() }

func insertionPosForParentIndex(mapping []int, parentIndex int) int {
	for i, p := range mapping {
		if p > parentIndex {
			return i
		}
	}
	return len(mapping)
}

func indexOfInt(xs []int, target int) int {
	for i, x := range xs {
		if x == target {
			return i
		}
	}
	return -1
}
