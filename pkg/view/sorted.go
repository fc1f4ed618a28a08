package view

import (
	"math"
	"sort"

	"github.com/kasuganosora/livetable/pkg/column"
	"github.com/kasuganosora/livetable/pkg/errs"
	"github.com/kasuganosora/livetable/pkg/table"
)

// SortOrder is the direction a SortKey orders its column.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// SortKey is one column of a (possibly multi-column) sort order.
type SortKey struct {
	Column     string
	Order      SortOrder
	NullsFirst bool
	// Collation names the string-comparison collation to use for
	// string columns. Empty means "binary" (byte-wise).
	Collation string
}

// AscendingKey builds a SortKey with ascending order, nulls last,
// binary collation.
func AscendingKey(col string) SortKey {
	return SortKey{Column: col, Order: Ascending}
}

// DescendingKey builds a SortKey with descending order, nulls last,
// binary collation.
func DescendingKey(col string) SortKey {
	return SortKey{Column: col, Order: Descending}
}

// SortedView presents a parent table's rows in sorted order, keeping
// a sorted parent-row-index list that it updates incrementally: an
// inserted or cell-updated row is removed/reinserted via binary
// search rather than forcing a full re-sort.
type SortedView struct {
	name     string
	parent   *table.Table
	sortKeys []SortKey
	collator *CollationEngine

	sortedIndex          []int
	lastSyncedGeneration uint64
}

// NewSortedView builds a SortedView over parent ordered by sortKeys
// (primary key first). Returns an error if sortKeys is empty or names
// a column absent from the parent schema.
func NewSortedView(name string, parent *table.Table, sortKeys []SortKey) (*SortedView, error) {
	if len(sortKeys) == 0 {
		return nil, errs.NewErrParse("at least one sort key is required", 0)
	}
	for _, key := range sortKeys {
		if _, ok := parent.Schema().ColumnIndex(key.Column); !ok {
			return nil, errs.NewErrMissingColumn(key.Column)
		}
	}

	v := &SortedView{
		name:     name,
		parent:   parent,
		sortKeys: append([]SortKey(nil), sortKeys...),
		collator: GetGlobalCollationEngine(),
	}
	v.rebuildIndex()
	return v, nil
}

func (v *SortedView) rebuildIndex() {
	n := v.parent.Len()
	v.sortedIndex = make([]int, n)
	for i := range v.sortedIndex {
		v.sortedIndex[i] = i
	}

	sort.SliceStable(v.sortedIndex, func(i, j int) bool {
		return v.less(v.sortedIndex[i], v.sortedIndex[j])
	})

	v.lastSyncedGeneration = v.parent.ChangesetGeneration()
}

// less reports whether parent row a sorts before parent row b under
// every configured sort key, in priority order.
func (v *SortedView) less(a, b int) bool {
	c := v.compareRows(a, b)
	return c < 0
}

// compareRows returns negative/zero/positive as parent row a compares
// less/equal/greater than parent row b across every sort key.
func (v *SortedView) compareRows(a, b int) int {
	for _, key := range v.sortKeys {
		va, errA := v.parent.GetValue(a, key.Column)
		vb, errB := v.parent.GetValue(b, key.Column)

		c := compareValuesForSort(errA == nil, va, errB == nil, vb, key, v.collator)
		if c != 0 {
			return c
		}
	}
	return 0
}

// compareValuesForSort compares two optionally-absent values per one
// sort key's null handling, order, and (for strings) collation.
func compareValuesForSort(aPresent bool, a column.Value, bPresent bool, b column.Value, key SortKey, collator *CollationEngine) int {
	aNull := !aPresent || a.IsNull()
	bNull := !bPresent || b.IsNull()

	if aNull && bNull {
		return 0
	}
	if aNull {
		if key.NullsFirst {
			return -1
		}
		return 1
	}
	if bNull {
		if key.NullsFirst {
			return 1
		}
		return -1
	}

	base := compareNonNullValues(a, b, key, collator)

	if key.Order == Descending {
		return -base
	}
	return base
}

// typeRank gives a deterministic ordering across mismatched Value
// types, used as the mixed-type sort fallback: Null < numeric <
// String < Bool. Null is handled by the caller before this is reached.
func typeRank(t column.Type) int {
	switch t {
	case column.TypeInt32, column.TypeInt64, column.TypeFloat32, column.TypeFloat64:
		return 0
	case column.TypeString:
		return 1
	case column.TypeBool:
		return 2
	default:
		return 3
	}
}

func compareNonNullValues(a, b column.Value, key SortKey, collator *CollationEngine) int {
	aNum, aIsNum := a.AsFloat64Numeric()
	bNum, bIsNum := b.AsFloat64Numeric()
	if aIsNum && bIsNum {
		return compareFloatsTotalOrder(aNum, bNum)
	}

	if a.Type() == column.TypeString && b.Type() == column.TypeString {
		as, _ := a.AsString()
		bs, _ := b.AsString()
		return collator.Compare(as, bs, key.Collation)
	}

	if a.Type() == column.TypeBool && b.Type() == column.TypeBool {
		ab, _ := a.AsBool()
		bb, _ := b.AsBool()
		switch {
		case ab == bb:
			return 0
		case !ab && bb:
			return -1
		default:
			return 1
		}
	}

	ra, rb := typeRank(a.Type()), typeRank(b.Type())
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	default:
		return 0
	}
}

// compareFloatsTotalOrder imposes a total order on float64 comparison:
// NaN compares greater than every other value (including +Inf) and
// equal only to itself, so NaN sorts last in ascending order and first
// in descending order's reversal.
func compareFloatsTotalOrder(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (v *SortedView) Name() string { return v.name }

func (v *SortedView) Len() int { return len(v.sortedIndex) }

func (v *SortedView) IsEmpty() bool { return len(v.sortedIndex) == 0 }

// SortKeys returns the configured sort keys, primary first.
func (v *SortedView) SortKeys() []SortKey { return v.sortKeys }

// GetRow returns the row at the view position index.
func (v *SortedView) GetRow(index int) (map[string]column.Value, error) {
	if index < 0 || index >= len(v.sortedIndex) {
		return nil, errs.NewErrOutOfRange(index, v.Len())
	}
	return v.parent.GetRow(v.sortedIndex[index])
}

// GetValue returns one column's value at the view position row.
func (v *SortedView) GetValue(row int, col string) (column.Value, error) {
	if row < 0 || row >= len(v.sortedIndex) {
		return column.Value{}, errs.NewErrOutOfRange(row, v.Len())
	}
	return v.parent.GetValue(v.sortedIndex[row], col)
}

// GetParentIndex returns the parent row index backing view position
// viewIndex, or (0, false) if out of range.
func (v *SortedView) GetParentIndex(viewIndex int) (int, bool) {
	if viewIndex < 0 || viewIndex >= len(v.sortedIndex) {
		return 0, false
	}
	return v.sortedIndex[viewIndex], true
}

// Refresh forces a full re-sort.
func (v *SortedView) Refresh() { v.rebuildIndex() }

// Sync applies the parent's pending changes incrementally. It reads
// the changeset without draining it; draining is left to the caller
// (Table.DrainChanges).
func (v *SortedView) Sync() bool {
	changes := v.parent.Changeset().Changes()
	if len(changes) == 0 {
		return false
	}
	cp := make([]table.TableChange, len(changes))
	copy(cp, changes)
	return v.ApplyChanges(cp)
}

// findInsertionPosition locates where parentIndex's row belongs in
// the current sorted order via binary search, breaking ties by parent
// index for a stable result.
func (v *SortedView) findInsertionPosition(parentIndex int) int {
	return sort.Search(len(v.sortedIndex), func(i int) bool {
		existing := v.sortedIndex[i]
		c := v.compareRows(existing, parentIndex)
		if c != 0 {
			return c > 0
		}
		return existing >= parentIndex
	})
}

// ApplyChanges implements table.IncrementalView.
func (v *SortedView) ApplyChanges(changes []table.TableChange) bool {
	if len(changes) > MaxIncrementalBatch {
		v.rebuildIndex()
		return true
	}

	modified := false

	for _, change := range changes {
		switch change.Kind {
		case table.RowInserted:
			for i, p := range v.sortedIndex {
				if p >= change.Index {
					v.sortedIndex[i] = p + 1
				}
			}
			pos := v.findInsertionPosition(change.Index)
			v.sortedIndex = append(v.sortedIndex, 0)
			copy(v.sortedIndex[pos+1:], v.sortedIndex[pos:])
			v.sortedIndex[pos] = change.Index
			modified = true

		case table.RowDeleted:
			viewPos := indexOfInt(v.sortedIndex, change.Index)
			for i, p := range v.sortedIndex {
				if p > change.Index {
					v.sortedIndex[i] = p - 1
				}
			}
			if viewPos >= 0 {
				v.sortedIndex = append(v.sortedIndex[:viewPos], v.sortedIndex[viewPos+1:]...)
				modified = true
			}

		case table.CellUpdated:
			affectsSort := false
			for _, key := range v.sortKeys {
				if key.Column == change.Column {
					affectsSort = true
					break
				}
			}
			if !affectsSort {
				continue
			}
			if pos := indexOfInt(v.sortedIndex, change.Index); pos >= 0 {
				v.sortedIndex = append(v.sortedIndex[:pos], v.sortedIndex[pos+1:]...)
				newPos := v.findInsertionPosition(change.Index)
				v.sortedIndex = append(v.sortedIndex, 0)
				copy(v.sortedIndex[newPos+1:], v.sortedIndex[newPos:])
				v.sortedIndex[newPos] = change.Index
				modified = true
			}
		}
	}

	return modified
}

// LastSyncedGeneration implements table.IncrementalView.
func (v *SortedView) LastSyncedGeneration() uint64 { return v.lastSyncedGeneration }

// Rebuild implements table.IncrementalView.
func (v *SortedView) Rebuild() { v.rebuildIndex() }
