package view

import (
	"strconv"
	"strings"

	"github.com/kasuganosora/livetable/pkg/column"
	"github.com/kasuganosora/livetable/pkg/errs"
	"github.com/kasuganosora/livetable/pkg/table"
)

// JoinType selects a JoinView's unmatched-row behavior.
type JoinType int

const (
	// LeftOuter keeps every left row, with Null right columns when no
	// match exists.
	LeftOuter JoinType = iota
	// Inner keeps only rows that match on both sides.
	Inner
)

// joinPair is one row of the joined index: a left parent index plus
// an optional right parent index (absent for an unmatched left-outer
// row).
type joinPair struct {
	left     int
	right    int
	hasRight bool
}

// JoinView combines two tables on one or more equi-join key columns,
// maintaining a cached (left_row, optional right_row) index rebuilt
// from scratch whenever a delete or key-column update touches either
// side; pure appends update the index incrementally.
type JoinView struct {
	name       string
	left       *table.Table
	right      *table.Table
	leftKeys   []string
	rightKeys  []string
	joinType  JoinType
	joinIndex []joinPair

	leftLastSynced  uint64
	rightLastSynced uint64
}

// NewJoinView builds a single-key JoinView. See NewJoinViewMulti for
// composite keys.
func NewJoinView(name string, left, right *table.Table, leftKey, rightKey string, joinType JoinType) (*JoinView, error) {
	return NewJoinViewMulti(name, left, right, []string{leftKey}, []string{rightKey}, joinType)
}

// NewJoinViewMulti builds a JoinView keyed on parallel lists of left
// and right column names (a composite key). Returns an error if the
// key-list lengths differ, either list is empty, or any named column
// is missing from its table's schema.
func NewJoinViewMulti(name string, left, right *table.Table, leftKeys, rightKeys []string, joinType JoinType) (*JoinView, error) {
	if len(leftKeys) != len(rightKeys) {
		return nil, errs.NewErrJoinKeyMismatch(strings.Join(leftKeys, ","), strings.Join(rightKeys, ","))
	}
	if len(leftKeys) == 0 {
		return nil, errs.NewErrJoinKeyMismatch("", "")
	}
	for _, key := range leftKeys {
		if _, ok := left.Schema().ColumnIndex(key); !ok {
			return nil, errs.NewErrMissingColumn(key)
		}
	}
	for _, key := range rightKeys {
		if _, ok := right.Schema().ColumnIndex(key); !ok {
			return nil, errs.NewErrMissingColumn(key)
		}
	}

	v := &JoinView{
		name:      name,
		left:      left,
		right:     right,
		leftKeys:  append([]string(nil), leftKeys...),
		rightKeys: append([]string(nil), rightKeys...),
		joinType:  joinType,
	}
	v.rebuildIndex()
	return v, nil
}

// buildCompositeKey concatenates the textual representation of each
// key column's value with a NUL separator. Returns ("", false) if any
// key column is Null or missing — a key-null row never matches
// anything, per SQL equi-join semantics.
func buildCompositeKey(row map[string]column.Value, keys []string) (string, bool) {
	var sb strings.Builder
	for i, key := range keys {
		v, ok := row[key]
		if !ok || v.IsNull() {
			return "", false
		}
		if i > 0 {
			sb.WriteByte(0)
		}
		sb.WriteString(valueKeyText(v))
	}
	return sb.String(), true
}

func valueKeyText(v column.Value) string {
	switch v.Type() {
	case column.TypeInt32:
		n, _ := v.AsInt32()
		return "i32:" + strconv.FormatInt(int64(n), 10)
	case column.TypeInt64:
		n, _ := v.AsInt64()
		return "i64:" + strconv.FormatInt(n, 10)
	case column.TypeFloat32:
		f, _ := v.AsFloat32()
		return "f32:" + strconv.FormatFloat(float64(f), 'g', -1, 64)
	case column.TypeFloat64:
		f, _ := v.AsFloat64()
		return "f64:" + strconv.FormatFloat(f, 'g', -1, 64)
	case column.TypeString:
		s, _ := v.AsString()
		return "s:" + s
	case column.TypeBool:
		b, _ := v.AsBool()
		if b {
			return "b:true"
		}
		return "b:false"
	default:
		return ""
	}
}

func (v *JoinView) buildRightLookup() map[string][]int {
	lookup := make(map[string][]int)
	for i := 0; i < v.right.Len(); i++ {
		row, err := v.right.GetRow(i)
		if err != nil {
			continue
		}
		if key, ok := buildCompositeKey(row, v.rightKeys); ok {
			lookup[key] = append(lookup[key], i)
		}
	}
	return lookup
}

func (v *JoinView) rebuildIndex() {
	v.joinIndex = v.joinIndex[:0]
	rightLookup := v.buildRightLookup()

	for i := 0; i < v.left.Len(); i++ {
		row, err := v.left.GetRow(i)
		if err != nil {
			continue
		}

		key, ok := buildCompositeKey(row, v.leftKeys)
		if !ok {
			// Key-null left row: per equi-join semantics it never
			// matches, so it's carried through as unmatched under
			// left-outer and dropped under inner — same treatment as
			// an ordinary no-match row.
			if v.joinType == LeftOuter {
				v.joinIndex = append(v.joinIndex, joinPair{left: i})
			}
			continue
		}

		matches, found := rightLookup[key]
		if found {
			for _, r := range matches {
				v.joinIndex = append(v.joinIndex, joinPair{left: i, right: r, hasRight: true})
			}
		} else if v.joinType == LeftOuter {
			v.joinIndex = append(v.joinIndex, joinPair{left: i})
		}
	}

	v.leftLastSynced = v.left.ChangesetGeneration()
	v.rightLastSynced = v.right.ChangesetGeneration()
}

func (v *JoinView) Name() string { return v.name }

func (v *JoinView) Len() int { return len(v.joinIndex) }

func (v *JoinView) IsEmpty() bool { return len(v.joinIndex) == 0 }

// JoinType returns the configured join type.
func (v *JoinView) JoinType() JoinType { return v.joinType }

// GetRow returns the joined row at view position index: every left
// column plus every right column renamed with a "right_" prefix
// (Null when unmatched).
func (v *JoinView) GetRow(index int) (map[string]column.Value, error) {
	if index < 0 || index >= len(v.joinIndex) {
		return nil, errs.NewErrOutOfRange(index, v.Len())
	}
	pair := v.joinIndex[index]

	leftRow, err := v.left.GetRow(pair.left)
	if err != nil {
		return nil, err
	}

	result := make(map[string]column.Value, len(leftRow)+v.right.Schema().Len())
	for k, val := range leftRow {
		result[k] = val
	}

	if pair.hasRight {
		rightRow, err := v.right.GetRow(pair.right)
		if err != nil {
			return nil, err
		}
		for k, val := range rightRow {
			result["right_"+k] = val
		}
	} else {
		for _, name := range v.right.Schema().ColumnNames() {
			result["right_"+name] = column.Null()
		}
	}

	return result, nil
}

// GetValue returns one (possibly "right_"-prefixed) column's value
// for the joined row at view position row.
func (v *JoinView) GetValue(row int, col string) (column.Value, error) {
	full, err := v.GetRow(row)
	if err != nil {
		return column.Value{}, err
	}
	val, ok := full[col]
	if !ok {
		return column.Value{}, errs.NewErrMissingColumn(col)
	}
	return val, nil
}

// Refresh forces a full index rebuild.
func (v *JoinView) Refresh() { v.rebuildIndex() }

// Sync applies both parents' pending changes (reading each changeset
// without draining it; draining is left to the caller), falling back
// to a full rebuild whenever either side saw a delete or an update to
// one of the join-key columns — only pure appends are handled
// incrementally.
func (v *JoinView) Sync() bool {
	leftChanges := v.left.Changeset().Changes()
	rightChanges := v.right.Changeset().Changes()
	if len(leftChanges) == 0 && len(rightChanges) == 0 {
		return false
	}

	leftCp := append([]table.TableChange(nil), leftChanges...)
	rightCp := append([]table.TableChange(nil), rightChanges...)

	if len(leftCp)+len(rightCp) > MaxIncrementalBatch {
		v.rebuildIndex()
		return true
	}

	if v.needsRebuild(leftCp, rightCp) {
		v.rebuildIndex()
		return true
	}

	modified := false

	for _, change := range leftCp {
		if change.Kind != table.RowInserted {
			continue
		}
		for i := range v.joinIndex {
			if v.joinIndex[i].left >= change.Index {
				v.joinIndex[i].left++
			}
		}

		key, ok := buildCompositeKey(change.Row, v.leftKeys)
		if !ok {
			if v.joinType == LeftOuter {
				v.joinIndex = append(v.joinIndex, joinPair{left: change.Index})
				modified = true
			}
			continue
		}

		rightLookup := v.buildRightLookup()
		if matches, found := rightLookup[key]; found {
			for _, r := range matches {
				v.joinIndex = append(v.joinIndex, joinPair{left: change.Index, right: r, hasRight: true})
				modified = true
			}
		} else if v.joinType == LeftOuter {
			v.joinIndex = append(v.joinIndex, joinPair{left: change.Index})
			modified = true
		}
	}

	for _, change := range rightCp {
		if change.Kind != table.RowInserted {
			continue
		}
		for i := range v.joinIndex {
			if v.joinIndex[i].hasRight && v.joinIndex[i].right >= change.Index {
				v.joinIndex[i].right++
			}
		}

		rightKey, ok := buildCompositeKey(change.Row, v.rightKeys)
		if !ok {
			continue
		}

		for li := 0; li < v.left.Len(); li++ {
			leftRow, err := v.left.GetRow(li)
			if err != nil {
				continue
			}
			leftKey, ok := buildCompositeKey(leftRow, v.leftKeys)
			if !ok || leftKey != rightKey {
				continue
			}

			if v.joinType == LeftOuter {
				replaced := false
				for i := range v.joinIndex {
					if v.joinIndex[i].left == li && !v.joinIndex[i].hasRight {
						v.joinIndex[i] = joinPair{left: li, right: change.Index, hasRight: true}
						replaced = true
						break
					}
				}
				if !replaced {
					v.joinIndex = append(v.joinIndex, joinPair{left: li, right: change.Index, hasRight: true})
				}
			} else {
				v.joinIndex = append(v.joinIndex, joinPair{left: li, right: change.Index, hasRight: true})
			}
			modified = true
		}
	}

	return modified
}

func (v *JoinView) needsRebuild(leftChanges, rightChanges []table.TableChange) bool {
	for _, c := range leftChanges {
		if c.Kind == table.RowDeleted {
			return true
		}
		if c.Kind == table.CellUpdated && containsString(v.leftKeys, c.Column) {
			return true
		}
	}
	for _, c := range rightChanges {
		if c.Kind == table.RowDeleted {
			return true
		}
		if c.Kind == table.CellUpdated && containsString(v.rightKeys, c.Column) {
			return true
		}
	}
	return false
}

func containsString(xs []string, target string) bool {
	for _, x := range xs {
		if x == target {
			return true
		}
	}
	return false
}

// LastSyncedGeneration returns the left table's last-synced
// changeset generation; RightLastSynced returns the right table's.
// JoinView has no ApplyChanges method, so it does not implement
// table.IncrementalView.
func (v *JoinView) LastSyncedGeneration() uint64 { return v.leftLastSynced }

// RightLastSynced returns the right table's last-synced generation.
func (v *JoinView) RightLastSynced() uint64 { return v.rightLastSynced }

// Rebuild forces a full index rebuild, the same as Refresh.
func (v *JoinView) Rebuild() { v.rebuildIndex() }
