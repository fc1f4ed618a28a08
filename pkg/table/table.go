package table

import (
	"github.com/google/uuid"
	"github.com/kasuganosora/livetable/pkg/column"
	"github.com/kasuganosora/livetable/pkg/errs"
	"github.com/kasuganosora/livetable/pkg/interner"
)

// Table is a named collection of typed columns sharing a row count,
// plus a changeset log that views consume for incremental updates.
type Table struct {
	id   uuid.UUID
	name string

	schema  *Schema
	columns []*column.Column
	rows    int

	changeset *Changeset
	in        *interner.StringInterner // nil unless interning is enabled
}

// Options configures table construction.
type Options struct {
	// UseTieredVector backs every column with a TieredVectorSequence
	// instead of the default ArraySequence.
	UseTieredVector bool
	// TieredBlockSize overrides the tiered vector's minimum block size
	// (see sequence.NewTieredVectorSequenceWithBlockSize); 0 uses the
	// sequence package's default. Ignored unless UseTieredVector is set.
	TieredBlockSize int
	// UseStringInterning shares one StringInterner across all String
	// columns in the table.
	UseStringInterning bool
}

// New creates a table named name with schema, using plain array
// storage and no string interning.
func New(name string, schema *Schema) *Table {
	return NewWithOptions(name, schema, Options{})
}

// NewWithOptions creates a table with explicit storage and interning
// options.
func NewWithOptions(name string, schema *Schema, opts Options) *Table {
	var in *interner.StringInterner
	if opts.UseStringInterning {
		in = interner.New()
	}

	cols := make([]*column.Column, schema.Len())
	for i := 0; i < schema.Len(); i++ {
		def, _ := schema.ColumnInfo(i)
		var colOpts []column.Option
		if opts.UseTieredVector {
			colOpts = append(colOpts, column.WithTieredVectorBlockSize(opts.TieredBlockSize))
		}
		if in != nil && def.Type == column.TypeString {
			colOpts = append(colOpts, column.WithInterner(in))
		}
		cols[i] = column.New(def.Name, def.Type, def.Nullable, colOpts...)
	}

	return &Table{
		id:        uuid.New(),
		name:      name,
		schema:    schema,
		columns:   cols,
		changeset: NewChangeset(),
		in:        in,
	}
}

// ID returns a stable identity token for this table, useful for
// callers embedding several tables and wanting a handle independent of
// the table's (possibly reused) name.
func (t *Table) ID() uuid.UUID { return t.id }

func (t *Table) Name() string { return t.name }

func (t *Table) Schema() *Schema { return t.schema }

func (t *Table) Len() int { return t.rows }

func (t *Table) IsEmpty() bool { return t.rows == 0 }

// UsesStringInterning reports whether this table shares a string
// interner across its String columns.
func (t *Table) UsesStringInterning() bool { return t.in != nil }

// InternerStats returns the shared interner's bookkeeping, or
// (Stats{}, false) if this table doesn't use interning.
func (t *Table) InternerStats() (interner.Stats, bool) {
	if t.in == nil {
		return interner.Stats{}, false
	}
	return t.in.Stats(), true
}

func (t *Table) columnIndex(name string) (int, error) {
	idx, ok := t.schema.ColumnIndex(name)
	if !ok {
		return 0, errs.NewErrMissingColumn(name)
	}
	return idx, nil
}

// GetValue returns the value of column at row.
func (t *Table) GetValue(row int, col string) (column.Value, error) {
	idx, err := t.columnIndex(col)
	if err != nil {
		return column.Value{}, err
	}
	if row < 0 || row >= t.rows {
		return column.Value{}, errs.NewErrOutOfRange(row, t.rows)
	}
	return t.columns[idx].Get(row)
}

// SetValue updates column at row and records a CellUpdated change.
func (t *Table) SetValue(row int, col string, value column.Value) error {
	idx, err := t.columnIndex(col)
	if err != nil {
		return err
	}
	if row < 0 || row >= t.rows {
		return errs.NewErrOutOfRange(row, t.rows)
	}

	oldValue, err := t.columns[idx].Get(row)
	if err != nil {
		return err
	}

	if err := t.columns[idx].Set(row, value); err != nil {
		return err
	}

	t.changeset.Push(TableChange{
		Kind:     CellUpdated,
		Index:    row,
		Column:   col,
		OldValue: oldValue,
		NewValue: value,
	})
	return nil
}

// GetRow returns every column's value at row, keyed by column name.
func (t *Table) GetRow(row int) (map[string]column.Value, error) {
	if row < 0 || row >= t.rows {
		return nil, errs.NewErrOutOfRange(row, t.rows)
	}

	result := make(map[string]column.Value, t.schema.Len())
	for i, col := range t.columns {
		def, _ := t.schema.ColumnInfo(i)
		v, err := col.Get(row)
		if err != nil {
			return nil, err
		}
		result[def.Name] = v
	}
	return result, nil
}

// validateRow checks that row supplies a value for every schema
// column and that each value's type/nullability is acceptable, without
// mutating any column. Per the partial-row-write policy, a row is
// validated in full before any column is written, so a rejected row
// leaves every column untouched.
func (t *Table) validateRow(row map[string]column.Value) error {
	for i := 0; i < t.schema.Len(); i++ {
		def, _ := t.schema.ColumnInfo(i)
		v, ok := row[def.Name]
		if !ok {
			return errs.NewErrMissingValue(def.Name)
		}
		if v.IsNull() {
			if !def.Nullable {
				return errs.NewErrNullabilityViolation(def.Name)
			}
			continue
		}
		if v.Type() != def.Type {
			return errs.NewErrTypeMismatch(def.Name, def.Type.String(), v.Type().String())
		}
	}
	return nil
}

// AppendRow validates row against the schema and appends it at the
// end of the table.
func (t *Table) AppendRow(row map[string]column.Value) error {
	if err := t.validateRow(row); err != nil {
		return err
	}

	insertIndex := t.rows
	for i, col := range t.columns {
		def, _ := t.schema.ColumnInfo(i)
		if err := col.Append(row[def.Name]); err != nil {
			return err
		}
	}
	t.rows++

	t.changeset.Push(TableChange{Kind: RowInserted, Index: insertIndex, Row: row})
	return nil
}

// InsertRow validates row against the schema and inserts it at index,
// shifting subsequent rows down.
func (t *Table) InsertRow(index int, row map[string]column.Value) error {
	if index < 0 || index > t.rows {
		return errs.NewErrOutOfRange(index, t.rows+1)
	}
	if err := t.validateRow(row); err != nil {
		return err
	}

	for i, col := range t.columns {
		def, _ := t.schema.ColumnInfo(i)
		if err := col.Insert(index, row[def.Name]); err != nil {
			return err
		}
	}
	t.rows++

	t.changeset.Push(TableChange{Kind: RowInserted, Index: index, Row: row})
	return nil
}

// DeleteRow removes the row at index and returns its prior values.
func (t *Table) DeleteRow(index int) (map[string]column.Value, error) {
	if index < 0 || index >= t.rows {
		return nil, errs.NewErrOutOfRange(index, t.rows)
	}

	result := make(map[string]column.Value, t.schema.Len())
	for i, col := range t.columns {
		def, _ := t.schema.ColumnInfo(i)
		v, err := col.Delete(index)
		if err != nil {
			return nil, err
		}
		result[def.Name] = v
	}
	t.rows--

	t.changeset.Push(TableChange{Kind: RowDeleted, Index: index, Row: result})
	return result, nil
}

// ForEachRow visits every row in order. Stops early if fn returns
// false.
func (t *Table) ForEachRow(fn func(index int, row map[string]column.Value) bool) {
	for i := 0; i < t.rows; i++ {
		row, err := t.GetRow(i)
		if err != nil {
			return
		}
		if !fn(i, row) {
			return
		}
	}
}

// Changeset returns the table's pending-change buffer.
func (t *Table) Changeset() *Changeset { return t.changeset }

// ChangesetGeneration returns the current changeset generation.
func (t *Table) ChangesetGeneration() uint64 { return t.changeset.Generation() }

// DrainChanges returns and clears pending changes, advancing the
// generation. Call once all views have been given a chance to consume
// the current changes.
func (t *Table) DrainChanges() []TableChange { return t.changeset.Drain() }

// ClearChangeset discards pending changes without returning them.
func (t *Table) ClearChangeset() { t.changeset.Clear() }

// HasPendingChanges reports whether any changes are unconsumed.
func (t *Table) HasPendingChanges() bool { return !t.changeset.IsEmpty() }
