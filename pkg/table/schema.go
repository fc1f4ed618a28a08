// Package table implements Schema, Changeset, and Table: schema-
// validated row storage over parallel columns, with an append-only
// changeset log that views use to update incrementally.
package table

import (
	"fmt"

	"github.com/kasuganosora/livetable/pkg/column"
)

// ColumnDef describes one column of a Schema.
type ColumnDef struct {
	Name     string
	Type     column.Type
	Nullable bool
}

// Schema defines a table's column names, types, and nullability, in
// order.
type Schema struct {
	columns []ColumnDef
}

// NewSchema creates a Schema from an ordered list of column
// definitions. Column names must be unique; NewSchema panics on a
// duplicate, the same way it would panic on any other malformed
// static schema declaration rather than returning an error every
// caller would have to check.
func NewSchema(columns ...ColumnDef) *Schema {
	cp := make([]ColumnDef, len(columns))
	copy(cp, columns)

	seen := make(map[string]struct{}, len(cp))
	for _, c := range cp {
		if _, ok := seen[c.Name]; ok {
			panic(fmt.Sprintf("table: duplicate column name %q in schema", c.Name))
		}
		seen[c.Name] = struct{}{}
	}

	return &Schema{columns: cp}
}

// Len returns the number of columns.
func (s *Schema) Len() int { return len(s.columns) }

// IsEmpty reports whether the schema has no columns.
func (s *Schema) IsEmpty() bool { return len(s.columns) == 0 }

// ColumnNames returns every column name, in schema order.
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the position of name in the schema, or (-1,
// false) if it isn't present.
func (s *Schema) ColumnIndex(name string) (int, bool) {
	for i, c := range s.columns {
		if c.Name == name {
			return i, true
		}
	}
	return -1, false
}

// ColumnInfo returns the definition at index, or (ColumnDef{}, false)
// if index is out of range.
func (s *Schema) ColumnInfo(index int) (ColumnDef, bool) {
	if index < 0 || index >= len(s.columns) {
		return ColumnDef{}, false
	}
	return s.columns[index], true
}
