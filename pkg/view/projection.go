package view

import (
	"github.com/kasuganosora/livetable/pkg/column"
	"github.com/kasuganosora/livetable/pkg/errs"
	"github.com/kasuganosora/livetable/pkg/table"
)

// ProjectionView selects a fixed subset of columns from a parent
// table. It has no index of its own — every row is read straight
// through to the parent, so there's nothing to keep in sync.
type ProjectionView struct {
	name     string
	parent   *table.Table
	selected []string
}

// NewProjectionView builds a ProjectionView over parent restricted to
// columns. Returns an error if any named column doesn't exist in the
// parent's schema.
func NewProjectionView(name string, parent *table.Table, columns []string) (*ProjectionView, error) {
	for _, col := range columns {
		if _, ok := parent.Schema().ColumnIndex(col); !ok {
			return nil, errs.NewErrMissingColumn(col)
		}
	}

	selected := make([]string, len(columns))
	copy(selected, columns)
	return &ProjectionView{name: name, parent: parent, selected: selected}, nil
}

func (v *ProjectionView) Name() string { return v.name }

func (v *ProjectionView) Len() int { return v.parent.Len() }

func (v *ProjectionView) IsEmpty() bool { return v.parent.IsEmpty() }

// Columns returns the projected column names, in order.
func (v *ProjectionView) Columns() []string { return v.selected }

// GetRow returns only the selected columns of the parent row at index.
func (v *ProjectionView) GetRow(index int) (map[string]column.Value, error) {
	full, err := v.parent.GetRow(index)
	if err != nil {
		return nil, err
	}
	result := make(map[string]column.Value, len(v.selected))
	for _, col := range v.selected {
		if val, ok := full[col]; ok {
			result[col] = val
		}
	}
	return result, nil
}

// GetValue returns one projected column's value, or ErrMissingColumn
// if col isn't part of the projection.
func (v *ProjectionView) GetValue(row int, col string) (column.Value, error) {
	found := false
	for _, c := range v.selected {
		if c == col {
			found = true
			break
		}
	}
	if !found {
		return column.Value{}, errs.NewErrMissingColumn(col)
	}
	return v.parent.GetValue(row, col)
}
