package view

import (
	"github.com/kasuganosora/livetable/pkg/column"
	"github.com/kasuganosora/livetable/pkg/table"
)

// ComputeFunc derives a computed column's value from the rest of a
// row.
type ComputeFunc func(row map[string]column.Value) column.Value

// ComputedView adds one derived column to a parent table, computed
// on-the-fly from each row's other columns. Like ProjectionView, it
// has no index to maintain: every read goes straight to the parent.
type ComputedView struct {
	name           string
	parent         *table.Table
	computedColumn string
	compute        ComputeFunc
}

// NewComputedView builds a ComputedView over parent, adding
// computedColumn derived by compute.
func NewComputedView(name string, parent *table.Table, computedColumn string, compute ComputeFunc) *ComputedView {
	return &ComputedView{
		name:           name,
		parent:         parent,
		computedColumn: computedColumn,
		compute:        compute,
	}
}

func (v *ComputedView) Name() string { return v.name }

func (v *ComputedView) Len() int { return v.parent.Len() }

func (v *ComputedView) IsEmpty() bool { return v.parent.IsEmpty() }

// ComputedColumnName returns the name of the derived column.
func (v *ComputedView) ComputedColumnName() string { return v.computedColumn }

// GetRow returns the parent row at index plus the computed column.
func (v *ComputedView) GetRow(index int) (map[string]column.Value, error) {
	row, err := v.parent.GetRow(index)
	if err != nil {
		return nil, err
	}
	row[v.computedColumn] = v.compute(row)
	return row, nil
}

// GetValue returns col's value at row, computing it on the fly if col
// is the derived column.
func (v *ComputedView) GetValue(row int, col string) (column.Value, error) {
	if col == v.computedColumn {
		parentRow, err := v.parent.GetRow(row)
		if err != nil {
			return column.Value{}, err
		}
		return v.compute(parentRow), nil
	}
	return v.parent.GetValue(row, col)
}
