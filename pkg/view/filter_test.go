package view

import (
	"testing"

	"github.com/kasuganosora/livetable/pkg/column"
	"github.com/kasuganosora/livetable/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func peopleSchema() *table.Schema {
	return table.NewSchema(
		table.ColumnDef{Name: "id", Type: column.TypeInt64, Nullable: false},
		table.ColumnDef{Name: "name", Type: column.TypeString, Nullable: false},
		table.ColumnDef{Name: "score", Type: column.TypeInt64, Nullable: true},
	)
}

func addPerson(t *testing.T, tbl *table.Table, id int64, name string, score *int64) {
	t.Helper()
	scoreVal := column.Null()
	if score != nil {
		scoreVal = column.Int64(*score)
	}
	require.NoError(t, tbl.AppendRow(map[string]column.Value{
		"id": column.Int64(id), "name": column.String(name), "score": scoreVal,
	}))
}

func intp(v int64) *int64 { return &v }

func scoreAbove(threshold int64) Predicate {
	return func(row map[string]column.Value) bool {
		v, ok := row["score"]
		if !ok || v.IsNull() {
			return false
		}
		s, _ := v.AsInt64()
		return s > threshold
	}
}

func TestFilterViewInitialBuild(t *testing.T) {
	tbl := table.New("people", peopleSchema())
	addPerson(t, tbl, 1, "Alice", intp(95))
	addPerson(t, tbl, 2, "Bob", intp(50))
	addPerson(t, tbl, 3, "Charlie", intp(99))

	fv := NewFilterView("high_scorers", tbl, scoreAbove(90))
	assert.Equal(t, 2, fv.Len())

	row, err := fv.GetRow(0)
	require.NoError(t, err)
	name, _ := row["name"].AsString()
	assert.Equal(t, "Alice", name)
}

func TestFilterViewSyncOnInsert(t *testing.T) {
	tbl := table.New("people", peopleSchema())
	addPerson(t, tbl, 1, "Alice", intp(95))
	fv := NewFilterView("high_scorers", tbl, scoreAbove(90))
	tbl.DrainChanges()

	addPerson(t, tbl, 2, "Dave", intp(99))
	modified := fv.Sync()
	assert.True(t, modified)
	assert.Equal(t, 2, fv.Len())
}

func TestFilterViewSyncOnDelete(t *testing.T) {
	tbl := table.New("people", peopleSchema())
	addPerson(t, tbl, 1, "Alice", intp(95))
	addPerson(t, tbl, 2, "Bob", intp(99))
	fv := NewFilterView("high_scorers", tbl, scoreAbove(90))
	tbl.DrainChanges()

	_, err := tbl.DeleteRow(0)
	require.NoError(t, err)
	modified := fv.Sync()
	assert.True(t, modified)
	assert.Equal(t, 1, fv.Len())
	row, _ := fv.GetRow(0)
	name, _ := row["name"].AsString()
	assert.Equal(t, "Bob", name)
}

func TestFilterViewSyncOnCellUpdateMembershipChange(t *testing.T) {
	tbl := table.New("people", peopleSchema())
	addPerson(t, tbl, 1, "Alice", intp(50))
	fv := NewFilterView("high_scorers", tbl, scoreAbove(90))
	assert.Equal(t, 0, fv.Len())
	tbl.DrainChanges()

	require.NoError(t, tbl.SetValue(0, "score", column.Int64(95)))
	modified := fv.Sync()
	assert.True(t, modified)
	assert.Equal(t, 1, fv.Len())

	tbl.DrainChanges()
	require.NoError(t, tbl.SetValue(0, "score", column.Int64(10)))
	modified = fv.Sync()
	assert.True(t, modified)
	assert.Equal(t, 0, fv.Len())
}

func TestFilterViewNoPendingChangesSyncReturnsFalse(t *testing.T) {
	tbl := table.New("people", peopleSchema())
	addPerson(t, tbl, 1, "Alice", intp(95))
	fv := NewFilterView("high_scorers", tbl, scoreAbove(90))
	tbl.DrainChanges()

	assert.False(t, fv.Sync())
}

func TestFilterViewOutOfRange(t *testing.T) {
	tbl := table.New("people", peopleSchema())
	fv := NewFilterView("none", tbl, scoreAbove(90))
	_, err := fv.GetRow(0)
	assert.Error(t, err)
}
