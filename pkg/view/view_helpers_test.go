package view

import (
	"testing"

	"github.com/kasuganosora/livetable/pkg/column"
	"github.com/kasuganosora/livetable/pkg/table"
	"github.com/stretchr/testify/require"
)

func newBasicPeopleTable(t *testing.T) *table.Table {
	t.Helper()
	tbl := table.New("people", peopleSchema())
	addPerson(t, tbl, 1, "Alice", intp(95))
	addPerson(t, tbl, 2, "Bob", intp(80))
	require.Equal(t, 2, tbl.Len())
	return tbl
}
