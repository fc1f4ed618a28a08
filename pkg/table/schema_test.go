package table

import (
	"testing"

	"github.com/kasuganosora/livetable/pkg/column"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchemaRejectsDuplicateNames(t *testing.T) {
	assert.Panics(t, func() {
		NewSchema(
			ColumnDef{Name: "id", Type: column.TypeInt64},
			ColumnDef{Name: "id", Type: column.TypeString},
		)
	})
}

func TestNewSchemaAcceptsUniqueNames(t *testing.T) {
	var schema *Schema
	assert.NotPanics(t, func() {
		schema = NewSchema(
			ColumnDef{Name: "id", Type: column.TypeInt64},
			ColumnDef{Name: "name", Type: column.TypeString},
		)
	})
	require.NotNil(t, schema)
	assert.Equal(t, 2, schema.Len())
}

func TestSchemaColumnIndexAndInfo(t *testing.T) {
	schema := NewSchema(
		ColumnDef{Name: "id", Type: column.TypeInt64},
		ColumnDef{Name: "name", Type: column.TypeString, Nullable: true},
	)

	idx, ok := schema.ColumnIndex("name")
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = schema.ColumnIndex("missing")
	assert.False(t, ok)

	def, ok := schema.ColumnInfo(1)
	require.True(t, ok)
	assert.Equal(t, "name", def.Name)
	assert.True(t, def.Nullable)

	_, ok = schema.ColumnInfo(5)
	assert.False(t, ok)
}
