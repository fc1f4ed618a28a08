// Package export writes table and view contents to xlsx workbooks,
// and loads a table back from one.
package export

import (
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/kasuganosora/livetable/pkg/column"
	"github.com/kasuganosora/livetable/pkg/errs"
	"github.com/kasuganosora/livetable/pkg/table"
)

// RowSource is anything export can iterate row-by-row: table.Table and
// every view type in pkg/view satisfy it.
type RowSource interface {
	Len() int
	GetRow(index int) (map[string]column.Value, error)
}

// WriteXLSX writes source to a new workbook at path, one sheet named
// sheetName, header row from columns (in order), one data row per
// source row.
func WriteXLSX(path, sheetName string, columns []string, source RowSource) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName != "Sheet1" {
		index, err := f.NewSheet(sheetName)
		if err != nil {
			return err
		}
		f.SetActiveSheet(index)
		f.DeleteSheet("Sheet1")
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return err
		}
	}

	for r := 0; r < source.Len(); r++ {
		row, err := source.GetRow(r)
		if err != nil {
			return err
		}
		rowNum := r + 2
		for c, col := range columns {
			cell, err := excelize.CoordinatesToCellName(c+1, rowNum)
			if err != nil {
				return err
			}
			val, ok := row[col]
			if !ok || val.IsNull() {
				continue
			}
			if err := f.SetCellValue(sheetName, cell, cellValue(val)); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}

// WriteTableXLSX writes every column of t's schema, in schema order,
// to path under sheetName.
func WriteTableXLSX(path, sheetName string, t *table.Table) error {
	return WriteXLSX(path, sheetName, t.Schema().ColumnNames(), t)
}

func cellValue(v column.Value) interface{} {
	switch v.Type() {
	case column.TypeInt32:
		n, _ := v.AsInt32()
		return n
	case column.TypeInt64:
		n, _ := v.AsInt64()
		return n
	case column.TypeFloat32:
		f, _ := v.AsFloat32()
		return f
	case column.TypeFloat64:
		f, _ := v.AsFloat64()
		return f
	case column.TypeString:
		s, _ := v.AsString()
		return s
	case column.TypeBool:
		b, _ := v.AsBool()
		return b
	default:
		return nil
	}
}

// ReadXLSXIntoTable reads sheetName from path (first row as headers
// matching the schema's column names) and appends every data row into
// t. Columns present in the sheet but absent from the schema are
// ignored; columns the schema requires but the sheet lacks cause
// ErrMissingValue on the first row, as from any other AppendRow.
func ReadXLSXIntoTable(path, sheetName string, t *table.Table) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	headers := rows[0]
	schema := t.Schema()

	for _, raw := range rows[1:] {
		rowValues := make(map[string]column.Value, len(headers))
		for i, header := range headers {
			idx, ok := schema.ColumnIndex(header)
			if !ok {
				continue
			}
			def, _ := schema.ColumnInfo(idx)
			if i >= len(raw) || raw[i] == "" {
				if !def.Nullable {
					return errs.NewErrNullabilityViolation(header)
				}
				rowValues[header] = column.Null()
				continue
			}
			v, err := parseCell(raw[i], def.Type)
			if err != nil {
				return err
			}
			rowValues[header] = v
		}
		if err := t.AppendRow(rowValues); err != nil {
			return err
		}
	}

	return nil
}

func parseCell(raw string, t column.Type) (column.Value, error) {
	switch t {
	case column.TypeInt32:
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return column.Value{}, errs.NewErrTypeMismatch("", "Int32", raw)
		}
		return column.Int32(int32(n)), nil
	case column.TypeInt64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return column.Value{}, errs.NewErrTypeMismatch("", "Int64", raw)
		}
		return column.Int64(n), nil
	case column.TypeFloat32:
		f, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return column.Value{}, errs.NewErrTypeMismatch("", "Float32", raw)
		}
		return column.Float32(float32(f)), nil
	case column.TypeFloat64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return column.Value{}, errs.NewErrTypeMismatch("", "Float64", raw)
		}
		return column.Float64(f), nil
	case column.TypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return column.Value{}, errs.NewErrTypeMismatch("", "Bool", raw)
		}
		return column.Bool(b), nil
	case column.TypeString:
		return column.String(raw), nil
	default:
		return column.String(raw), nil
	}
}
