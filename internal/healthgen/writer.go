package healthgen

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"

	"healthlab/domain/health"

	"github.com/xuri/excelize/v2"
)

// Header returns the canonical column names
func Header() []string {
	header := make([]string, len(health.SchemaColumns))
	for i, col := range health.SchemaColumns {
		header[i] = string(col)
	}
	return header
}

// WriteCSV writes records to path with the canonical header. NaN cells are left empty.
func WriteCSV(path string, records []health.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header()); err != nil {
		return err
	}
	for _, rec := range records {
		cells := rowCells(rec)
		row := make([]string, len(cells))
		for i, c := range cells {
			row[i] = toString(c)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteXLSX writes records to Sheet1 of a new workbook. NaN cells are left blank.
func WriteXLSX(path string, records []health.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return err
		}
		f.SetActiveSheet(idx)
	}

	header := Header()
	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return err
	}

	for r, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		row := rowCells(rec)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

// rowCells returns the cells of rec in schema order; missing values are nil
func rowCells(rec health.Record) []interface{} {
	cells := make([]interface{}, 0, len(health.SchemaColumns))
	for _, col := range health.SchemaColumns {
		switch {
		case col.IsNumeric():
			v, _ := rec.Numeric(col)
			if math.IsNaN(v) {
				cells = append(cells, nil)
			} else {
				cells = append(cells, v)
			}
		case col == health.ColumnDisease:
			cells = append(cells, rec.Disease)
		default:
			s, _ := rec.Category(col)
			cells = append(cells, s)
		}
	}
	return cells
}

func toString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case string:
		return x
	default:
		return ""
	}
}
