package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"datalens/internal/dataset"
)

// excelSheet is the worksheet name used for exported datasets.
const excelSheet = "Data"

// WriteExcel renders the dataset as an XLSX workbook with one sheet.
// Numbers are written as numeric cells, text as strings, missing values
// as blank cells.
func WriteExcel(w io.Writer, ds *dataset.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", excelSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	for i, col := range ds.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(excelSheet, cell, col); err != nil {
			return fmt.Errorf("write header cell: %w", err)
		}
	}

	for r, row := range ds.Rows {
		for cIdx, col := range ds.Columns {
			v := row.Value(col)
			if v.IsMissing() {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(cIdx+1, r+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			var cellValue any
			if v.Kind() == dataset.KindNumber {
				cellValue = v.Float()
			} else {
				cellValue = v.Text()
			}
			if err := f.SetCellValue(excelSheet, cell, cellValue); err != nil {
				return fmt.Errorf("write data cell: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
