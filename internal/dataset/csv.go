package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// FromCSV reads a comma-separated file into a Dataset. The first record is
// the column schema. Cells that parse as numbers become Number values,
// empty cells become Missing, everything else is Text. A UTF-8 BOM is
// stripped so files exported from Excel ingest cleanly.
func FromCSV(r io.Reader) (*Dataset, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return New(), nil
	}

	ds := New(records[0]...)
	for _, rec := range records[1:] {
		row := make(Row, len(ds.Columns))
		for i, col := range ds.Columns {
			if i >= len(rec) {
				row[col] = Missing()
				continue
			}
			row[col] = fromCell(rec[i])
		}
		ds.Append(row)
	}
	return ds, nil
}

// fromCell maps one CSV cell onto the tagged value type.
func fromCell(cell string) Value {
	if cell == "" {
		return Missing()
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return Number(f)
	}
	return Text(cell)
}
