package exporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"datalens/internal/dataset"
)

func TestWriteExcel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExcel(&buf, exportDataset()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(excelSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"name", "price", "note"}, rows[0])
	assert.Equal(t, "widget", rows[1][0])
	assert.Equal(t, "3.5", rows[1][1])

	// Missing value stays a blank cell.
	note, err := f.GetCellValue(excelSheet, "C2")
	require.NoError(t, err)
	assert.Empty(t, note)
}

func TestWriteExcelEmptyDataset(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExcel(&buf, dataset.New("only", "headers")))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(excelSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"only", "headers"}, rows[0])
}
