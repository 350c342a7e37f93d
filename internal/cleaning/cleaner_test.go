package cleaning

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datalens/internal/config"
	"datalens/internal/dataset"
)

func newCleaner() *Cleaner {
	return NewCleaner(config.CleaningConfig{TextFill: "Unspecified"})
}

func TestCleanEmptyDataset(t *testing.T) {
	result := newCleaner().Clean(dataset.New("a"))

	assert.True(t, result.Data.IsEmpty())
	assert.Equal(t, []string{"Dataset is empty; nothing to clean"}, result.Report)
	assert.Zero(t, result.Counts)
}

func TestCleanRemovesDuplicates(t *testing.T) {
	ds := dataset.New("name", "price")
	for i := 0; i < 8; i++ {
		ds.Append(dataset.Row{
			"name":  dataset.Text(fmt.Sprintf("item-%d", i)),
			"price": dataset.Number(float64(i)),
		})
	}
	// Row 9 duplicates row 2 exactly.
	ds.Append(dataset.Row{"name": dataset.Text("item-2"), "price": dataset.Number(2)})
	ds.Append(dataset.Row{"name": dataset.Text("item-9"), "price": dataset.Number(9)})

	result := newCleaner().Clean(ds)

	assert.Equal(t, 9, result.Data.Len())
	assert.Equal(t, 1, result.Counts.DuplicatesRemoved)
	assert.Contains(t, result.Report, "Removed 1 duplicate row")
	// First occurrence kept, order preserved.
	assert.Equal(t, dataset.Text("item-0"), result.Data.Rows[0].Value("name"))
	assert.Equal(t, dataset.Text("item-9"), result.Data.Rows[8].Value("name"))
}

func TestCleanImputesByInferredType(t *testing.T) {
	// qty column of [5, "", null, 7]: inferred number, missing cells
	// become 0. The id column keeps the two missing rows distinct so
	// deduplication leaves all four in place.
	ds := dataset.New("id", "qty")
	ds.Append(dataset.Row{"id": dataset.Text("a"), "qty": dataset.Number(5)})
	ds.Append(dataset.Row{"id": dataset.Text("b"), "qty": dataset.Missing()}) // raw ""
	ds.Append(dataset.Row{"id": dataset.Text("c"), "qty": dataset.Missing()}) // raw null
	ds.Append(dataset.Row{"id": dataset.Text("d"), "qty": dataset.Number(7)})

	result := newCleaner().Clean(ds)

	require.Equal(t, 4, result.Data.Len())
	assert.Equal(t, dataset.Number(5), result.Data.Rows[0].Value("qty"))
	assert.Equal(t, dataset.Number(0), result.Data.Rows[1].Value("qty"))
	assert.Equal(t, dataset.Number(0), result.Data.Rows[2].Value("qty"))
	assert.Equal(t, dataset.Number(7), result.Data.Rows[3].Value("qty"))
	assert.Equal(t, 2, result.Counts.ValuesImputed)
	assert.Contains(t, result.Report, "Filled 2 missing values with column defaults")
}

func TestCleanSingleColumnMissingRowsCollapse(t *testing.T) {
	// In a single-column dataset, rows whose only value is missing all
	// serialize to the same canonical key, so deduplication collapses
	// them before imputation runs.
	ds := dataset.New("qty")
	ds.Append(dataset.Row{"qty": dataset.Number(5)})
	ds.Append(dataset.Row{"qty": dataset.Missing()})
	ds.Append(dataset.Row{"qty": dataset.Missing()})
	ds.Append(dataset.Row{"qty": dataset.Number(7)})

	result := newCleaner().Clean(ds)

	require.Equal(t, 3, result.Data.Len())
	assert.Equal(t, 1, result.Counts.DuplicatesRemoved)
	assert.Equal(t, 1, result.Counts.ValuesImputed)
	assert.Equal(t, dataset.Number(0), result.Data.Rows[1].Value("qty"))
}

func TestCleanImputesTextColumns(t *testing.T) {
	ds := dataset.New("name")
	ds.Append(dataset.Row{"name": dataset.Text("widget")})
	ds.Append(dataset.Row{"name": dataset.Missing()})

	result := newCleaner().Clean(ds)

	assert.Equal(t, dataset.Text("Unspecified"), result.Data.Rows[1].Value("name"))
}

func TestCleanNormalizesWhitespace(t *testing.T) {
	ds := dataset.New("company")
	ds.Append(dataset.Row{"company": dataset.Text("  Acme Corp  ")})
	ds.Append(dataset.Row{"company": dataset.Text("Globex")})

	result := newCleaner().Clean(ds)

	assert.Equal(t, dataset.Text("Acme Corp"), result.Data.Rows[0].Value("company"))
	assert.Equal(t, 1, result.Counts.ValuesNormalized)
	assert.Contains(t, result.Report, "Normalized whitespace in 1 value")
}

func TestCleanNoChangesNeeded(t *testing.T) {
	ds := dataset.New("a")
	ds.Append(dataset.Row{"a": dataset.Number(1)})
	ds.Append(dataset.Row{"a": dataset.Number(2)})

	result := newCleaner().Clean(ds)

	assert.Equal(t, []string{"No cleaning was necessary"}, result.Report)
}

func TestCleanReportOrder(t *testing.T) {
	ds := dataset.New("name")
	ds.Append(dataset.Row{"name": dataset.Text("  a  ")})
	ds.Append(dataset.Row{"name": dataset.Text("  a  ")}) // duplicate
	ds.Append(dataset.Row{"name": dataset.Missing()})

	result := newCleaner().Clean(ds)

	require.Len(t, result.Report, 3)
	assert.Contains(t, result.Report[0], "duplicate")
	assert.Contains(t, result.Report[1], "missing")
	assert.Contains(t, result.Report[2], "Normalized")
}

func TestCleanDoesNotMutateInput(t *testing.T) {
	ds := dataset.New("name")
	ds.Append(dataset.Row{"name": dataset.Text("  padded  ")})
	ds.Append(dataset.Row{"name": dataset.Text("  padded  ")})

	_ = newCleaner().Clean(ds)

	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, dataset.Text("  padded  "), ds.Rows[0].Value("name"))
}

func TestCleanPreservesSchema(t *testing.T) {
	ds := dataset.New("z", "a", "m")
	ds.Append(dataset.Row{"z": dataset.Number(1), "a": dataset.Missing(), "m": dataset.Text("x")})

	result := newCleaner().Clean(ds)

	assert.Equal(t, []string{"z", "a", "m"}, result.Data.Columns)
}

func TestCleanNeverGrowsDataset(t *testing.T) {
	ds := dataset.New("a", "b")
	for i := 0; i < 20; i++ {
		ds.Append(dataset.Row{
			"a": dataset.Number(float64(i % 5)),
			"b": dataset.Missing(),
		})
	}

	result := newCleaner().Clean(ds)
	assert.LessOrEqual(t, result.Data.Len(), ds.Len())
}

func TestCleanIdempotent(t *testing.T) {
	ds := dataset.New("name", "qty")
	ds.Append(dataset.Row{"name": dataset.Text("  a "), "qty": dataset.Number(1)})
	ds.Append(dataset.Row{"name": dataset.Text("  a "), "qty": dataset.Number(1)})
	ds.Append(dataset.Row{"name": dataset.Missing(), "qty": dataset.Missing()})

	first := newCleaner().Clean(ds)
	second := newCleaner().Clean(first.Data)

	assert.Zero(t, second.Counts.DuplicatesRemoved)
	assert.Zero(t, second.Counts.ValuesNormalized)
	assert.Equal(t, first.Data.Len(), second.Data.Len())
}
