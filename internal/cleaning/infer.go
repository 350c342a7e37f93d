package cleaning

import "datalens/internal/dataset"

// ColumnType is the inferred value type of a column, used to pick the
// imputation default.
type ColumnType string

const (
	TypeNumber ColumnType = "number"
	TypeText   ColumnType = "text"
)

// InferTypes derives the type of every schema column: the type of the
// first row (in dataset order) holding a present value for the column,
// text when the column is entirely missing. The whole map is computed in
// one pass over the rows so the imputer never rescans the dataset per
// cell.
func InferTypes(ds *dataset.Dataset) map[string]ColumnType {
	types := make(map[string]ColumnType, len(ds.Columns))
	remaining := len(ds.Columns)

	for _, row := range ds.Rows {
		if remaining == 0 {
			break
		}
		for _, col := range ds.Columns {
			if _, done := types[col]; done {
				continue
			}
			v := row.Value(col)
			if v.IsMissing() {
				continue
			}
			if v.Kind() == dataset.KindNumber {
				types[col] = TypeNumber
			} else {
				types[col] = TypeText
			}
			remaining--
		}
	}

	for _, col := range ds.Columns {
		if _, ok := types[col]; !ok {
			types[col] = TypeText
		}
	}
	return types
}
