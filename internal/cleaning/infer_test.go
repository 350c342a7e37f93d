package cleaning

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"datalens/internal/dataset"
)

func TestInferTypes(t *testing.T) {
	ds := dataset.New("price", "name", "empty", "late")
	ds.Append(dataset.Row{
		"price": dataset.Number(5),
		"name":  dataset.Text("widget"),
		"empty": dataset.Missing(),
		"late":  dataset.Missing(),
	})
	ds.Append(dataset.Row{
		"price": dataset.Missing(),
		"name":  dataset.Text("gadget"),
		"empty": dataset.Missing(),
		"late":  dataset.Number(7),
	})

	types := InferTypes(ds)

	assert.Equal(t, TypeNumber, types["price"], "first present value decides")
	assert.Equal(t, TypeText, types["name"])
	assert.Equal(t, TypeText, types["empty"], "entirely missing column defaults to text")
	assert.Equal(t, TypeNumber, types["late"], "scan continues past missing leading values")
}

func TestInferTypesFirstValueWins(t *testing.T) {
	// A column that starts textual stays text even when later rows hold
	// numbers.
	ds := dataset.New("mixed")
	ds.Append(dataset.Row{"mixed": dataset.Text("n/a")})
	ds.Append(dataset.Row{"mixed": dataset.Number(3)})

	assert.Equal(t, TypeText, InferTypes(ds)["mixed"])
}

func TestInferTypesEmptyDataset(t *testing.T) {
	ds := dataset.New("a", "b")

	types := InferTypes(ds)

	assert.Equal(t, TypeText, types["a"])
	assert.Equal(t, TypeText, types["b"])
}
