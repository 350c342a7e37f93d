package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	body := `[
		{"name": "widget", "price": 3.5, "stock": 10},
		{"name": "", "price": null, "stock": 7},
		{"stock": 2, "name": "gadget", "price": 1}
	]`

	ds, err := DecodeJSON(strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "price", "stock"}, ds.Columns, "schema follows first object's key order")
	require.Equal(t, 3, ds.Len())

	assert.Equal(t, Text("widget"), ds.Rows[0].Value("name"))
	assert.Equal(t, Number(3.5), ds.Rows[0].Value("price"))

	assert.True(t, ds.Rows[1].Value("name").IsMissing(), "empty string ingests as missing")
	assert.True(t, ds.Rows[1].Value("price").IsMissing(), "null ingests as missing")

	assert.Equal(t, Number(2), ds.Rows[2].Value("stock"))
}

func TestDecodeJSONAbsentKey(t *testing.T) {
	body := `[{"a": 1, "b": "x"}, {"a": 2}]`

	ds, err := DecodeJSON(strings.NewReader(body))
	require.NoError(t, err)
	assert.True(t, ds.Rows[1].Value("b").IsMissing())
}

func TestDecodeJSONScalarCoercion(t *testing.T) {
	body := `[{"flag": true, "big": 12345678901234567890}]`

	ds, err := DecodeJSON(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, Text("true"), ds.Rows[0].Value("flag"))
	assert.Equal(t, KindNumber, ds.Rows[0].Value("big").Kind())
}

func TestDecodeJSONEmptyArray(t *testing.T) {
	ds, err := DecodeJSON(strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.True(t, ds.IsEmpty())
	assert.Empty(t, ds.Columns)
}

func TestDecodeJSONMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not an array", body: `{"a": 1}`},
		{name: "array of scalars", body: `[1, 2]`},
		{name: "truncated", body: `[{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON(strings.NewReader(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDatasetMarshalJSON(t *testing.T) {
	ds := New("name", "price")
	ds.Append(Row{"name": Text("widget"), "price": Number(3)})
	ds.Append(Row{"name": Missing(), "price": Number(1.5)})

	out, err := ds.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"widget","price":3},{"name":null,"price":1.5}]`, string(out))
	// Column order must be schema order, not map order.
	assert.True(t, strings.Index(string(out), `"name"`) < strings.Index(string(out), `"price"`))
}

func TestFromRecords(t *testing.T) {
	ds := FromRecords([]string{"a", "b"}, []map[string]any{
		{"a": 1.0, "b": "x"},
		{"a": nil},
	})

	require.Equal(t, 2, ds.Len())
	assert.Equal(t, Number(1), ds.Rows[0].Value("a"))
	assert.True(t, ds.Rows[1].Value("a").IsMissing())
	assert.True(t, ds.Rows[1].Value("b").IsMissing())
}

func TestFromCSV(t *testing.T) {
	input := "\xEF\xBB\xBFname,price,note\nwidget,3.5,ok\ngadget,,\n"

	ds, err := FromCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "price", "note"}, ds.Columns)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, Number(3.5), ds.Rows[0].Value("price"))
	assert.True(t, ds.Rows[1].Value("price").IsMissing())
	assert.True(t, ds.Rows[1].Value("note").IsMissing())
}

func TestFromCSVShortRecord(t *testing.T) {
	input := "a,b\n1\n"

	ds, err := FromCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, Number(1), ds.Rows[0].Value("a"))
	assert.True(t, ds.Rows[0].Value("b").IsMissing())
}

func TestFromCSVEmpty(t *testing.T) {
	ds, err := FromCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.True(t, ds.IsEmpty())
}
