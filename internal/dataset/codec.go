package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cast"
)

// MarshalJSON renders the value for the analytics wire format:
// missing as null, numbers and text as plain JSON scalars.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindText:
		return json.Marshal(v.str)
	default:
		return []byte("null"), nil
	}
}

// MarshalJSON renders the dataset as an array of records. Object keys are
// written in schema order so the wire format is deterministic.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("[]"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range d.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, col := range d.Columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			name, err := json.Marshal(col)
			if err != nil {
				return nil, err
			}
			buf.Write(name)
			buf.WriteByte(':')
			val, err := json.Marshal(row.Value(col))
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// DecodeJSON reads a JSON array of flat objects into a Dataset. The first
// object's key order defines the column schema; later objects are read
// against it, with absent keys treated as Missing. A token-level walk is
// used instead of unmarshalling into maps so the schema keeps the key
// order the client sent.
func DecodeJSON(r io.Reader) (*Dataset, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	ds := &Dataset{}
	first := true
	for dec.More() {
		if err := expectDelim(dec, '{'); err != nil {
			return nil, fmt.Errorf("decode dataset row %d: %w", len(ds.Rows), err)
		}
		row := make(Row)
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("decode dataset row %d: %w", len(ds.Rows), err)
			}
			key, ok := tok.(string)
			if !ok {
				return nil, fmt.Errorf("decode dataset row %d: unexpected key token %v", len(ds.Rows), tok)
			}
			var raw any
			if err := dec.Decode(&raw); err != nil {
				return nil, fmt.Errorf("decode dataset row %d, column %q: %w", len(ds.Rows), key, err)
			}
			if first {
				ds.Columns = append(ds.Columns, key)
			}
			row[key] = fromRaw(raw)
		}
		if _, err := dec.Token(); err != nil { // closing '}'
			return nil, fmt.Errorf("decode dataset row %d: %w", len(ds.Rows), err)
		}
		ds.Rows = append(ds.Rows, row)
		first = false
	}
	if _, err := dec.Token(); err != nil { // closing ']'
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return ds, nil
}

// FromRecords builds a dataset from already-decoded records under an
// explicit column order. Used where the caller owns the schema, e.g. tests
// and the CLI.
func FromRecords(columns []string, records []map[string]any) *Dataset {
	ds := New(columns...)
	for _, rec := range records {
		row := make(Row, len(columns))
		for _, col := range columns {
			raw, ok := rec[col]
			if !ok {
				row[col] = Missing()
				continue
			}
			row[col] = fromRaw(raw)
		}
		ds.Append(row)
	}
	return ds
}

// fromRaw maps a decoded JSON scalar onto the tagged value type. The three
// raw missing encodings (nil for both null and absent keys, and the empty
// string) collapse to Missing here, at the ingestion boundary.
func fromRaw(raw any) Value {
	switch val := raw.(type) {
	case nil:
		return Missing()
	case json.Number:
		f, err := strconv.ParseFloat(val.String(), 64)
		if err != nil {
			return Text(val.String())
		}
		return Number(f)
	case float64:
		return Number(val)
	case int:
		return Number(float64(val))
	case string:
		if val == "" {
			return Missing()
		}
		return Text(val)
	default:
		// Bools and anything else exotic become their textual form.
		return Text(cast.ToString(val))
	}
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
