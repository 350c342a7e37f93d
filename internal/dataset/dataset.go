package dataset

import (
	"strconv"
	"strings"
)

// Kind identifies the variant carried by a Value.
type Kind int

const (
	// KindMissing marks absence of data regardless of raw encoding.
	KindMissing Kind = iota
	// KindNumber marks a numeric value.
	KindNumber
	// KindText marks a textual value.
	KindText
)

// Value is a tagged field value: a number, a text, or missing.
// The zero Value is Missing.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Number returns a numeric Value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Text returns a textual Value.
func Text(s string) Value {
	return Value{kind: KindText, str: s}
}

// Missing returns the missing Value.
func Missing() Value {
	return Value{kind: KindMissing}
}

// Kind returns the variant tag of the value.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the value represents absent data.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Float returns the numeric payload. It is zero for non-number values.
func (v Value) Float() float64 { return v.num }

// Text returns the textual payload. It is empty for non-text values.
func (v Value) Text() string { return v.str }

// String renders the value the way it appears in delimited exports:
// numbers without trailing zeros, missing as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindText:
		return v.str
	default:
		return ""
	}
}

// Row maps column names to field values. Columns absent from the map are
// treated as Missing; ordering is carried by the owning Dataset schema,
// never by the map itself.
type Row map[string]Value

// Value returns the row's value for the named column, Missing when the
// column is absent.
func (r Row) Value(column string) Value {
	if v, ok := r[column]; ok {
		return v
	}
	return Missing()
}

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Key returns the canonical serialization of the row under the given
// column order. Two rows are duplicates iff their keys are equal. Using
// the schema order rather than any per-row order makes the serialization
// stable across rows that share a schema.
func (r Row) Key(columns []string) string {
	var b strings.Builder
	for i, col := range columns {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		v := r.Value(col)
		switch v.kind {
		case KindMissing:
			b.WriteByte('m')
		case KindNumber:
			b.WriteString("n:")
			b.WriteString(strconv.FormatFloat(v.num, 'g', -1, 64))
		case KindText:
			b.WriteString("t:")
			b.WriteString(v.str)
		}
	}
	return b.String()
}

// Dataset is an ordered sequence of rows sharing one column schema.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// New returns an empty dataset with the given column schema.
func New(columns ...string) *Dataset {
	return &Dataset{Columns: columns}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// IsEmpty reports whether the dataset has no rows.
func (d *Dataset) IsEmpty() bool { return d.Len() == 0 }

// Append adds a row to the end of the dataset.
func (d *Dataset) Append(row Row) {
	d.Rows = append(d.Rows, row)
}

// Clone returns a deep copy sharing nothing with the receiver. Cleaning
// operates on the copy so the original dataset is never mutated.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	out := &Dataset{
		Columns: append([]string(nil), d.Columns...),
		Rows:    make([]Row, 0, len(d.Rows)),
	}
	for _, row := range d.Rows {
		out.Rows = append(out.Rows, row.Clone())
	}
	return out
}

// MissingCount returns the total number of missing values across all rows
// and all schema columns.
func (d *Dataset) MissingCount() int {
	n := 0
	for _, row := range d.Rows {
		for _, col := range d.Columns {
			if row.Value(col).IsMissing() {
				n++
			}
		}
	}
	return n
}

// Head returns the first n rows (all rows when n exceeds the length)
// without copying row contents.
func (d *Dataset) Head(n int) []Row {
	if n < 0 {
		n = 0
	}
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	return d.Rows[:n]
}
