package orders

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire format of order_date_taken.
const DateLayout = "2006-01-02 15:04:05"

var validate = validator.New()

// Encode serializes an order to its wire form. Absent fields stay absent.
func Encode(o Order) ([]byte, error) {
	return json.Marshal(o)
}

// Decode parses a wire payload. order_id must be present and an integer;
// nothing else is checked.
func Decode(b []byte) (Order, error) {
	var o Order
	if err := json.Unmarshal(b, &o); err != nil {
		return Order{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if err := validate.Struct(&o); err != nil {
		return Order{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return o, nil
}

// DecodeRecord parses a cached value of either shape (wire order or a
// record repopulated from the durable store). Numbers stay json.Number.
func DecodeRecord(b []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCache, err)
	}
	return rec, nil
}

// ToRow returns the order's values in Columns order. order_date_taken is
// parsed into a time.Time; other fields become the scalar their JSON holds,
// or nil when absent.
func ToRow(o Order) ([]any, error) {
	if err := validate.Struct(&o); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	raw := map[string]json.RawMessage{
		"customer_id":            o.CustomerID,
		"product_id":             o.ProductID,
		"product_description":    o.ProductDescription,
		"order_delivery_address": o.OrderDeliveryAddress,
		"order_misc_notes":       o.OrderMiscNotes,
	}

	row := make([]any, len(Columns))
	for i, col := range Columns {
		var (
			v   any
			err error
		)
		switch col {
		case "order_id":
			v = *o.OrderID
		case "order_date_taken":
			v, err = parseDateTaken(o.OrderDateTaken)
		default:
			v, err = scalar(raw[col])
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedInput, col, err)
		}
		row[i] = v
	}
	return row, nil
}

func parseDateTaken(raw json.RawMessage) (time.Time, error) {
	if len(raw) == 0 {
		return time.Time{}, errors.New("missing")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, err
	}
	return time.Parse(DateLayout, s)
}

// scalar decodes a JSON value for binding to a column. Integers become
// int64, other numbers float64; objects and arrays have no column form.
func scalar(raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		return n.Float64()
	case map[string]any, []any:
		return nil, fmt.Errorf("nested value %s", raw)
	default:
		return v, nil
	}
}

// FromRow zips column names with row values. Values pass through as the
// driver returned them.
func FromRow(columns []string, values []any) Record {
	n := min(len(columns), len(values))
	rec := make(Record, n)
	for i := 0; i < n; i++ {
		rec[columns[i]] = values[i]
	}
	return rec
}
