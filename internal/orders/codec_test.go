package orders

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

const widget = `{"order_id":42,"customer_id":1,"product_id":9,"product_description":"Widget","order_delivery_address":"1 Main St","order_date_taken":"2024-01-05 10:00:00","order_misc_notes":"rush"}`

func mustDecode(t *testing.T, s string) Order {
	t.Helper()
	o, err := Decode([]byte(s))
	if err != nil {
		t.Fatalf("decode %s: %v", s, err)
	}
	return o
}

func TestDecodeBindsByName(t *testing.T) {
	// keys deliberately out of column order
	in := `{"order_misc_notes":"rush","order_date_taken":"2024-01-05 10:00:00","order_id":42,"product_description":"Widget","customer_id":1,"order_delivery_address":"1 Main St","product_id":9}`

	row, err := ToRow(mustDecode(t, in))
	if err != nil {
		t.Fatal(err)
	}
	want := []any{int64(42), int64(1), int64(9), "Widget", "1 Main St", time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), "rush"}
	for i := range want {
		if wt, ok := want[i].(time.Time); ok {
			if got, ok := row[i].(time.Time); !ok || !got.Equal(wt) {
				t.Errorf("row[%d] = %v, want %v", i, row[i], wt)
			}
			continue
		}
		if row[i] != want[i] {
			t.Errorf("row[%d] (%s) = %#v, want %#v", i, Columns[i], row[i], want[i])
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", `{"order_id":`},
		{"missing order_id", `{"customer_id":1}`},
		{"null order_id", `{"order_id":null}`},
		{"order_id wrong type", `{"order_id":"abc"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.in)); !errors.Is(err, ErrMalformedInput) {
				t.Errorf("expected ErrMalformedInput, got %v", err)
			}
		})
	}
}

func TestDecodeDoesNotTypeCheckOtherFields(t *testing.T) {
	tests := []string{
		`{"order_id":0}`,
		`{"order_id":1,"customer_id":"C-1"}`,
		`{"order_id":1,"product_id":9.0}`,
		`{"order_id":1,"order_misc_notes":{"gift":true}}`,
		`{"order_id":1,"order_date_taken":"whenever"}`,
	}
	for _, in := range tests {
		o := mustDecode(t, in)
		b, err := Encode(o)
		if err != nil {
			t.Fatal(err)
		}
		if string(b) != in {
			t.Errorf("wire form changed:\n got %s\nwant %s", b, in)
		}
	}
}

func TestEncodeKeepsSparsePayloadSparse(t *testing.T) {
	b, err := Encode(mustDecode(t, `{"order_id":44,"customer_id":1}`))
	if err != nil {
		t.Fatal(err)
	}
	rec, err := DecodeRecord(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(rec) != 2 {
		t.Errorf("expected only the fields that came in, got %v", rec)
	}
}

func TestToRowLooseFields(t *testing.T) {
	o := mustDecode(t, `{"order_id":3,"customer_id":"C-1","product_id":9.5,"order_date_taken":"2024-01-05 10:00:00"}`)
	row, err := ToRow(o)
	if err != nil {
		t.Fatal(err)
	}
	if row[1] != "C-1" || row[2] != 9.5 {
		t.Errorf("unexpected bound values %#v", row)
	}
	if row[3] != nil || row[4] != nil || row[6] != nil {
		t.Errorf("absent fields must bind as NULL: %#v", row)
	}
}

func TestToRowRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"no date", `{"order_id":1}`},
		{"date only", `{"order_id":1,"order_date_taken":"2024-01-05"}`},
		{"iso date", `{"order_id":1,"order_date_taken":"2024-01-05T10:00:00"}`},
		{"day first", `{"order_id":1,"order_date_taken":"05/01/2024 10:00:00"}`},
		{"bad month", `{"order_id":1,"order_date_taken":"2024-13-05 10:00:00"}`},
		{"numeric date", `{"order_id":1,"order_date_taken":20240105}`},
		{"nested notes", `{"order_id":1,"order_date_taken":"2024-01-05 10:00:00","order_misc_notes":["a"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToRow(mustDecode(t, tt.in))
			if !errors.Is(err, ErrMalformedInput) {
				t.Errorf("expected ErrMalformedInput, got %v", err)
			}
		})
	}
	if _, err := ToRow(Order{}); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("missing order_id: expected ErrMalformedInput, got %v", err)
	}
}

func TestEncodeDecodeRecord(t *testing.T) {
	b, err := Encode(mustDecode(t, widget))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != widget {
		t.Errorf("wire form changed:\n got %s\nwant %s", b, widget)
	}
	rec, err := DecodeRecord(b)
	if err != nil {
		t.Fatal(err)
	}
	if rec["order_id"] != json.Number("42") || rec["order_misc_notes"] != "rush" {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestDecodeRecordCorrupt(t *testing.T) {
	for _, in := range []string{"not-json", `[1,2]`, `"text"`} {
		_, err := DecodeRecord([]byte(in))
		if !errors.Is(err, ErrCorruptCache) {
			t.Errorf("%q: expected ErrCorruptCache, got %v", in, err)
		}
		if errors.Is(err, ErrMalformedInput) {
			t.Errorf("%q: a bad cached value is not bad input", in)
		}
	}
}

func TestFromRowRoundTrip(t *testing.T) {
	row, err := ToRow(mustDecode(t, widget))
	if err != nil {
		t.Fatal(err)
	}
	rec := FromRow(Columns, row)

	if len(rec) != len(Columns) {
		t.Fatalf("record has %d fields", len(rec))
	}
	if rec["order_id"] != int64(42) || rec["order_delivery_address"] != "1 Main St" {
		t.Errorf("unexpected record %v", rec)
	}
	taken, ok := rec["order_date_taken"].(time.Time)
	if !ok || taken.Format(DateLayout) != "2024-01-05 10:00:00" {
		t.Errorf("order_date_taken = %#v", rec["order_date_taken"])
	}
}

func TestFromRowShortRow(t *testing.T) {
	rec := FromRow([]string{"a", "b", "c"}, []any{1})
	if len(rec) != 1 || rec["a"] != 1 {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in      string
		want    Target
		wantErr bool
	}{
		{"", TargetBoth, false},
		{"both", TargetBoth, false},
		{"redis", TargetRedis, false},
		{"oracle", TargetOracle, false},
		{"mongo", "", true},
		{"Redis", "", true},
	}
	for _, tt := range tests {
		got, err := ParseTarget(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTarget(%q) err = %v", tt.in, err)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrInvalidTarget) {
			t.Errorf("ParseTarget(%q) err = %v, want ErrInvalidTarget", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseTarget(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
