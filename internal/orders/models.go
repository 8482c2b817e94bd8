package orders

import (
	"encoding/json"
	"fmt"
)

// Order is the wire form of an order record. Only order_id is typed; every
// other field keeps the JSON it arrived with and is omitted when absent.
// Field tags double as the column names of the orders table (see Columns).
type Order struct {
	OrderID              *int64          `json:"order_id" validate:"required"`
	CustomerID           json.RawMessage `json:"customer_id,omitempty"`
	ProductID            json.RawMessage `json:"product_id,omitempty"`
	ProductDescription   json.RawMessage `json:"product_description,omitempty"`
	OrderDeliveryAddress json.RawMessage `json:"order_delivery_address,omitempty"`
	OrderDateTaken       json.RawMessage `json:"order_date_taken,omitempty"` // "YYYY-MM-DD HH:MM:SS"
	OrderMiscNotes       json.RawMessage `json:"order_misc_notes,omitempty"`
}

// ID returns order_id, or 0 for an order that has none.
func (o Order) ID() int64 {
	if o.OrderID == nil {
		return 0
	}
	return *o.OrderID
}

// Record is an order as read back from either store: column/field name -> value.
type Record map[string]any

// Columns is the ordered column binding of the orders table.
var Columns = []string{
	"order_id",
	"customer_id",
	"product_id",
	"product_description",
	"order_delivery_address",
	"order_date_taken",
	"order_misc_notes",
}

// Source tags where a read was served from.
type Source string

const (
	SourceRedis  Source = "Redis"
	SourceOracle Source = "Oracle"
)

type Target string

const (
	TargetRedis  Target = "redis"
	TargetOracle Target = "oracle"
	TargetBoth   Target = "both"
)

// ParseTarget resolves the write target selector; empty means both.
func ParseTarget(s string) (Target, error) {
	switch t := Target(s); t {
	case "":
		return TargetBoth, nil
	case TargetRedis, TargetOracle, TargetBoth:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTarget, s)
	}
}

func (t Target) fast() bool    { return t == TargetRedis || t == TargetBoth }
func (t Target) durable() bool { return t == TargetOracle || t == TargetBoth }
