package orders

import (
	"encoding/json"
	"time"
)

const EventOrderWritten = "OrderWritten"

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order_id
	Payload       json.RawMessage `json:"payload"`
}

type OrderWrittenPayload struct {
	OrderID int64  `json:"order_id"`
	Target  Target `json:"target"`
}
