package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	kafkago "github.com/segmentio/kafka-go"
)

// FastStore is the in-memory key-value side (Redis).
type FastStore interface {
	Get(ctx context.Context, orderID int64) ([]byte, bool, error)
	Set(ctx context.Context, orderID int64, value []byte) error
}

// DurableStore is the relational side.
type DurableStore interface {
	Insert(ctx context.Context, row []any) error
	SelectByPrimaryKey(ctx context.Context, orderID int64) (columns []string, values []any, found bool, err error)
}

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Lookup is the result of a read.
type Lookup struct {
	Order  Record `json:"order"`
	Source Source `json:"source"`
}

// Service applies write fan-out and cache-aside reads over the two stores.
// Stores are written independently; a failure after the fast write does not
// undo it.
type Service struct {
	Cache  FastStore
	DB     DurableStore
	Events Publisher // optional
	Name   string
}

func (s *Service) Write(ctx context.Context, o Order, target Target) error {
	if o.OrderID == nil {
		return fmt.Errorf("%w: order_id missing", ErrMalformedInput)
	}
	if target.fast() {
		b, err := Encode(o)
		if err != nil {
			return err
		}
		if err := s.Cache.Set(ctx, o.ID(), b); err != nil {
			return err
		}
	}
	if target.durable() {
		row, err := ToRow(o)
		if err != nil {
			return err
		}
		if err := s.DB.Insert(ctx, row); err != nil {
			return err
		}
	}
	s.publishWritten(ctx, o.ID(), target)
	return nil
}

// Read serves from the fast store, falling back to the durable store. The
// fast store is repopulated on fallback only when repopulate is set.
func (s *Service) Read(ctx context.Context, orderID int64, repopulate bool) (Lookup, error) {
	b, ok, err := s.Cache.Get(ctx, orderID)
	if err != nil {
		return Lookup{}, err
	}
	if ok {
		rec, err := DecodeRecord(b)
		if err != nil {
			return Lookup{}, err
		}
		log.Debug().Int64("order_id", orderID).Msg("read from redis")
		return Lookup{Order: rec, Source: SourceRedis}, nil
	}

	cols, vals, found, err := s.DB.SelectByPrimaryKey(ctx, orderID)
	if err != nil {
		return Lookup{}, err
	}
	if !found {
		return Lookup{}, ErrNotFound
	}
	rec := FromRow(cols, vals)
	log.Debug().Int64("order_id", orderID).Msg("read from oracle")

	if repopulate {
		b, err := json.Marshal(rec)
		if err != nil {
			return Lookup{}, fmt.Errorf("encode record: %w", err)
		}
		if err := s.Cache.Set(ctx, orderID, b); err != nil {
			return Lookup{}, err
		}
	}
	return Lookup{Order: rec, Source: SourceOracle}, nil
}

func (s *Service) publishWritten(ctx context.Context, orderID int64, target Target) {
	if s.Events == nil {
		return
	}
	payload, err := json.Marshal(OrderWrittenPayload{OrderID: orderID, Target: target})
	if err != nil {
		log.Error().Err(err).Int64("order_id", orderID).Msg("encode event payload")
		return
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderWritten,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.Name,
		TraceID:       TraceID(ctx),
		CorrelationID: string(PartitionKey(orderID)),
		Payload:       payload,
	}
	value, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Int64("order_id", orderID).Msg("encode event")
		return
	}
	s.Events.Publish(PartitionKey(orderID), value,
		kafkago.Header{Key: "x-event-type", Value: []byte(EventOrderWritten)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

type traceKey struct{}

// WithTraceID attaches a request id that is copied into published events.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceKey{}, id)
}

func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceKey{}).(string)
	return id
}
