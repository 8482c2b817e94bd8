package audit

import (
	"context"
	"fmt"

	kafkax "github.com/ariefcatur/order-cache-api/internal/kafka"
	"github.com/ariefcatur/order-cache-api/internal/orders"
	"github.com/ariefcatur/order-cache-api/internal/redisx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	kafkago "github.com/segmentio/kafka-go"
)

// Service records every OrderWritten event once.
type Service struct {
	Redis       *redis.Client
	Log         zerolog.Logger
	ServiceName string
}

// HandleOrderWritten is installed as the consumer handler.
func (s *Service) HandleOrderWritten(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := kafkax.UnmarshalEnvelope(m.Value, &env); err != nil {
		// poison message: log and let it commit
		s.Log.Error().Err(err).Int64("offset", m.Offset).Msg("invalid envelope, skipping")
		return nil
	}
	if env.EventType != orders.EventOrderWritten {
		return nil
	}

	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	first, err := s.Redis.SetNX(ctx, dkey, "1", redisx.TTLDedup).Result()
	if err != nil {
		return err
	}
	if !first {
		return nil
	}

	p, err := kafkax.UnwrapPayload[orders.OrderWrittenPayload](env.Payload)
	if err != nil {
		s.Log.Error().Err(err).Str("event_id", env.EventID).Msg("invalid payload, skipping")
		return nil
	}

	s.Log.Info().
		Str("event_id", env.EventID).
		Int64("order_id", p.OrderID).
		Str("target", string(p.Target)).
		Str("producer", env.Producer).
		Str("trace_id", env.TraceID).
		Time("occurred_at", env.OccurredAt).
		Msg("order written")
	return nil
}
