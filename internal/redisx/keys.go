package redisx

import (
	"strconv"
	"time"
)

const (
	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var TTLDedup = 48 * time.Hour

// OrderKey is the bare decimal order_id; orders are stored without a prefix
// or expiry.
func OrderKey(orderID int64) string { return strconv.FormatInt(orderID, 10) }
