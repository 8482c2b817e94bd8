// Package orderstest provides in-memory stores for exercising orders.Service.
package orderstest

import (
	"context"
	"fmt"
	"sync"

	"github.com/ariefcatur/order-cache-api/internal/orders"
	kafkago "github.com/segmentio/kafka-go"
)

// Cache is a map-backed orders.FastStore.
type Cache struct {
	mu   sync.Mutex
	data map[int64][]byte
	Err  error // returned by every call when set
	Sets int
	Gets int
}

func NewCache() *Cache { return &Cache{data: map[int64][]byte{}} }

func (c *Cache) Get(_ context.Context, orderID int64) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Gets++
	if c.Err != nil {
		return nil, false, c.Err
	}
	v, ok := c.data[orderID]
	return v, ok, nil
}

func (c *Cache) Set(_ context.Context, orderID int64, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sets++
	if c.Err != nil {
		return c.Err
	}
	c.data[orderID] = append([]byte(nil), value...)
	return nil
}

// Has reports whether orderID is cached.
func (c *Cache) Has(orderID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[orderID]
	return ok
}

// DB is a map-backed orders.DurableStore with a primary key on order_id.
type DB struct {
	mu      sync.Mutex
	rows    map[int64][]any
	Err     error
	Inserts int
	Selects int
}

func NewDB() *DB { return &DB{rows: map[int64][]any{}} }

func (d *DB) Insert(_ context.Context, row []any) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Inserts++
	if d.Err != nil {
		return d.Err
	}
	if len(row) != len(orders.Columns) {
		return fmt.Errorf("%w: row has %d values", orders.ErrMalformedInput, len(row))
	}
	id, ok := row[0].(int64)
	if !ok {
		return fmt.Errorf("%w: order_id %T", orders.ErrMalformedInput, row[0])
	}
	if _, dup := d.rows[id]; dup {
		return fmt.Errorf("%w: %d", orders.ErrAlreadyExists, id)
	}
	d.rows[id] = append([]any(nil), row...)
	return nil
}

func (d *DB) SelectByPrimaryKey(_ context.Context, orderID int64) ([]string, []any, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Selects++
	if d.Err != nil {
		return nil, nil, false, d.Err
	}
	row, ok := d.rows[orderID]
	if !ok {
		return nil, nil, false, nil
	}
	return append([]string(nil), orders.Columns...), append([]any(nil), row...), true, nil
}

func (d *DB) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.rows)
}

// Publisher collects published messages.
type Publisher struct {
	mu       sync.Mutex
	Messages [][]byte
	Keys     [][]byte
}

func (p *Publisher) Publish(key, value []byte, _ ...kafkago.Header) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Keys = append(p.Keys, key)
	p.Messages = append(p.Messages, value)
}
