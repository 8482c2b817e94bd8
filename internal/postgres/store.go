package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ariefcatur/order-cache-api/internal/orders"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of *pgxpool.Pool the store needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

var (
	insertOrderSQL = buildInsert()
	selectOrderSQL = `SELECT ` + strings.Join(orders.Columns, ", ") + ` FROM orders WHERE order_id = $1`
)

func buildInsert() string {
	params := make([]string, len(orders.Columns))
	for i := range params {
		params[i] = fmt.Sprintf("$%d", i+1)
	}
	return `INSERT INTO orders (` + strings.Join(orders.Columns, ", ") + `) VALUES (` + strings.Join(params, ", ") + `)`
}

// OrderStore writes and reads the orders table. Every statement commits on
// its own; there is no transaction spanning calls.
type OrderStore struct{ DB Querier }

func (s *OrderStore) Insert(ctx context.Context, row []any) error {
	if len(row) != len(orders.Columns) {
		return fmt.Errorf("%w: row has %d values, want %d", orders.ErrMalformedInput, len(row), len(orders.Columns))
	}
	if _, err := s.DB.Exec(ctx, insertOrderSQL, row...); err != nil {
		return classify(err, fmt.Sprintf("insert order %v", row[0]))
	}
	return nil
}

// SelectByPrimaryKey returns the column names and values of the order row,
// or found=false when there is none.
func (s *OrderStore) SelectByPrimaryKey(ctx context.Context, orderID int64) ([]string, []any, bool, error) {
	rows, err := s.DB.Query(ctx, selectOrderSQL, orderID)
	if err != nil {
		return nil, nil, false, classify(err, fmt.Sprintf("select order %d", orderID))
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, nil, false, classify(err, fmt.Sprintf("select order %d", orderID))
		}
		return nil, nil, false, nil
	}
	vals, err := rows.Values()
	if err != nil {
		return nil, nil, false, classify(err, fmt.Sprintf("scan order %d", orderID))
	}
	fds := rows.FieldDescriptions()
	cols := make([]string, len(fds))
	for i, fd := range fds {
		cols[i] = fd.Name
	}
	return cols, vals, true, nil
}

func (s *OrderStore) Ping(ctx context.Context) error {
	if err := s.DB.Ping(ctx); err != nil {
		return fmt.Errorf("%w: postgres ping: %v", orders.ErrBackendUnavailable, err)
	}
	return nil
}

// Migrate creates the orders table when missing.
func (s *OrderStore) Migrate(ctx context.Context) error {
	_, err := s.DB.Exec(ctx, schema)
	return err
}

const uniqueViolation = "23505"

// classify maps driver errors onto the orders error set. Errors reported by
// the server keep their own identity; anything else is treated as transport.
func classify(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s: %s", orders.ErrAlreadyExists, op, pgErr.Message)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %v", orders.ErrBackendUnavailable, op, err)
}
