// Package sql provides sequence adapters over database/sql. Queries run
// lazily: nothing touches the database until the first element is pulled,
// and rows are scanned one at a time as the consumer asks for them.
//
// A cursor is closed when the sequence is exhausted or fails. A traversal
// abandoned early (Limit, FindFirst, AnyMatch...) leaves it open until the
// context passed with WithContext is cancelled, which makes database/sql
// close it.
package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lguimbarda/min-seq/seq/core"
)

// Scanner is a function that scans the current row into a value.
type Scanner[T any] func(*sql.Rows) (T, error)

// Querier runs queries. *sql.DB, *sql.Tx and *sql.Conn implement it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Execer runs statements. *sql.DB, *sql.Tx and *sql.Conn implement it.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Statement is a query with its arguments.
type Statement struct {
	Query string
	Args  []any
}

type config struct {
	ctx    context.Context
	logger zerolog.Logger
}

func newConfig(opts []Option) config {
	c := config{ctx: context.Background(), logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Option configures the adapters.
type Option func(*config)

// WithContext sets the context queries and statements run under.
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// WithLogger sets the logger for query execution (debug) and cursor close
// failures (warn). The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// FromRows creates a Sequence over an open cursor. Each pull advances the
// cursor and scans one row. The cursor is closed once it is exhausted or a
// scan fails; closing it again from the caller is harmless.
func FromRows[T any](rows *sql.Rows, scanner Scanner[T], opts ...Option) core.Sequence[T] {
	cfg := newConfig(opts)
	return core.New[T](core.Fuse(rowsAdvancer(rows, scanner, cfg)))
}

func rowsAdvancer[T any](rows *sql.Rows, scanner Scanner[T], cfg config) core.Advancer[T] {
	finish := func(err error) error {
		if closeErr := rows.Close(); closeErr != nil {
			cfg.logger.Warn().Err(closeErr).Msg("closing rows")
			if err == nil {
				err = closeErr
			}
		}
		return err
	}
	return func() (T, bool, error) {
		var zero T
		if !rows.Next() {
			return zero, false, finish(rows.Err())
		}
		value, err := scanner(rows)
		if err != nil {
			return zero, false, finish(err)
		}
		return value, true, nil
	}
}

// Query creates a Sequence of the rows a query returns, scanned by scanner.
func Query[T any](q Querier, query string, scanner Scanner[T], args ...any) core.Sequence[T] {
	return QueryStatement(q, Statement{Query: query, Args: args}, scanner)
}

// QueryStatement is Query with options. The query runs on the first pull;
// a failing query fails the sequence.
func QueryStatement[T any](q Querier, stmt Statement, scanner Scanner[T], opts ...Option) core.Sequence[T] {
	cfg := newConfig(opts)
	var advance core.Advancer[T]
	return core.New[T](core.Fuse(func() (T, bool, error) {
		if advance == nil {
			cfg.logger.Debug().Str("query", stmt.Query).Int("args", len(stmt.Args)).Msg("executing query")
			rows, err := q.QueryContext(cfg.ctx, stmt.Query, stmt.Args...)
			if err != nil {
				var zero T
				return zero, false, err
			}
			advance = rowsAdvancer(rows, scanner, cfg)
		}
		return advance()
	}))
}

// QueryRow creates a Sequence of the single row a query returns. No rows
// fails with sql.ErrNoRows, as Row.Scan reports it.
func QueryRow[T any](q Querier, query string, scanner func(*sql.Row) (T, error), args ...any) core.Sequence[T] {
	return lazyOne(func() (T, error) {
		return scanner(q.QueryRowContext(context.Background(), query, args...))
	})
}

// ExecResult contains the result of an exec operation.
type ExecResult struct {
	LastInsertId int64
	RowsAffected int64
}

func execResult(result sql.Result) ExecResult {
	lastID, _ := result.LastInsertId()
	rowsAffected, _ := result.RowsAffected()
	return ExecResult{LastInsertId: lastID, RowsAffected: rowsAffected}
}

// Exec creates a Sequence that runs a statement when pulled and yields its
// result.
func Exec(e Execer, query string, args ...any) core.Sequence[ExecResult] {
	return ExecStatement(e, Statement{Query: query, Args: args})
}

// ExecStatement is Exec with options. The statement runs under the
// configured context on the first pull.
func ExecStatement(e Execer, stmt Statement, opts ...Option) core.Sequence[ExecResult] {
	cfg := newConfig(opts)
	return lazyOne(func() (ExecResult, error) {
		cfg.logger.Debug().Str("query", stmt.Query).Int("args", len(stmt.Args)).Msg("executing statement")
		result, err := e.ExecContext(cfg.ctx, stmt.Query, stmt.Args...)
		if err != nil {
			return ExecResult{}, err
		}
		return execResult(result), nil
	})
}

// ExecMany creates a Stage that runs a statement for each element. The
// binder converts an element to statement arguments. The first failing
// statement fails the sequence.
func ExecMany[T any](e Execer, query string, binder func(T) []any, opts ...Option) core.Stage[T, ExecResult] {
	cfg := newConfig(opts)
	return func(s core.Sequence[T]) core.Sequence[ExecResult] {
		return core.Map(s, func(v T) (ExecResult, error) {
			result, err := e.ExecContext(cfg.ctx, query, binder(v)...)
			if err != nil {
				return ExecResult{}, err
			}
			return execResult(result), nil
		})
	}
}

// Transaction creates a Sequence that runs fn within a transaction when
// pulled. If fn fails the transaction is rolled back, otherwise committed.
func Transaction[T any](db *sql.DB, fn func(tx *sql.Tx) (T, error), opts ...Option) core.Sequence[T] {
	cfg := newConfig(opts)
	return lazyOne(func() (T, error) {
		var zero T
		tx, err := db.BeginTx(cfg.ctx, nil)
		if err != nil {
			return zero, err
		}
		value, err := fn(tx)
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				cfg.logger.Warn().Err(rbErr).Msg("rolling back transaction")
			}
			return zero, err
		}
		if err := tx.Commit(); err != nil {
			return zero, err
		}
		return value, nil
	})
}

// lazyOne yields the single value fn produces, calling it on first pull.
func lazyOne[T any](fn func() (T, error)) core.Sequence[T] {
	called := false
	return core.New[T](core.Fuse(func() (T, bool, error) {
		var zero T
		if called {
			return zero, false, nil
		}
		called = true
		value, err := fn()
		if err != nil {
			return zero, false, err
		}
		return value, true, nil
	}))
}

// QueryStrings is a convenience function that queries for string slices.
// Each row is scanned into a slice of strings; NULL becomes "".
func QueryStrings(q Querier, query string, args ...any) core.Sequence[[]string] {
	return Query(q, query, ScanStrings, args...)
}

// QueryMaps is a convenience function that queries for map results.
// Each row is scanned into a map with column names as keys.
func QueryMaps(q Querier, query string, args ...any) core.Sequence[map[string]any] {
	return Query(q, query, ScanMap, args...)
}

// ScanStrings scans the current row into strings.
func ScanStrings(rows *sql.Rows) ([]string, error) {
	values, _, err := scanAny(rows)
	if err != nil {
		return nil, err
	}
	result := make([]string, len(values))
	for i, v := range values {
		switch val := v.(type) {
		case nil:
			result[i] = ""
		case []byte:
			result[i] = string(val)
		case string:
			result[i] = val
		case int64:
			result[i] = fmt.Sprintf("%d", val)
		case float64:
			result[i] = fmt.Sprintf("%g", val)
		case bool:
			result[i] = fmt.Sprintf("%t", val)
		default:
			result[i] = fmt.Sprintf("%v", val)
		}
	}
	return result, nil
}

// ScanMap scans the current row into a map keyed by column name.
func ScanMap(rows *sql.Rows) (map[string]any, error) {
	values, cols, err := scanAny(rows)
	if err != nil {
		return nil, err
	}
	result := make(map[string]any, len(cols))
	for i, col := range cols {
		result[col] = values[i]
	}
	return result, nil
}

func scanAny(rows *sql.Rows) ([]any, []string, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, nil, err
	}
	return values, cols, nil
}
