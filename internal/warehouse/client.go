// Package warehouse executes parameterized analytical queries and returns
// rows as loosely typed column maps, so callers can work against the several
// table shapes the warehouse has accumulated over time.
package warehouse

import "context"

// Row maps a column name to its value. Scalar columns arrive as Go scalars
// (int64, float64, string, bool, time.Time); nested and repeated columns
// arrive decoded from JSON as map[string]any / []any.
type Row map[string]any

// Client runs one query to completion and returns the ordered result set.
type Client interface {
	Query(ctx context.Context, query string, args ...any) ([]Row, error)
}
