package warehouse

import (
	"context"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
)

// SQLClient executes queries against the analytical database through an
// instrumented sqlx handle.
type SQLClient struct {
	db *sqlx.DB
}

func NewSQLClient(db *sqlx.DB) *SQLClient {
	return &SQLClient{db: db}
}

func (c *SQLClient) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := c.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, crerr.Wrap(err, "execute warehouse query")
	}
	defer func() {
		_ = rows.Close()
	}()

	out := make([]Row, 0, 16)
	for rows.Next() {
		raw := map[string]any{}
		if err := rows.MapScan(raw); err != nil {
			return nil, crerr.Wrap(err, "scan warehouse row")
		}
		row := make(Row, len(raw))
		for column, value := range raw {
			row[column] = decodeValue(value)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, crerr.Wrap(err, "iterate warehouse rows")
	}

	return out, nil
}

// decodeValue unwraps driver []byte values. JSON payloads (repeated and
// nested record columns stored as jsonb) become []any / map[string]any;
// anything else is kept as its text form.
func decodeValue(value any) any {
	raw, ok := value.([]byte)
	if !ok {
		return value
	}
	if len(raw) == 0 {
		return ""
	}
	if raw[0] == '[' || raw[0] == '{' {
		var decoded any
		if err := sonic.Unmarshal(raw, &decoded); err == nil {
			return decoded
		}
	}
	return string(raw)
}
