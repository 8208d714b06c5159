package schema

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/valyala/bytebufferpool"
	"github.com/wiedikon/volleyapi/internal/warehouse"
)

// Record is one normalized output row. Within one response every record
// carries the same key set; fields missing from the source are null, they
// never disappear.
type Record map[string]any

const displayTimeLayout = "02/01/2006, 15:04"

// Normalizer applies a ColumnPlan to raw warehouse rows. Row order is
// whatever the query's ORDER BY produced; only repeated elements get ordered
// here, by the plan's OrderKey, because SQL cannot order inside a stored
// array.
type Normalizer struct {
	dialect Dialect
	loc     *time.Location
}

func NewNormalizer(dialect Dialect) (*Normalizer, error) {
	loc, err := time.LoadLocation("Europe/Zurich")
	if err != nil {
		return nil, fmt.Errorf("load display time zone: %w", err)
	}
	return &Normalizer{dialect: dialect, loc: loc}, nil
}

func (n *Normalizer) Normalize(rows []warehouse.Row, plan ColumnPlan) []Record {
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		base := n.applyRenames(Record{}, map[string]any(row), plan.Renames)
		if plan.Summary != nil {
			base[plan.Summary.Output(n.dialect)] = n.summarize(row, *plan.Summary)
		}

		if plan.Repeated == nil {
			out = append(out, base)
			continue
		}

		elements := elementsOf(row[plan.Repeated.Column])
		if key := plan.Repeated.OrderKey; key != "" {
			sort.SliceStable(elements, func(i, j int) bool {
				return lessValue(elements[i][key], elements[j][key])
			})
		}
		for _, element := range elements {
			if plan.Repeated.MatchKey != "" &&
				!sameID(element[plan.Repeated.MatchKey], plan.Repeated.MatchValue) {
				continue
			}
			rec := make(Record, len(base)+len(plan.Repeated.Renames))
			for k, v := range base {
				rec[k] = v
			}
			out = append(out, n.applyRenames(rec, element, plan.Repeated.Renames))
		}
	}

	return out
}

func (n *Normalizer) applyRenames(rec Record, source map[string]any, renames []Rename) Record {
	for _, rename := range renames {
		output := rename.Output(n.dialect)
		if output == "" {
			continue
		}
		value := source[rename.Source]
		if rename.Timestamp {
			value = n.formatInstant(value)
		}
		rec[output] = value
	}
	return rec
}

// formatInstant renders a timestamp per dialect: machine-consumable RFC3339
// in UTC, or the locale display form in the fixed league time zone. Unparsed
// values pass through untouched.
func (n *Normalizer) formatInstant(value any) any {
	switch v := value.(type) {
	case time.Time:
		return n.renderTime(v)
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return n.renderTime(t)
		}
		return v
	default:
		return value
	}
}

func (n *Normalizer) renderTime(t time.Time) string {
	if n.dialect == DialectDisplayCaption {
		return t.In(n.loc).Format(displayTimeLayout)
	}
	return t.UTC().Format(time.RFC3339)
}

// summarize builds the "H-A | H-A | ..." per-set summary, or passes a
// precomputed one through. A set with no score on either side is skipped; a
// missing single side renders as an empty string.
func (n *Normalizer) summarize(row warehouse.Row, plan SummaryPlan) any {
	if plan.Column != "" {
		return row[plan.Column]
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	written := 0
	appendSet := func(home, away any) {
		h := scoreText(home)
		a := scoreText(away)
		if h == "" && a == "" {
			return
		}
		if written > 0 {
			_, _ = buf.WriteString(" | ")
		}
		_, _ = buf.WriteString(h)
		_, _ = buf.WriteString("-")
		_, _ = buf.WriteString(a)
		written++
	}

	if plan.SetsColumn != "" {
		for _, set := range elementsOf(row[plan.SetsColumn]) {
			appendSet(set[plan.HomeKey], set[plan.AwayKey])
		}
	} else {
		for i := range plan.HomeColumns {
			appendSet(row[plan.HomeColumns[i]], row[plan.AwayColumns[i]])
		}
	}

	return buf.String()
}

func elementsOf(value any) []map[string]any {
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if element, ok := item.(map[string]any); ok {
			out = append(out, element)
		}
	}
	return out
}

func scoreText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return fmt.Sprint(v)
	}
}

// sameID compares identifiers across the numeric types JSON decoding and SQL
// drivers produce (float64 vs int64 for the same id).
func sameID(a, b any) bool {
	av, aok := asInt64(a)
	bv, bok := asInt64(b)
	if aok && bok {
		return av == bv
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// lessValue orders repeated elements by a numeric key, falling back to the
// textual form when a side is not numeric.
func lessValue(a, b any) bool {
	av, aok := asInt64(a)
	bv, bok := asInt64(b)
	if aok && bok {
		return av < bv
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
