package schema

// Rename maps one source column onto its output field name in each dialect.
// An empty name means the column is not exposed in that dialect; the display
// dialect historically showed a curated subset of the snake_case contract.
type Rename struct {
	Source    string
	Snake     string
	Caption   string
	Timestamp bool
}

func (r Rename) Output(d Dialect) string {
	if d == DialectDisplayCaption {
		return r.Caption
	}
	return r.Snake
}

// RepeatedPlan flattens a repeated record column: each element of the column
// becomes one output record carrying the outer row's scalar fields. When
// MatchKey is set only elements whose MatchKey equals MatchValue survive,
// which is how a team-scoped query filters inside a group row. OrderKey, when
// set, emits elements in ascending order of that key; the stored array order
// carries no contract, the key does.
type RepeatedPlan struct {
	Column     string
	Renames    []Rename
	MatchKey   string
	MatchValue any
	OrderKey   string
}

// SummaryPlan produces the textual match-result field. Exactly one source is
// set: Column passes a precomputed summary through, HomeColumns/AwayColumns
// derive it from flat per-set score columns, SetsColumn derives it from a
// repeated per-set record column.
type SummaryPlan struct {
	Snake   string
	Caption string

	Column      string
	HomeColumns []string
	AwayColumns []string
	SetsColumn  string
	HomeKey     string
	AwayKey     string
}

func (s SummaryPlan) Output(d Dialect) string {
	if d == DialectDisplayCaption {
		return s.Caption
	}
	return s.Snake
}

// ColumnPlan is the full rename/flatten/derive recipe the adapter hands to
// the normalizer alongside the query it built.
type ColumnPlan struct {
	Renames  []Rename
	Repeated *RepeatedPlan
	Summary  *SummaryPlan
}
