package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wiedikon/volleyapi/internal/warehouse"
)

func newTestAdapter(t *testing.T, rankings, results Shape) *Adapter {
	t.Helper()
	adapter, err := NewAdapter("api_data", rankings, results)
	require.NoError(t, err)
	return adapter
}

func TestBuildQuery_FlatRankingsByTeam(t *testing.T) {
	adapter := newTestAdapter(t, ShapeFlat, ShapeFlat)

	query, args, plan, err := adapter.BuildQuery(IntentRankings, ScopeTeam, int64(42))
	require.NoError(t, err)

	require.Contains(t, query, "FROM api_data.rankings")
	require.Contains(t, query, "WHERE wiedikon_team_id = $1")
	require.Contains(t, query, "ORDER BY rank")
	require.NotContains(t, query, "42", "filter value must be bound, not interpolated")
	require.Equal(t, []any{int64(42)}, args)
	require.Nil(t, plan.Repeated)
}

func TestBuildQuery_NestedRankingsByGroup(t *testing.T) {
	adapter := newTestAdapter(t, ShapeNested, ShapeFlat)

	query, args, plan, err := adapter.BuildQuery(IntentRankings, ScopeGroup, int64(77))
	require.NoError(t, err)

	require.Contains(t, query, "FROM api_data.rankings_nested")
	require.Contains(t, query, "groupid = $1")
	require.Equal(t, []any{int64(77)}, args)
	require.NotNil(t, plan.Repeated)
	require.Equal(t, "ranking", plan.Repeated.Column)
	require.Empty(t, plan.Repeated.MatchKey, "group scope keeps every peer team")
}

func TestBuildQuery_NestedRankingsByTeamFiltersElements(t *testing.T) {
	adapter := newTestAdapter(t, ShapeNested, ShapeFlat)

	query, args, plan, err := adapter.BuildQuery(IntentRankings, ScopeTeam, int64(42))
	require.NoError(t, err)

	require.Contains(t, query, "ranking @> $1::jsonb")
	require.Equal(t, []any{`[{"teamId":42}]`}, args)
	require.NotNil(t, plan.Repeated)
	require.Equal(t, "teamId", plan.Repeated.MatchKey)
	require.Equal(t, int64(42), plan.Repeated.MatchValue)
}

func TestBuildQuery_FlatResultsByTeamMatchesEitherSide(t *testing.T) {
	adapter := newTestAdapter(t, ShapeFlat, ShapeFlat)

	query, args, plan, err := adapter.BuildQuery(IntentResults, ScopeTeam, int64(7))
	require.NoError(t, err)

	require.Contains(t, query, "FROM api_data.games")
	require.Contains(t, query, "(home_team_id = $1 OR away_team_id = $2)")
	require.Contains(t, query, "ORDER BY playdate, gameid")
	require.Equal(t, []any{int64(7), int64(7)}, args)
	require.NotNil(t, plan.Summary)
	require.Empty(t, plan.Summary.Column, "flat shape derives the summary from set columns")
}

func TestBuildQuery_JoinedResultsPassesSummaryThrough(t *testing.T) {
	adapter := newTestAdapter(t, ShapeFlat, ShapeJoinedView)

	query, _, plan, err := adapter.BuildQuery(IntentResults, ScopeTeam, int64(7))
	require.NoError(t, err)

	require.Contains(t, query, "FROM api_data.games_complete")
	require.NotNil(t, plan.Summary)
	require.Equal(t, "resultsummary", plan.Summary.Column)
}

func TestGroupLookupQuery_Deterministic(t *testing.T) {
	adapter := newTestAdapter(t, ShapeFlat, ShapeFlat)

	query, args, err := adapter.GroupLookupQuery(99)
	require.NoError(t, err)

	require.Equal(t,
		"SELECT groupid FROM api_data.rankings WHERE wiedikon_team_id = $1 ORDER BY groupid LIMIT 1",
		query)
	require.Equal(t, []any{int64(99)}, args)
}

// selectedColumns extracts the select list from a built statement.
func selectedColumns(t *testing.T, query string) []string {
	t.Helper()
	from := strings.Index(query, " FROM ")
	require.Positive(t, from, "statement has no FROM clause: %s", query)
	return strings.Split(strings.TrimPrefix(query[:from], "SELECT "), ", ")
}

// Unquoted identifiers come back from Postgres folded to lowercase. Every
// selected column must already be its folded form and every rename source
// must name a selected column, otherwise MapScan rows and the column plan
// silently miss each other.
func TestBuildQuery_ColumnsMatchFoldedRowKeys(t *testing.T) {
	for _, shape := range []Shape{ShapeFlat, ShapeNested, ShapeJoinedView} {
		adapter := newTestAdapter(t, shape, shape)

		for _, intent := range []Intent{IntentRankings, IntentResults} {
			query, _, plan, err := adapter.BuildQuery(intent, ScopeGroup, int64(31))
			require.NoError(t, err)

			columns := selectedColumns(t, query)
			for _, column := range columns {
				require.Equal(t, strings.ToLower(column), column,
					"intent=%s shape=%s: column %q would fold to a different row key", intent, shape, column)
			}
			for _, rename := range plan.Renames {
				require.Contains(t, columns, rename.Source,
					"intent=%s shape=%s: rename source %q is not selected", intent, shape, rename.Source)
			}
			if plan.Summary != nil && plan.Summary.Column != "" {
				require.Contains(t, columns, plan.Summary.Column)
			}
		}

		lookupColumn := adapter.GroupColumn()
		require.Equal(t, strings.ToLower(lookupColumn), lookupColumn)
	}
}

// Round trip from a built statement into the normalizer: rows keyed exactly by
// the selected column names must fill every snake_case output field.
func TestBuildQuery_RowKeysReachNormalizedOutput(t *testing.T) {
	adapter := newTestAdapter(t, ShapeFlat, ShapeFlat)
	normalizer, err := NewNormalizer(DialectSnakeCase)
	require.NoError(t, err)

	query, _, plan, err := adapter.BuildQuery(IntentRankings, ScopeTeam, int64(42))
	require.NoError(t, err)

	row := warehouse.Row{}
	for i, column := range selectedColumns(t, query) {
		row[column] = int64(i + 1)
	}

	records := normalizer.Normalize([]warehouse.Row{row}, plan)
	require.Len(t, records, 1)
	for _, rename := range plan.Renames {
		require.NotNil(t, records[0][rename.Snake],
			"source %q did not reach output field %q", rename.Source, rename.Snake)
	}
}

func TestBuildQuery_ResultsOrderByDateThenGame(t *testing.T) {
	for _, shape := range []Shape{ShapeFlat, ShapeNested, ShapeJoinedView} {
		adapter := newTestAdapter(t, ShapeFlat, shape)

		query, _, _, err := adapter.BuildQuery(IntentResults, ScopeGroup, int64(31))
		require.NoError(t, err)
		require.Contains(t, query, "ORDER BY playdate, gameid",
			"shape %s must tie-break same-day games by game id", shape)
	}
}

func TestNewAdapter_UnknownShape(t *testing.T) {
	_, err := NewAdapter("api_data", Shape(99), ShapeFlat)
	require.ErrorIs(t, err, ErrShapeNotRegistered)
}

func TestValidate_CoversConfiguredScopes(t *testing.T) {
	adapter := newTestAdapter(t, ShapeNested, ShapeJoinedView)
	require.NoError(t, adapter.Validate(ScopeTeam, ScopeGroup))
}
