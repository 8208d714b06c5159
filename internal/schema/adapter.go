package schema

import (
	"errors"
	"fmt"

	sonic "github.com/bytedance/sonic"
	qb "github.com/wiedikon/volleyapi/internal/platform/querybuilder"
)

// ErrShapeNotRegistered marks an intent/scope combination without a backing
// shape spec. It is a deployment fault: request data can never trigger it.
var ErrShapeNotRegistered = errors.New("no backend shape registered")

type shapeSpec struct {
	shape             Shape
	table             string
	columns           []string
	orderBy           []string
	scopeConds        map[Scope]func(value any) (qb.Condition, error)
	makePlan          func(scope Scope, value any) ColumnPlan
	lookupGroupColumn string
	lookupCond        func(teamID int64) (qb.Condition, error)
}

// Adapter turns a logical query intent plus a resolved scope into the exact
// parameterized statement and column plan for the configured backend shape.
type Adapter struct {
	dataset string
	specs   map[Intent]shapeSpec
}

// NewAdapter registers one shape spec per intent. Table identifiers are
// qualified with dataset; they are configuration, never request input.
func NewAdapter(dataset string, rankingsShape, resultsShape Shape) (*Adapter, error) {
	rankings, err := rankingsSpec(rankingsShape)
	if err != nil {
		return nil, err
	}
	results, err := resultsSpec(resultsShape)
	if err != nil {
		return nil, err
	}

	return &Adapter{
		dataset: dataset,
		specs: map[Intent]shapeSpec{
			IntentRankings: rankings,
			IntentResults:  results,
		},
	}, nil
}

// Validate fails fast when any intent lacks a registered condition for one of
// the scopes the deployment will actually use.
func (a *Adapter) Validate(scopes ...Scope) error {
	for intent, spec := range a.specs {
		for _, scope := range scopes {
			if _, ok := spec.scopeConds[scope]; !ok {
				return fmt.Errorf("%w for intent=%s scope=%s shape=%s",
					ErrShapeNotRegistered, intent, scope, spec.shape)
			}
		}
	}
	return nil
}

// BuildQuery produces the statement text, its bound parameters and the column
// plan to apply to the result rows. Filter values are always bound, never
// interpolated.
func (a *Adapter) BuildQuery(intent Intent, scope Scope, value any) (string, []any, ColumnPlan, error) {
	spec, ok := a.specs[intent]
	if !ok {
		return "", nil, ColumnPlan{}, fmt.Errorf("%w for intent=%s", ErrShapeNotRegistered, intent)
	}
	condFor, ok := spec.scopeConds[scope]
	if !ok {
		return "", nil, ColumnPlan{}, fmt.Errorf("%w for intent=%s scope=%s shape=%s",
			ErrShapeNotRegistered, intent, scope, spec.shape)
	}
	cond, err := condFor(value)
	if err != nil {
		return "", nil, ColumnPlan{}, err
	}

	query, args, err := qb.Select(spec.columns...).
		From(a.qualify(spec.table)).
		Where(cond).
		OrderBy(spec.orderBy...).
		ToSQL()
	if err != nil {
		return "", nil, ColumnPlan{}, fmt.Errorf("build %s query: %w", intent, err)
	}

	return query, args, spec.makePlan(scope, value), nil
}

// GroupLookupQuery builds the indirect-resolution query: the group id of the
// given team, lowest group id first so duplicate memberships resolve
// deterministically.
func (a *Adapter) GroupLookupQuery(teamID int64) (string, []any, error) {
	spec := a.specs[IntentRankings]
	cond, err := spec.lookupCond(teamID)
	if err != nil {
		return "", nil, err
	}

	query, args, err := qb.Select(spec.lookupGroupColumn).
		From(a.qualify(spec.table)).
		Where(cond).
		OrderBy(spec.lookupGroupColumn).
		Limit(1).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build group lookup query: %w", err)
	}

	return query, args, nil
}

// GroupColumn names the column GroupLookupQuery selects; the caller reads the
// resolved group id out of the result row under this key.
func (a *Adapter) GroupColumn() string {
	return a.specs[IntentRankings].lookupGroupColumn
}

func (a *Adapter) qualify(table string) string {
	if a.dataset == "" {
		return table
	}
	return a.dataset + "." + table
}

// nestedTeamMatch renders the jsonb containment document that finds a group
// row whose repeated ranking holds the given team.
func nestedTeamMatch(column string, teamID any) (qb.Condition, error) {
	doc, err := sonic.Marshal([]map[string]any{{"teamId": teamID}})
	if err != nil {
		return nil, fmt.Errorf("encode nested team match: %w", err)
	}
	return qb.Expr(column+" @> ?::jsonb", string(doc)), nil
}
