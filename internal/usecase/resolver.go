package usecase

import (
	"context"
	"fmt"

	"github.com/wiedikon/volleyapi/internal/schema"
	"github.com/wiedikon/volleyapi/internal/warehouse"
)

// ScopeResult is a resolved query scope: filter by the team itself, or by the
// group the team currently plays in.
type ScopeResult struct {
	Scope schema.Scope
	Value any
}

// TeamResolver maps a caller-supplied team id onto the scope the warehouse
// queries filter by. Direct mode is a pass-through; indirect mode looks the
// team's group up first so responses cover the whole group.
type TeamResolver struct {
	mode    schema.ResolutionMode
	adapter *schema.Adapter
	client  warehouse.Client
}

func NewTeamResolver(mode schema.ResolutionMode, adapter *schema.Adapter, client warehouse.Client) *TeamResolver {
	return &TeamResolver{
		mode:    mode,
		adapter: adapter,
		client:  client,
	}
}

func (r *TeamResolver) Resolve(ctx context.Context, teamID int64) (ScopeResult, error) {
	if r.mode == schema.ResolutionDirect {
		return ScopeResult{Scope: schema.ScopeTeam, Value: teamID}, nil
	}

	query, args, err := r.adapter.GroupLookupQuery(teamID)
	if err != nil {
		return ScopeResult{}, fmt.Errorf("build group lookup: %w", err)
	}

	rows, err := r.client.Query(ctx, query, args...)
	if err != nil {
		return ScopeResult{}, &UpstreamError{Stage: "Group lookup", Err: err}
	}
	if len(rows) == 0 {
		return ScopeResult{}, fmt.Errorf("%w: no such team in rankings", ErrNotFound)
	}

	groupID, ok := rows[0][r.adapter.GroupColumn()]
	if !ok || groupID == nil {
		return ScopeResult{}, fmt.Errorf("%w: no such team in rankings", ErrNotFound)
	}

	return ScopeResult{Scope: schema.ScopeGroup, Value: groupID}, nil
}
