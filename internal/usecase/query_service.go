package usecase

import (
	"context"
	"fmt"

	"github.com/wiedikon/volleyapi/internal/platform/logging"
	"github.com/wiedikon/volleyapi/internal/schema"
	"github.com/wiedikon/volleyapi/internal/warehouse"
)

// QueryService answers the two read operations the gateway exposes. Both take
// the caller's team id, resolve it to a scope, run one parameterized
// warehouse query and normalize the rows.
type QueryService struct {
	resolver   *TeamResolver
	adapter    *schema.Adapter
	client     warehouse.Client
	normalizer *schema.Normalizer
	logger     *logging.Logger
}

func NewQueryService(
	resolver *TeamResolver,
	adapter *schema.Adapter,
	client warehouse.Client,
	normalizer *schema.Normalizer,
	logger *logging.Logger,
) *QueryService {
	return &QueryService{
		resolver:   resolver,
		adapter:    adapter,
		client:     client,
		normalizer: normalizer,
		logger:     logger,
	}
}

func (s *QueryService) TeamRankings(ctx context.Context, teamID int64) ([]schema.Record, error) {
	return s.run(ctx, schema.IntentRankings, "Rankings", teamID)
}

func (s *QueryService) TeamResults(ctx context.Context, teamID int64) ([]schema.Record, error) {
	return s.run(ctx, schema.IntentResults, "Results", teamID)
}

func (s *QueryService) run(ctx context.Context, intent schema.Intent, stage string, teamID int64) ([]schema.Record, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	scope, err := s.resolver.Resolve(ctx, teamID)
	if err != nil {
		return nil, err
	}

	query, args, plan, err := s.adapter.BuildQuery(intent, scope.Scope, scope.Value)
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", intent, err)
	}

	rows, err := s.client.Query(ctx, query, args...)
	if err != nil {
		return nil, &UpstreamError{Stage: stage, Err: err}
	}

	records := s.normalizer.Normalize(rows, plan)
	s.logger.DebugContext(ctx, "warehouse query served",
		"intent", intent.String(),
		"scope", scope.Scope.String(),
		"rows", len(rows),
		"records", len(records),
	)

	return records, nil
}
