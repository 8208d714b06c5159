package app

import (
	"fmt"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"github.com/wiedikon/volleyapi/internal/config"
	"github.com/wiedikon/volleyapi/internal/interfaces/httpapi"
	"github.com/wiedikon/volleyapi/internal/platform/logging"
	"github.com/wiedikon/volleyapi/internal/schema"
	"github.com/wiedikon/volleyapi/internal/usecase"
	"github.com/wiedikon/volleyapi/internal/warehouse"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	db, err := otelsqlx.Connect("postgres",
		warehouseDSN(cfg.DBURL, cfg.ServiceName),
		otelsql.WithDBName(warehouseNameFromDSN(cfg.DBURL)),
		otelsql.WithQueryFormatter(traceQueryText),
	)
	if err != nil {
		return nil, fmt.Errorf("connect warehouse: %w", err)
	}

	adapter, err := schema.NewAdapter(cfg.WarehouseDataset, cfg.RankingsShape, cfg.ResultsShape)
	if err != nil {
		return nil, fmt.Errorf("build schema adapter: %w", err)
	}
	// Misconfigured shape/mode combinations must surface at startup, not on
	// the first request.
	if err := adapter.Validate(cfg.ResolutionMode.Scope()); err != nil {
		return nil, fmt.Errorf("validate schema adapter: %w", err)
	}

	normalizer, err := schema.NewNormalizer(cfg.FieldDialect)
	if err != nil {
		return nil, fmt.Errorf("build normalizer: %w", err)
	}

	client := warehouse.NewSQLClient(db)
	resolver := usecase.NewTeamResolver(cfg.ResolutionMode, adapter, client)
	queries := usecase.NewQueryService(resolver, adapter, client, normalizer, logger)

	handler := httpapi.NewHandler(queries, logger)
	router := httpapi.NewRouter(handler, logger, cfg.ServiceName, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
