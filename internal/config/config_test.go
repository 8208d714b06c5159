package config

import (
	"testing"
	"time"

	"github.com/wiedikon/volleyapi/internal/schema"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServiceName != "volley-query-api" {
		t.Fatalf("unexpected service name %q", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr %q", cfg.HTTPAddr)
	}
	if cfg.WarehouseDataset != "api_data" {
		t.Fatalf("unexpected dataset %q", cfg.WarehouseDataset)
	}
	if cfg.RankingsShape != schema.ShapeFlat || cfg.ResultsShape != schema.ShapeFlat {
		t.Fatalf("unexpected shapes %v/%v", cfg.RankingsShape, cfg.ResultsShape)
	}
	if cfg.ResolutionMode != schema.ResolutionDirect {
		t.Fatalf("unexpected resolution mode %v", cfg.ResolutionMode)
	}
	if cfg.FieldDialect != schema.DialectSnakeCase {
		t.Fatalf("unexpected dialect %v", cfg.FieldDialect)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORS origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.ReadTimeout != 10*time.Second || cfg.WriteTimeout != 15*time.Second {
		t.Fatalf("unexpected timeouts %v/%v", cfg.ReadTimeout, cfg.WriteTimeout)
	}
}

func TestLoad_BackendShapeAppliesToBothIntents(t *testing.T) {
	t.Setenv("BACKEND_SHAPE", "nested")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RankingsShape != schema.ShapeNested || cfg.ResultsShape != schema.ShapeNested {
		t.Fatalf("unexpected shapes %v/%v", cfg.RankingsShape, cfg.ResultsShape)
	}
}

func TestLoad_PerIntentShapeOverride(t *testing.T) {
	t.Setenv("BACKEND_SHAPE", "flat")
	t.Setenv("RESULTS_SHAPE", "joined_view")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RankingsShape != schema.ShapeFlat {
		t.Fatalf("unexpected rankings shape %v", cfg.RankingsShape)
	}
	if cfg.ResultsShape != schema.ShapeJoinedView {
		t.Fatalf("unexpected results shape %v", cfg.ResultsShape)
	}
}

func TestLoad_InvalidShape(t *testing.T) {
	t.Setenv("BACKEND_SHAPE", "pivoted")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown backend shape")
	}
}

func TestLoad_InvalidResolutionMode(t *testing.T) {
	t.Setenv("RESOLUTION_MODE", "sideways")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown resolution mode")
	}
}

func TestLoad_IndirectModeWithDisplayDialect(t *testing.T) {
	t.Setenv("RESOLUTION_MODE", "indirect")
	t.Setenv("FIELD_DIALECT", "display_caption")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ResolutionMode != schema.ResolutionIndirect {
		t.Fatalf("unexpected resolution mode %v", cfg.ResolutionMode)
	}
	if cfg.FieldDialect != schema.DialectDisplayCaption {
		t.Fatalf("unexpected dialect %v", cfg.FieldDialect)
	}
}

func TestLoad_UptraceRequiresDSN(t *testing.T) {
	t.Setenv("UPTRACE_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when UPTRACE_ENABLED is set without a DSN")
	}
}
