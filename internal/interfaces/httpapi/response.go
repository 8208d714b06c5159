package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/wiedikon/volleyapi/internal/schema"
	"github.com/wiedikon/volleyapi/internal/usecase"
)

const (
	msgTeamIDRequired = "team_id is required"
	msgTeamNotFound   = "no such team in rankings"
	msgInternalError  = "internal server error"
)

// recordJSON sorts object keys so the same records always encode to the same
// bytes, whatever map iteration order produced.
var recordJSON = sonic.Config{SortMapKeys: true}.Froze()

func writeRecords(ctx context.Context, w http.ResponseWriter, records []schema.Record) {
	ctx, span := startSpan(ctx, "httpapi.writeRecords")
	defer span.End()

	if records == nil {
		records = []schema.Record{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = recordJSON.NewEncoder(w).Encode(records)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

// writeError renders the gateway's plain-text error contract. Bodies are
// stable literals that downstream pages key on, so they never carry wrapped
// error chains except for upstream failures.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	status, body := mapError(ctx, err)
	writeText(w, status, body)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func mapError(ctx context.Context, err error) (int, string) {
	ctx, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	var upstream *usecase.UpstreamError
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return http.StatusBadRequest, msgTeamIDRequired
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound, msgTeamNotFound
	case errors.As(err, &upstream):
		return http.StatusInternalServerError, upstream.Error()
	case errors.Is(err, schema.ErrShapeNotRegistered):
		return http.StatusInternalServerError, msgInternalError
	default:
		return http.StatusInternalServerError, msgInternalError
	}
}
