package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/wiedikon/volleyapi/internal/platform/logging"
	"github.com/wiedikon/volleyapi/internal/schema"
)

const usageText = "Use /rankings?team_id=<id> or /results?team_id=<id>"

// QueryService is the read surface the handlers need.
type QueryService interface {
	TeamRankings(ctx context.Context, teamID int64) ([]schema.Record, error)
	TeamResults(ctx context.Context, teamID int64) ([]schema.Record, error)
}

type Handler struct {
	queries   QueryService
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(queries QueryService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		queries:   queries,
		logger:    logger,
		validator: validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Usage(w http.ResponseWriter, r *http.Request) {
	_, span := startSpan(r.Context(), "httpapi.Handler.Usage")
	defer span.End()

	writeText(w, http.StatusOK, usageText)
}

func (h *Handler) Rankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Rankings")
	defer span.End()

	teamID, ok := h.teamIDFromQuery(ctx, w, r)
	if !ok {
		return
	}

	records, err := h.queries.TeamRankings(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "rankings request failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeRecords(ctx, w, records)
}

func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Results")
	defer span.End()

	teamID, ok := h.teamIDFromQuery(ctx, w, r)
	if !ok {
		return
	}

	records, err := h.queries.TeamResults(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "results request failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeRecords(ctx, w, records)
}

// teamIDFromQuery parses and validates the team_id query parameter. Missing,
// non-numeric and non-positive values are all the same caller mistake and get
// the same 400 body; the warehouse is never consulted for them.
func (h *Handler) teamIDFromQuery(ctx context.Context, w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("team_id"))
	if raw == "" {
		writeText(w, http.StatusBadRequest, msgTeamIDRequired)
		return 0, false
	}

	teamID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeText(w, http.StatusBadRequest, msgTeamIDRequired)
		return 0, false
	}

	if err := h.validator.StructCtx(ctx, teamQueryRequest{TeamID: teamID}); err != nil {
		writeText(w, http.StatusBadRequest, msgTeamIDRequired)
		return 0, false
	}

	return teamID, true
}

type teamQueryRequest struct {
	TeamID int64 `validate:"gt=0"`
}
