package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/club-lineup/internal/domain/club"
	"github.com/riskibarqy/club-lineup/internal/platform/logging"
	"github.com/riskibarqy/club-lineup/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	lineupService        *usecase.LineupService
	rosterService        *usecase.RosterService
	participationService *usecase.ParticipationService
	matchEventService    *usecase.MatchEventService
	logger               *logging.Logger
	validator            *validator.Validate
}

func NewHandler(
	lineupService *usecase.LineupService,
	rosterService *usecase.RosterService,
	participationService *usecase.ParticipationService,
	matchEventService *usecase.MatchEventService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		lineupService:        lineupService,
		rosterService:        rosterService,
		participationService: participationService,
		matchEventService:    matchEventService,
		logger:               logger,
		validator:            validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// bindJSON decodes a strict JSON body into req and validates it. Unknown
// fields and trailing data are rejected.
func (h *Handler) bindJSON(ctx context.Context, r *http.Request, req any) error {
	decoder := jsoniter.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(req); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	if decoder.More() {
		return fmt.Errorf("%w: invalid JSON payload: unexpected data after body", usecase.ErrInvalidInput)
	}
	if err := h.validator.StructCtx(ctx, req); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// scopeFromQuery builds a roster scope from the age_group and division
// query parameters. clubName comes from the path when the route has one.
func scopeFromQuery(r *http.Request, clubName string) club.Scope {
	query := r.URL.Query()
	if strings.TrimSpace(clubName) == "" {
		clubName = query.Get("club_name")
	}
	return club.Scope{
		ClubName: clubName,
		AgeGroup: query.Get("age_group"),
		Division: query.Get("division"),
	}.Normalize()
}

func splitQueryCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if value := strings.TrimSpace(part); value != "" {
			out = append(out, value)
		}
	}
	return out
}
