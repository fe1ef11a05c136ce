package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/club-lineup/internal/domain/club"
	"github.com/riskibarqy/club-lineup/internal/domain/lineup"
	"github.com/riskibarqy/club-lineup/internal/usecase"
)

// SaveLineup rebuilds an edit session from the payload, saves it and
// credits the starters. A save whose participation updates partly failed
// answers 207 with the per-player report.
func (h *Handler) SaveLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "SaveLineup")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	side, err := lineup.ParseSide(r.PathValue("side"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	var req saveLineupRequest
	if err := h.bindJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.lineupService.BuildSession(usecase.BuildSessionInput{
		FormationID: req.FormationID,
		Assignments: req.Lineup,
		Substitutes: req.Substitutes,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	defer session.Dispose()

	result, err := h.lineupService.Save(ctx, usecase.SaveLineupInput{
		Session: session,
		MatchID: matchID,
		Scope: club.Scope{
			ClubName: req.ClubName,
			AgeGroup: req.AgeGroup,
			Division: req.Division,
		},
		Side: side,
	})
	if err != nil && !errors.Is(err, usecase.ErrPartialFailure) {
		h.logger.WarnContext(ctx, "save lineup failed", "match_id", matchID, "side", side, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if err != nil {
		h.logger.WarnContext(ctx, "lineup saved with failed participation updates", "match_id", matchID, "side", side, "error", err)
		status = http.StatusMultiStatus
	}
	writeSuccess(ctx, w, status, saveLineupResponse{
		Lineup:        lineupToDTO(result.Lineup),
		Participation: participationReportToDTO(result.Participation),
	})
}

func (h *Handler) GetLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "GetLineup")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	side, err := lineup.ParseSide(r.PathValue("side"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	scope := scopeFromQuery(r, "")
	item, err := h.lineupService.Get(ctx, matchID, scope, side)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(item))
}

func (h *Handler) RetryParticipation(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "RetryParticipation")
	defer span.End()

	var req retryParticipationRequest
	if err := h.bindJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	targets := make([]usecase.ParticipationTarget, 0, len(req.Players))
	for _, p := range req.Players {
		targets = append(targets, usecase.ParticipationTarget{PlayerEmail: p.Email, PlayerName: p.Name})
	}

	scope := club.Scope{ClubName: req.ClubName, AgeGroup: req.AgeGroup, Division: req.Division}
	report, err := h.participationService.Retry(ctx, scope, req.IsHomeGame, targets)
	if err != nil && !errors.Is(err, usecase.ErrPartialFailure) {
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if err != nil {
		status = http.StatusMultiStatus
	}
	writeSuccess(ctx, w, status, participationReportToDTO(report))
}
