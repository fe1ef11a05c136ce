package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/club-lineup/internal/domain/matchevent"
	"github.com/riskibarqy/club-lineup/internal/usecase"
)

func (h *Handler) ListMatchEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ListMatchEvents")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	ledger, err := h.matchEventService.ListEvents(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match events failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ledgerToDTO(ledger))
}

// RecordMatchEvent answers 201 for a new event and 200 when the event was
// already in the ledger.
func (h *Handler) RecordMatchEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "RecordMatchEvent")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req recordMatchEventRequest
	if err := h.bindJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.matchEventService.RecordEvent(ctx, matchID, matchevent.Event{
		Type:          matchevent.Type(req.Type),
		PlayerEmail:   req.PlayerEmail,
		Minute:        req.Minute,
		SubbedInEmail: req.SubbedInEmail,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record match event failed", "match_id", matchID, "event_type", req.Type, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusCreated
	if result.Duplicate {
		status = http.StatusOK
	}
	writeSuccess(ctx, w, status, recordMatchEventResponse{
		MatchID:   result.MatchID,
		Event:     matchEventToDTO(result.Event),
		Duplicate: result.Duplicate,
		Version:   result.Version,
	})
}

func (h *Handler) RecordMatchEventsBulk(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "RecordMatchEventsBulk")
	defer span.End()

	var req bulkMatchEventsRequest
	if err := h.bindJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inputs := make([]usecase.BulkEventInput, 0, len(req.Events))
	for _, record := range req.Events {
		inputs = append(inputs, usecase.BulkEventInput{
			MatchID: record.MatchID,
			Event: matchevent.Event{
				Type:          matchevent.Type(record.Type),
				PlayerEmail:   record.PlayerEmail,
				Minute:        record.Minute,
				SubbedInEmail: record.SubbedInEmail,
			},
		})
	}

	result, err := h.matchEventService.RecordEvents(ctx, inputs)
	if err != nil {
		h.logger.ErrorContext(ctx, "bulk record match events failed", "event_count", len(inputs), "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if result.FailedCount > 0 {
		status = http.StatusMultiStatus
	}
	writeSuccess(ctx, w, status, result)
}
