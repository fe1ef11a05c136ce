package httpapi

import "net/http"

func (h *Handler) ListRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ListRoster")
	defer span.End()

	scope := scopeFromQuery(r, r.PathValue("clubName"))
	players, err := h.rosterService.List(ctx, scope)
	if err != nil {
		h.logger.WarnContext(ctx, "list roster failed", "scope", scope.Key(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(players))
}

// ListAvailablePlayers returns roster players not in the assigned query
// parameter, a comma separated list of emails.
func (h *Handler) ListAvailablePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ListAvailablePlayers")
	defer span.End()

	scope := scopeFromQuery(r, r.PathValue("clubName"))
	assigned := splitQueryCSV(r.URL.Query().Get("assigned"))
	players, err := h.rosterService.Available(ctx, scope, assigned)
	if err != nil {
		h.logger.WarnContext(ctx, "list available players failed", "scope", scope.Key(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(players))
}
