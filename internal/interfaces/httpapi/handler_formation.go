package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListFormations(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ListFormations")
	defer span.End()

	formations := h.lineupService.Formations()
	items := make([]formationDTO, 0, len(formations))
	for _, f := range formations {
		items = append(items, formationToDTO(f, false))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetFormation(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "GetFormation")
	defer span.End()

	formationID := strings.TrimSpace(r.PathValue("formationID"))
	f, err := h.lineupService.Formation(formationID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, formationToDTO(f, true))
}
