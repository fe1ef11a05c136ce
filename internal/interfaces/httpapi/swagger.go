package httpapi

import (
	"embed"
	"net/http"
)

//go:embed openapi.yaml swagger.html
var docs embed.FS

func (h *Handler) OpenAPI(w http.ResponseWriter, r *http.Request) {
	h.serveDoc(w, r, "OpenAPI", "openapi.yaml", "application/yaml; charset=utf-8")
}

func (h *Handler) SwaggerUI(w http.ResponseWriter, r *http.Request) {
	h.serveDoc(w, r, "SwaggerUI", "swagger.html", "text/html; charset=utf-8")
}

func (h *Handler) serveDoc(w http.ResponseWriter, r *http.Request, op, name, contentType string) {
	ctx, span := handlerSpan(r, op)
	defer span.End()

	body, err := docs.ReadFile(name)
	if err != nil {
		writeInternalError(ctx, w)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=300")
	if _, err := w.Write(body); err != nil {
		h.logger.WarnContext(ctx, "write api docs failed", "doc", name, "error", err)
	}
}
