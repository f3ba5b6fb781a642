package httpapi

import (
	"io"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/wastecms/internal/server/storage"
	"github.com/go-chi/chi/v5"
)

// serveUpload streams a stored image. Stored names are unique, so responses
// may be cached for long.
func (h *Handler) serveUpload(w http.ResponseWriter, r *http.Request) {
	obj, err := h.images.Open(r.Context(), storage.PathPrefix+chi.URLParam(r, "*"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	defer obj.Body.Close()

	if obj.ContentType != "" {
		w.Header().Set("Content-Type", obj.ContentType)
	}
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, obj.Body); err != nil {
		h.log.Warn(r.Context(), "upload stream interrupted", "error", err)
	}
}
