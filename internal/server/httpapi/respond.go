package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/wastecms/internal/common"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// writeServiceError maps a service error to its status code. Validation
// messages are passed through, everything else gets a fixed text.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &tooLarge):
		writeMessage(w, http.StatusRequestEntityTooLarge, "Upload is too large")
	case errors.Is(err, common.ErrorValidation):
		writeMessage(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, common.ErrorUnauthorized):
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, "Not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		writeMessage(w, http.StatusConflict, "Already exists")
	default:
		h.log.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
	}
}

// validationMessage strips the sentinel prefix: "validation error: rating
// must be between 1 and 5" becomes "rating must be between 1 and 5".
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, common.ErrorValidation.Error()+": "); i >= 0 {
		return msg[i+len(common.ErrorValidation.Error())+2:]
	}
	return msg
}
