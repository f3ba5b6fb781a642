package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) listApprovedTestimonials(w http.ResponseWriter, r *http.Request) {
	list, err := h.testimonials.ListApproved(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) submitTestimonial(w http.ResponseWriter, r *http.Request) {
	image, err := h.parseMultipart(w, r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	in, err := testimonialInput(r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	t, err := h.testimonials.Submit(r.Context(), in, image)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *Handler) listAllTestimonials(w http.ResponseWriter, r *http.Request) {
	list, err := h.testimonials.ListAll(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) updateTestimonialStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, err := h.testimonials.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) deleteTestimonial(w http.ResponseWriter, r *http.Request) {
	if err := h.testimonials.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Testimonial deleted")
}
