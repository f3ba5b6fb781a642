package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) listBlogs(w http.ResponseWriter, r *http.Request) {
	list, err := h.blogs.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) getBlog(w http.ResponseWriter, r *http.Request) {
	b, err := h.blogs.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) createBlog(w http.ResponseWriter, r *http.Request) {
	image, err := h.parseMultipart(w, r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	b, err := h.blogs.Create(r.Context(), blogInput(r), image)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handler) updateBlog(w http.ResponseWriter, r *http.Request) {
	image, err := h.parseMultipart(w, r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	b, err := h.blogs.Update(r.Context(), chi.URLParam(r, "id"), blogInput(r), image)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) deleteBlog(w http.ResponseWriter, r *http.Request) {
	if err := h.blogs.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Blog deleted")
}
