package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/wastecms/internal/common"
	"github.com/dmitrijs2005/wastecms/internal/server/models"
)

// multipartMemory is how much of a multipart body is kept in memory before
// parts spill to temporary files.
const multipartMemory = 8 << 20

// parseMultipart bounds and parses a multipart body and returns the optional
// "image" part.
func (h *Handler) parseMultipart(w http.ResponseWriter, r *http.Request) (*models.Upload, error) {
	if limit := h.opts.MaxUploadSize; limit > 0 {
		if r.ContentLength > limit {
			return nil, &http.MaxBytesError{Limit: limit}
		}
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: expected a multipart form", common.ErrorValidation)
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable image", common.ErrorValidation)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	return &models.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// parseRating treats a missing value as "not given" so the default applies.
func parseRating(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: rating must be a number", common.ErrorValidation)
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: rating must be between %d and %d", common.ErrorValidation, models.MinRating, models.MaxRating)
	}
	return n, nil
}

func testimonialInput(r *http.Request) (models.TestimonialInput, error) {
	rating, err := parseRating(r.FormValue("rating"))
	if err != nil {
		return models.TestimonialInput{}, err
	}
	return models.TestimonialInput{
		Name:        r.FormValue("name"),
		Position:    r.FormValue("position"),
		Company:     r.FormValue("company"),
		Industry:    r.FormValue("industry"),
		Testimonial: r.FormValue("testimonial"),
		Rating:      rating,
	}, nil
}

func blogInput(r *http.Request) models.BlogInput {
	return models.BlogInput{
		Title:    r.FormValue("title"),
		Excerpt:  r.FormValue("excerpt"),
		Content:  r.FormValue("content"),
		Author:   r.FormValue("author"),
		Category: r.FormValue("category"),
		Tags:     r.FormValue("tags"),
	}
}
