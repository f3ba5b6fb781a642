package models

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

// Testimonial is a testimonial record as returned by the API.
type Testimonial struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Position    string    `json:"position"`
	Company     string    `json:"company"`
	Industry    string    `json:"industry,omitempty"`
	Testimonial string    `json:"testimonial"`
	Rating      int       `json:"rating"`
	Image       string    `json:"image,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (t Testimonial) GetID() string { return t.ID }

// UnmarshalJSON also accepts the "_id" key used by document-store backends.
func (t *Testimonial) UnmarshalJSON(b []byte) error {
	type alias Testimonial
	var v struct {
		alias
		LegacyID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*t = Testimonial(v.alias)
	if t.ID == "" {
		t.ID = v.LegacyID
	}
	return nil
}

// TestimonialForm holds the public submission fields.
type TestimonialForm struct {
	Name        string
	Position    string
	Company     string
	Industry    string
	Testimonial string
	Rating      int
}

// NewTestimonialForm returns an empty form with the rating preset to 5.
func NewTestimonialForm() TestimonialForm {
	return TestimonialForm{Rating: DefaultRating}
}

// Validate checks required fields and the rating range.
func (f TestimonialForm) Validate() error {
	for _, c := range []struct{ field, value string }{
		{"name", f.Name},
		{"position", f.Position},
		{"company", f.Company},
		{"testimonial", f.Testimonial},
	} {
		if err := required(c.field, c.value); err != nil {
			return err
		}
	}
	if f.Rating < MinRating || f.Rating > MaxRating {
		return &ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
