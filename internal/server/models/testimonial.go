package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/wastecms/internal/common"
)

// Status is the moderation state of a testimonial.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// ParseStatus validates the wire value of a status.
func ParseStatus(v string) (Status, error) {
	s := Status(strings.TrimSpace(v))
	if !s.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", common.ErrorValidation, v)
	}
	return s, nil
}

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

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

// TestimonialInput is a public submission. A zero Rating means "not given".
type TestimonialInput struct {
	Name        string
	Position    string
	Company     string
	Industry    string
	Testimonial string
	Rating      int
}

// Normalize trims every text field and applies the default rating.
func (in *TestimonialInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Position = strings.TrimSpace(in.Position)
	in.Company = strings.TrimSpace(in.Company)
	in.Industry = strings.TrimSpace(in.Industry)
	in.Testimonial = strings.TrimSpace(in.Testimonial)
	if in.Rating == 0 {
		in.Rating = DefaultRating
	}
}

// Validate expects a normalized input.
func (in TestimonialInput) Validate() error {
	if err := required(
		"name", in.Name,
		"position", in.Position,
		"company", in.Company,
		"testimonial", in.Testimonial,
	); err != nil {
		return err
	}
	if in.Rating < MinRating || in.Rating > MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", common.ErrorValidation, MinRating, MaxRating)
	}
	return nil
}

// required takes field/value pairs and reports the first blank one.
func required(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return fmt.Errorf("%w: %s is required", common.ErrorValidation, pairs[i])
		}
	}
	return nil
}
