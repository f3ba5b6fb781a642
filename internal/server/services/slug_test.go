package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Zero Waste: A Practical Guide", "zero-waste-a-practical-guide"},
		{"  E-waste   & Foam  ", "e-waste-foam"},
		{"Économie circulaire", "economie-circulaire"},
		{"snake_case\ttitle", "snake-case-title"},
		{"Top 10 tips!!!", "top-10-tips"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), tt.in)
	}
}

func TestUniqueSlug(t *testing.T) {
	taken := map[string]bool{"zero-waste": true, "zero-waste-2": true}
	exists := func(_ context.Context, s string) (bool, error) { return taken[s], nil }

	got, err := uniqueSlug(context.Background(), "Zero Waste", exists)
	require.NoError(t, err)
	assert.Equal(t, "zero-waste-3", got)

	got, err = uniqueSlug(context.Background(), "Fresh", exists)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got)

	got, err = uniqueSlug(context.Background(), "!!!", exists)
	require.NoError(t, err)
	assert.Equal(t, fallbackSlug, got)
}

func TestUniqueSlug_LookupError(t *testing.T) {
	_, err := uniqueSlug(context.Background(), "x", func(context.Context, string) (bool, error) {
		return false, errors.New("db down")
	})
	require.Error(t, err)
}
