package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var (
	// slugSpaces matches runs of whitespace and underscores
	slugSpaces = regexp.MustCompile(`[\s_]+`)
	// slugRegex matches non-alphanumeric characters (except hyphens)
	slugRegex = regexp.MustCompile(`[^a-z0-9-]+`)
	// multipleHyphens matches multiple consecutive hyphens
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// fallbackSlug is used for titles without a single transliterable letter or digit.
const fallbackSlug = "post"

// Slugify converts a title to a URL-friendly slug. Non-Latin scripts are
// transliterated to ASCII first, so "Économie circulaire" becomes
// "economie-circulaire".
func Slugify(s string) string {
	result := strings.ToLower(unidecode.Unidecode(s))
	result = slugSpaces.ReplaceAllString(result, "-")
	result = slugRegex.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// uniqueSlug returns the slug of title, suffixed with -2, -3... until exists
// reports it free.
func uniqueSlug(ctx context.Context, title string, exists func(context.Context, string) (bool, error)) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = fallbackSlug
	}

	candidate := base
	for n := 2; ; n++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
