package render

import (
	"bytes"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
	)

	strict = bluemonday.StrictPolicy()

	// block-level boundaries become line breaks before tags are stripped
	blockBoundary = regexp.MustCompile(`(?i)<br\s*/?>|</(p|div|h[1-6]|li|blockquote|pre|tr)>`)
	blankLines    = regexp.MustCompile(`\n{3,}`)
)

// MarkdownToHTML converts Markdown to HTML. An empty input yields "".
func MarkdownToHTML(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PlainText strips all markup from an HTML fragment and decodes entities.
// Paragraphs and line breaks survive as newlines.
func PlainText(fragment string) string {
	s := blockBoundary.ReplaceAllString(fragment, "$0\n")
	s = strict.Sanitize(s)
	s = html.UnescapeString(s)

	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	s = strings.Join(lines, "\n")
	s = blankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// Stars renders a 1..5 rating as filled and empty stars. Out of range
// values are clamped.
func Stars(rating int) string {
	rating = max(0, min(rating, 5))
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// Date formats t the way the site shows publication dates. The zero time
// renders as "".
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("January 2, 2006")
}
