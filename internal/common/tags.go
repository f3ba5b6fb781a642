package common

import "strings"

// ParseTags turns the comma-separated tags text of a blog form into an ordered
// list of trimmed, non-empty tags. The result is never nil.
func ParseTags(text string) []string {
	tags := make([]string, 0)
	for _, part := range strings.Split(text, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// FormatTags is the inverse of ParseTags: "a, b, c".
func FormatTags(tags []string) string {
	return strings.Join(tags, ", ")
}
