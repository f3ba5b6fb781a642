package client

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeBaseURL trims whitespace and trailing slashes from raw and defaults
// the scheme to http. The result has no trailing slash.
func NormalizeBaseURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if strings.Trim(s, "/") == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidBaseURL)
	}
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidBaseURL, u.Scheme)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidBaseURL)
	}
	u.RawQuery = ""
	u.Fragment = ""

	return strings.TrimRight(u.String(), "/"), nil
}

// ResolveImageURL turns an image reference returned by the API into an
// absolute URL under base. Backslashes are converted to forward slashes.
// Absolute http(s) URLs are returned unchanged and an empty path yields "".
func ResolveImageURL(base, path string) string {
	p := strings.TrimSpace(path)
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, `\`, "/")

	lower := strings.ToLower(p)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return p
	}

	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(p, "/")
}
