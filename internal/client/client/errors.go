package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/wastecms/internal/common"
)

var (
	ErrUnavailable    = errors.New("server unavailable")
	ErrInvalidBaseURL = errors.New("invalid API base URL")
)

// StatusError is a non-2xx API response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api error: %d %s", e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusNotFound:
		return common.ErrorNotFound
	default:
		return nil
	}
}

// ServerMessage returns the server-supplied message of err, or "" when err is
// not an API response.
func ServerMessage(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}
