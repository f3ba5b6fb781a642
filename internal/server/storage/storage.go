// Package storage keeps uploaded images. Stored images are addressed by a
// relative path of the form "uploads/<yyyy>/<m>/<d>/<uuid><ext>", which is what
// the API returns in the image fields and serves under GET /uploads/*.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/dmitrijs2005/wastecms/internal/common"
	"github.com/google/uuid"
)

// PathPrefix starts every stored image path.
const PathPrefix = "uploads/"

// Object is an opened stored image. The caller closes Body.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// ImageStore persists image bytes. Open and Delete take the relative path
// returned by Save and report common.ErrorNotFound for unknown paths.
type ImageStore interface {
	Save(ctx context.Context, ext, contentType string, data []byte) (string, error)
	Open(ctx context.Context, path string) (*Object, error)
	Delete(ctx context.Context, path string) error
}

var now = time.Now

// newKey returns a fresh object key under a date directory.
func newKey(ext string) string {
	d := now()
	return fmt.Sprintf("%d/%d/%d/%v%s", d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

// KeyFromPath validates a stored image path and strips PathPrefix. Backslashes
// are accepted as separators. Paths that leave the upload area yield
// common.ErrorNotFound.
func KeyFromPath(p string) (string, error) {
	p = strings.ReplaceAll(strings.TrimSpace(p), `\`, "/")
	p = strings.TrimLeft(p, "/")
	if !strings.HasPrefix(p, PathPrefix) {
		return "", fmt.Errorf("%w: %q is not a stored image", common.ErrorNotFound, p)
	}

	key := strings.TrimPrefix(p, PathPrefix)
	clean := path.Clean("/" + key)[1:]
	if key == "" || clean != key {
		return "", fmt.Errorf("%w: %q is not a stored image", common.ErrorNotFound, p)
	}
	return key, nil
}
