package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/wastecms/internal/common"
	"github.com/dmitrijs2005/wastecms/internal/logging"
	"github.com/dmitrijs2005/wastecms/internal/server/imagex"
	"github.com/dmitrijs2005/wastecms/internal/server/models"
	"github.com/dmitrijs2005/wastecms/internal/server/storage"
)

// imageKeeper stores and removes the images attached to records.
type imageKeeper struct {
	store storage.ImageStore
	log   logging.Logger
}

// save normalises and stores upload. A nil upload stores nothing and returns "".
func (k imageKeeper) save(ctx context.Context, upload *models.Upload) (string, error) {
	if upload == nil || len(upload.Data) == 0 {
		return "", nil
	}

	img, err := imagex.Process(upload.Data)
	if err != nil {
		return "", fmt.Errorf("image %q: %w", upload.Filename, err)
	}

	path, err := k.store.Save(ctx, img.Ext, img.ContentType, img.Data)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return path, nil
}

// discard removes a stored image. Failures are logged, never returned: the
// record change that made the image obsolete has already happened.
func (k imageKeeper) discard(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := k.store.Delete(ctx, path); err != nil && !errors.Is(err, common.ErrorNotFound) {
		k.log.Warn(ctx, "failed to remove image", "path", path, "error", err)
	}
}
