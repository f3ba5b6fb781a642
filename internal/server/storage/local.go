package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/wastecms/internal/common"
	"github.com/dmitrijs2005/wastecms/internal/filex"
)

// LocalStore keeps images under a directory on disk.
type LocalStore struct {
	root string
}

// NewLocalStore creates dir when needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	root, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) Root() string { return s.root }

func (s *LocalStore) Save(ctx context.Context, ext, contentType string, data []byte) (string, error) {
	key := newKey(ext)

	full, err := filex.SafeJoin(s.root, key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o640); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	return PathPrefix + key, nil
}

func (s *LocalStore) Open(ctx context.Context, path string) (*Object, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("open image: %w", err)
	}

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		_ = f.Close()
		return nil, common.ErrorNotFound
	}

	return &Object{Body: f, ContentType: mime.TypeByExtension(filepath.Ext(full)), Size: info.Size()}, nil
}

func (s *LocalStore) Delete(ctx context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}

func (s *LocalStore) resolve(path string) (string, error) {
	key, err := KeyFromPath(path)
	if err != nil {
		return "", err
	}
	full, err := filex.SafeJoin(s.root, key)
	if err != nil {
		return "", common.ErrorNotFound
	}
	return full, nil
}
