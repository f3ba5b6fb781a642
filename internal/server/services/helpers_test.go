package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"
	"testing"

	"github.com/dmitrijs2005/wastecms/internal/common"
	"github.com/dmitrijs2005/wastecms/internal/cryptox"
	"github.com/dmitrijs2005/wastecms/internal/server/models"
	"github.com/dmitrijs2005/wastecms/internal/server/storage"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memStore is an in-memory storage.ImageStore.
type memStore struct {
	mu      sync.Mutex
	seq     int
	objects map[string][]byte
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}}
}

func (m *memStore) Save(ctx context.Context, ext, contentType string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return "", m.saveErr
	}
	m.seq++
	p := fmt.Sprintf("%simg-%d%s", storage.PathPrefix, m.seq, ext)
	m.objects[p] = data
	return p, nil
}

func (m *memStore) Open(ctx context.Context, path string) (*storage.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[path]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &storage.Object{Body: io.NopCloser(bytes.NewReader(data)), Size: int64(len(data))}, nil
}

func (m *memStore) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[path]; !ok {
		return common.ErrorNotFound
	}
	delete(m.objects, path)
	return nil
}

func (m *memStore) has(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[path]
	return ok
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

func fastBcrypt(t *testing.T) {
	t.Helper()
	orig := cryptox.Cost
	cryptox.Cost = bcrypt.MinCost
	t.Cleanup(func() { cryptox.Cost = orig })
}

func pngUpload(t *testing.T) *models.Upload {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &models.Upload{Filename: "photo.png", ContentType: "image/png", Data: buf.Bytes()}
}
