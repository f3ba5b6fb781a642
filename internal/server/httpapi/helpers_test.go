package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/wastecms/internal/cryptox"
	"github.com/dmitrijs2005/wastecms/internal/logging"
	"github.com/dmitrijs2005/wastecms/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/wastecms/internal/server/services"
	"github.com/dmitrijs2005/wastecms/internal/server/storage"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "s3cret"
)

type testAPI struct {
	srv   *httptest.Server
	store *storage.LocalStore
}

func newTestAPI(t *testing.T, opts Options) *testAPI {
	t.Helper()

	orig := cryptox.Cost
	cryptox.Cost = bcrypt.MinCost
	t.Cleanup(func() { cryptox.Cost = orig })

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	log := logging.Discard()
	m := repomanager.NewMemoryRepositoryManager()
	as := services.NewAuthService(nil, m, log, "test-secret", time.Hour)
	require.NoError(t, as.SeedAdmin(context.Background(), adminEmail, adminPassword))

	if opts.MaxUploadSize == 0 {
		opts.MaxUploadSize = 1 << 20
	}
	if opts.AllowedOrigins == nil {
		opts.AllowedOrigins = []string{"*"}
	}

	h := NewHandler(
		as,
		services.NewTestimonialService(nil, m, store, log),
		services.NewBlogService(nil, m, store, log),
		store,
		log,
		opts,
	)

	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)
	return &testAPI{srv: srv, store: store}
}

func (a *testAPI) do(t *testing.T, method, path, token, contentType string, body []byte) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, a.srv.URL+path, bytes.NewReader(body))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (a *testAPI) login(t *testing.T) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": adminEmail, "password": adminPassword})
	resp := a.do(t, http.MethodPost, "/api/admin/login", "", "application/json", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out loginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// multipartForm encodes fields and, when img is not nil, an image part.
func multipartForm(t *testing.T, fields map[string]string, img []byte) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if img != nil {
		part, err := w.CreateFormFile("image", "photo.png")
		require.NoError(t, err)
		_, err = part.Write(img)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes(), w.FormDataContentType()
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.RGBA{G: 180, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testimonialFields() map[string]string {
	return map[string]string{
		"name":        "A. Rao",
		"position":    "Manager",
		"company":     "Acme",
		"testimonial": "Great service",
		"rating":      "4",
	}
}

func blogFields(title string) map[string]string {
	return map[string]string{
		"title":    title,
		"excerpt":  "Short",
		"content":  "<p>Body</p>",
		"author":   "Ann",
		"category": "Technology",
		"tags":     "a, b, c",
	}
}
