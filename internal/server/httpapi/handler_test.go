package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/wastecms/internal/common"
	"github.com/dmitrijs2005/wastecms/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	a := newTestAPI(t, Options{})
	resp := a.do(t, http.MethodGet, "/health", "", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	a := newTestAPI(t, Options{})

	tests := []struct {
		name string
		body string
		code int
	}{
		{"ok", `{"email":"admin@example.com","password":"s3cret"}`, http.StatusOK},
		{"wrong password", `{"email":"admin@example.com","password":"x"}`, http.StatusUnauthorized},
		{"unknown email", `{"email":"who@example.com","password":"s3cret"}`, http.StatusUnauthorized},
		{"missing fields", `{"email":""}`, http.StatusBadRequest},
		{"not json", `email=admin`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := a.do(t, http.MethodPost, "/api/admin/login", "", "application/json", []byte(tt.body))
			assert.Equal(t, tt.code, resp.StatusCode)
			if tt.code == http.StatusUnauthorized {
				assert.Equal(t, "Invalid credentials", decode[messageResponse](t, resp).Message)
			}
		})
	}
}

func TestLogin_RateLimited(t *testing.T) {
	a := newTestAPI(t, Options{LoginRateLimit: 2})
	body := []byte(`{"email":"admin@example.com","password":"x"}`)

	for range 2 {
		resp := a.do(t, http.MethodPost, "/api/admin/login", "", "application/json", body)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	resp := a.do(t, http.MethodPost, "/api/admin/login", "", "application/json", body)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	a := newTestAPI(t, Options{})

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/admin/testimonials"},
		{http.MethodPatch, "/api/admin/testimonials/x"},
		{http.MethodDelete, "/api/admin/testimonials/x"},
		{http.MethodPost, "/api/blogs"},
		{http.MethodPut, "/api/blogs/x"},
		{http.MethodDelete, "/api/blogs/x"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			resp := a.do(t, rt.method, rt.path, "", "", nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			resp = a.do(t, rt.method, rt.path, "not-a-jwt", "", nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "Token is not valid", decode[messageResponse](t, resp).Message)
		})
	}
}

func TestTestimonials_SubmitModeratePublish(t *testing.T) {
	a := newTestAPI(t, Options{})
	token := a.login(t)

	body, ct := multipartForm(t, testimonialFields(), pngBytes(t))
	resp := a.do(t, http.MethodPost, "/api/testimonials", "", ct, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[models.Testimonial](t, resp)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, 4, created.Rating)
	require.NotEmpty(t, created.Image)

	// the stored image is served back
	resp = a.do(t, http.MethodGet, "/"+created.Image, "", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	resp = a.do(t, http.MethodGet, "/api/testimonials", "", "", nil)
	assert.Empty(t, decode[[]models.Testimonial](t, resp))

	resp = a.do(t, http.MethodPatch, "/api/admin/testimonials/"+created.ID, token, "application/json", []byte(`{"status":"approved"}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.StatusApproved, decode[models.Testimonial](t, resp).Status)

	resp = a.do(t, http.MethodGet, "/api/testimonials", "", "", nil)
	public := decode[[]models.Testimonial](t, resp)
	require.Len(t, public, 1)
	assert.Equal(t, created.ID, public[0].ID)

	resp = a.do(t, http.MethodDelete, "/api/admin/testimonials/"+created.ID, token, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Testimonial deleted", decode[messageResponse](t, resp).Message)

	resp = a.do(t, http.MethodGet, "/"+created.Image, "", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = a.do(t, http.MethodDelete, "/api/admin/testimonials/"+created.ID, token, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTestimonials_SubmitValidation(t *testing.T) {
	a := newTestAPI(t, Options{})

	tests := []struct {
		name   string
		mutate func(f map[string]string)
		code   int
		rating int
	}{
		{"rating defaults to 5", func(f map[string]string) { delete(f, "rating") }, http.StatusCreated, 5},
		{"rating too high", func(f map[string]string) { f["rating"] = "6" }, http.StatusBadRequest, 0},
		{"rating zero", func(f map[string]string) { f["rating"] = "0" }, http.StatusBadRequest, 0},
		{"rating not a number", func(f map[string]string) { f["rating"] = "five" }, http.StatusBadRequest, 0},
		{"missing name", func(f map[string]string) { f["name"] = " " }, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testimonialFields()
			tt.mutate(f)
			body, ct := multipartForm(t, f, nil)
			resp := a.do(t, http.MethodPost, "/api/testimonials", "", ct, body)
			require.Equal(t, tt.code, resp.StatusCode)
			if tt.code == http.StatusCreated {
				assert.Equal(t, tt.rating, decode[models.Testimonial](t, resp).Rating)
			}
		})
	}
}

func TestTestimonials_NotMultipart(t *testing.T) {
	a := newTestAPI(t, Options{})
	resp := a.do(t, http.MethodPost, "/api/testimonials", "", "application/json", []byte(`{"name":"x"}`))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTestimonials_UploadTooLarge(t *testing.T) {
	a := newTestAPI(t, Options{MaxUploadSize: 512})
	body, ct := multipartForm(t, testimonialFields(), make([]byte, 4096))
	resp := a.do(t, http.MethodPost, "/api/testimonials", "", ct, body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestTestimonials_InvalidStatus(t *testing.T) {
	a := newTestAPI(t, Options{})
	token := a.login(t)

	body, ct := multipartForm(t, testimonialFields(), nil)
	created := decode[models.Testimonial](t, a.do(t, http.MethodPost, "/api/testimonials", "", ct, body))

	resp := a.do(t, http.MethodPatch, "/api/admin/testimonials/"+created.ID, token, "application/json", []byte(`{"status":"archived"}`))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = a.do(t, http.MethodPatch, "/api/admin/testimonials/missing", token, "application/json", []byte(`{"status":"approved"}`))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBlogs_CRUD(t *testing.T) {
	a := newTestAPI(t, Options{})
	token := a.login(t)

	body, ct := multipartForm(t, blogFields("Hello World"), pngBytes(t))
	resp := a.do(t, http.MethodPost, "/api/blogs", token, ct, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	first := decode[models.Blog](t, resp)
	assert.Equal(t, "hello-world", first.Slug)
	assert.Equal(t, []string{"a", "b", "c"}, first.Tags)
	require.NotEmpty(t, first.Image)

	body, ct = multipartForm(t, blogFields("Hello World"), nil)
	resp = a.do(t, http.MethodPost, "/api/blogs", token, ct, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	second := decode[models.Blog](t, resp)
	assert.Equal(t, "hello-world-2", second.Slug)

	resp = a.do(t, http.MethodGet, "/api/blogs", "", "", nil)
	list := decode[[]models.Blog](t, resp)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	// an edit without an image keeps the stored one
	f := blogFields("Hello again")
	f["tags"] = "x"
	body, ct = multipartForm(t, f, nil)
	resp = a.do(t, http.MethodPut, "/api/blogs/"+first.ID, token, ct, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[models.Blog](t, resp)
	assert.Equal(t, first.Image, updated.Image)
	assert.Equal(t, "hello-world", updated.Slug)
	assert.Equal(t, []string{"x"}, updated.Tags)

	resp = a.do(t, http.MethodGet, "/api/blogs/hello-world", "", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello again", decode[models.Blog](t, resp).Title)

	resp = a.do(t, http.MethodDelete, "/api/blogs/"+first.ID, token, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Blog deleted", decode[messageResponse](t, resp).Message)

	resp = a.do(t, http.MethodGet, "/api/blogs/hello-world", "", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = a.do(t, http.MethodGet, "/"+first.Image, "", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBlogs_CreateValidation(t *testing.T) {
	a := newTestAPI(t, Options{})
	token := a.login(t)

	f := blogFields("T")
	f["content"] = "<script>alert(1)</script>"
	body, ct := multipartForm(t, f, nil)
	resp := a.do(t, http.MethodPost, "/api/blogs", token, ct, body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "content is required", decode[messageResponse](t, resp).Message)

	body, ct = multipartForm(t, blogFields("T"), []byte("not an image"))
	resp = a.do(t, http.MethodPost, "/api/blogs", token, ct, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploads_RejectsTraversal(t *testing.T) {
	a := newTestAPI(t, Options{})
	resp := a.do(t, http.MethodGet, "/uploads/..%2f..%2fetc%2fpasswd", "", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestValidationMessage(t *testing.T) {
	err := fmt.Errorf("image %q: %w", "a.txt", fmt.Errorf("%w: unsupported image format", common.ErrorValidation))
	assert.Equal(t, "unsupported image format", validationMessage(err))
	assert.Equal(t, "plain", validationMessage(errors.New("plain")))
}
