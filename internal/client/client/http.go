package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/wastecms/internal/client/models"
	"github.com/dmitrijs2005/wastecms/internal/common"
	"github.com/dmitrijs2005/wastecms/internal/logging"
)

const maxResponseBody = 8 << 20

type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger

	mu     sync.RWMutex
	tokens TokenSource
}

var _ APIClient = (*HTTPClient)(nil)

// NewHTTPClient normalises baseURL and returns a client whose requests time
// out after timeout (no limit when zero).
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	base, err := NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &HTTPClient{
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}, nil
}

// UseTokenSource sets where protected calls read the bearer token from. The
// session is created after the client, so this is not a constructor argument.
func (c *HTTPClient) UseTokenSource(ts TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = ts
}

// BaseURL is the normalised API origin.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

func (c *HTTPClient) token(ctx context.Context) string {
	c.mu.RLock()
	ts := c.tokens
	c.mu.RUnlock()
	if ts == nil {
		return ""
	}
	return ts.Token(ctx)
}

type request struct {
	method      string
	path        string
	body        io.Reader
	contentType string
	auth        bool
}

func (c *HTTPClient) do(ctx context.Context, r request, out any) error {
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.auth {
		if tok := c.token(ctx); tok != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.log.Warn(ctx, "request failed", "method", r.method, "path", r.path, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "api call", "method", r.method, "path", r.path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, body)
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", r.method, r.path, err)
	}
	return nil
}

func statusError(code int, body []byte) error {
	var msg struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(body, &msg)

	m := msg.Message
	if m == "" {
		m = msg.Error
	}
	return &StatusError{StatusCode: code, Message: m}
}

func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b), nil
}

type formField struct {
	name, value string
}

// multipartBody writes fields in order and then the image part when image is
// not nil.
func multipartBody(fields []formField, image *models.Upload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	if image != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, image.Filename))
		h.Set("Content-Type", http.DetectContentType(image.Data))
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(image.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func testimonialFields(f models.TestimonialForm) []formField {
	return []formField{
		{"name", f.Name},
		{"position", f.Position},
		{"company", f.Company},
		{"industry", f.Industry},
		{"testimonial", f.Testimonial},
		{"rating", strconv.Itoa(f.Rating)},
	}
}

func blogFields(f models.BlogForm) []formField {
	return []formField{
		{"title", f.Title},
		{"excerpt", f.Excerpt},
		{"content", f.Content},
		{"author", f.Author},
		{"category", f.Category},
		{"tags", f.Tags},
	}
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	body, err := jsonBody(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/admin/login", body: body, contentType: "application/json"}, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", errors.New("login response carries no token")
	}
	return resp.Token, nil
}

func (c *HTTPClient) ListApprovedTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	out := []models.Testimonial{}
	err := c.do(ctx, request{method: http.MethodGet, path: "/api/testimonials"}, &out)
	return out, err
}

func (c *HTTPClient) SubmitTestimonial(ctx context.Context, form models.TestimonialForm, image *models.Upload) (models.Testimonial, error) {
	body, ct, err := multipartBody(testimonialFields(form), image)
	if err != nil {
		return models.Testimonial{}, err
	}

	var out models.Testimonial
	err = c.do(ctx, request{method: http.MethodPost, path: "/api/testimonials", body: body, contentType: ct}, &out)
	return out, err
}

func (c *HTTPClient) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	out := []models.Testimonial{}
	err := c.do(ctx, request{method: http.MethodGet, path: "/api/admin/testimonials", auth: true}, &out)
	return out, err
}

func (c *HTTPClient) UpdateTestimonialStatus(ctx context.Context, id string, status models.Status) (models.Testimonial, error) {
	body, err := jsonBody(map[string]string{"status": string(status)})
	if err != nil {
		return models.Testimonial{}, err
	}

	var out models.Testimonial
	err = c.do(ctx, request{
		method:      http.MethodPatch,
		path:        "/api/admin/testimonials/" + url.PathEscape(id),
		body:        body,
		contentType: "application/json",
		auth:        true,
	}, &out)
	return out, err
}

type messageResponse struct {
	Message string `json:"message"`
}

func (c *HTTPClient) DeleteTestimonial(ctx context.Context, id string) (string, error) {
	var out messageResponse
	err := c.do(ctx, request{method: http.MethodDelete, path: "/api/admin/testimonials/" + url.PathEscape(id), auth: true}, &out)
	return out.Message, err
}

func (c *HTTPClient) ListBlogs(ctx context.Context) ([]models.Blog, error) {
	out := []models.Blog{}
	err := c.do(ctx, request{method: http.MethodGet, path: "/api/blogs"}, &out)
	return out, err
}

func (c *HTTPClient) GetBlogBySlug(ctx context.Context, slug string) (models.Blog, error) {
	var out models.Blog
	err := c.do(ctx, request{method: http.MethodGet, path: "/api/blogs/" + url.PathEscape(slug)}, &out)
	return out, err
}

func (c *HTTPClient) CreateBlog(ctx context.Context, form models.BlogForm, image *models.Upload) (models.Blog, error) {
	body, ct, err := multipartBody(blogFields(form), image)
	if err != nil {
		return models.Blog{}, err
	}

	var out models.Blog
	err = c.do(ctx, request{method: http.MethodPost, path: "/api/blogs", body: body, contentType: ct, auth: true}, &out)
	return out, err
}

func (c *HTTPClient) UpdateBlog(ctx context.Context, id string, form models.BlogForm, image *models.Upload) (models.Blog, error) {
	body, ct, err := multipartBody(blogFields(form), image)
	if err != nil {
		return models.Blog{}, err
	}

	var out models.Blog
	err = c.do(ctx, request{method: http.MethodPut, path: "/api/blogs/" + url.PathEscape(id), body: body, contentType: ct, auth: true}, &out)
	return out, err
}

func (c *HTTPClient) DeleteBlog(ctx context.Context, id string) (string, error) {
	var out messageResponse
	err := c.do(ctx, request{method: http.MethodDelete, path: "/api/blogs/" + url.PathEscape(id), auth: true}, &out)
	return out.Message, err
}
