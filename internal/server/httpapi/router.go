package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/wastecms/internal/logging"
	"github.com/dmitrijs2005/wastecms/internal/server/services"
	"github.com/dmitrijs2005/wastecms/internal/server/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Options tune the router.
type Options struct {
	// MaxUploadSize caps a multipart request body in bytes.
	MaxUploadSize int64
	// LoginRateLimit is the number of login attempts per minute per IP; zero
	// disables the limit.
	LoginRateLimit int
	// AllowedOrigins feeds the CORS policy.
	AllowedOrigins []string
}

type Handler struct {
	auth         *services.AuthService
	testimonials *services.TestimonialService
	blogs        *services.BlogService
	images       storage.ImageStore
	log          logging.Logger
	opts         Options
}

func NewHandler(
	as *services.AuthService,
	ts *services.TestimonialService,
	bs *services.BlogService,
	images storage.ImageStore,
	l logging.Logger,
	opts Options,
) *Handler {
	return &Handler{
		auth:         as,
		testimonials: ts,
		blogs:        bs,
		images:       images,
		log:          l.With("module", "httpapi"),
		opts:         opts,
	}
}

// Routes builds the chi router serving the API, uploaded images and the
// health probe.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   h.opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler)

	r.Get("/health", h.health)
	r.Get("/uploads/*", h.serveUpload)

	r.Route("/api", func(r chi.Router) {
		r.Get("/testimonials", h.listApprovedTestimonials)
		r.Post("/testimonials", h.submitTestimonial)

		r.Get("/blogs", h.listBlogs)
		r.Get("/blogs/{slug}", h.getBlog)

		var limit []func(http.Handler) http.Handler
		if h.opts.LoginRateLimit > 0 {
			limit = append(limit, newIPLimiter(h.opts.LoginRateLimit).Limit)
		}
		r.With(limit...).Post("/admin/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAdmin)

			r.Get("/admin/testimonials", h.listAllTestimonials)
			r.Patch("/admin/testimonials/{id}", h.updateTestimonialStatus)
			r.Delete("/admin/testimonials/{id}", h.deleteTestimonial)

			r.Post("/blogs", h.createBlog)
			r.Put("/blogs/{id}", h.updateBlog)
			r.Delete("/blogs/{id}", h.deleteBlog)
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
