// Package httpapi wires the handler set onto the chi router.
package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"draftflow/internal/http/handlers"
	"draftflow/internal/middleware"
)

// RouterOptions tunes the cross-cutting middleware stack.
type RouterOptions struct {
	Logger          zerolog.Logger
	DefaultLocale   string
	AllowedOrigins  []string
	RateLimitPerMin int
}

func NewRouter(app *handlers.App, opts RouterOptions) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.Locale(opts.DefaultLocale),
	)
	if len(opts.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(opts.AllowedOrigins))
	}
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/products", func(r chi.Router) {
		r.Get("/", app.ProductsList)
		r.Post("/", app.ProductsCreate)
		r.Delete("/", app.ProductsClear)
		r.Post("/import", app.ProductsImport)
		r.Get("/import/template", app.ProductsImportTemplate)
		r.Get("/{id}", app.ProductsGet)
		r.Put("/{id}", app.ProductsUpdate)
		r.Delete("/{id}", app.ProductsDelete)
	})

	r.Route("/v1/jobs", func(r chi.Router) {
		r.Post("/", app.JobsEnqueue)
		r.Get("/{id}", app.JobsGet)
		r.Get("/{id}/drafts", app.JobsDrafts)
	})

	r.Route("/v1/drafts", func(r chi.Router) {
		r.Get("/", app.DraftsList)
		r.Delete("/", app.DraftsClear)
		r.Post("/export", app.DraftsExport)
		r.Patch("/{id}/selection", app.DraftsSetSelection)
	})

	r.Route("/v1/templates", func(r chi.Router) {
		r.Get("/", app.TemplatesList)
		r.Post("/derive", app.TemplatesDerive)
		r.Get("/{id}", app.TemplatesGet)
		r.Delete("/{id}", app.TemplatesDelete)
	})

	r.Post("/v1/copy/enhance", app.CopyEnhance)

	return r
}
