// Package web serves the public site: content pages, the checkout form, and
// the post-payment result views.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/webxmedia/backend/internal/domain"
	"github.com/webxmedia/backend/internal/service"
	"github.com/webxmedia/backend/pkg/checkout"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static serves the embedded stylesheet and assets under /static/.
func Static() http.Handler {
	return http.FileServer(http.FS(staticFS))
}

// pages that render inside the base layout.
var pageNames = []string{
	"home", "services", "about", "contact",
	"checkout", "checkout_success", "checkout_error", "checkout_cancel",
}

// Handler renders the site's pages.
type Handler struct {
	templates map[string]*template.Template
	client    *checkout.Client
	pollOpts  []checkout.PollerOption
	contact   *service.ContactService
	log       zerolog.Logger
}

// Option customizes a Handler.
type Option func(*Handler)

// WithPollerOptions overrides the status poller's settings (used in tests to
// avoid real 2s waits).
func WithPollerOptions(opts ...checkout.PollerOption) Option {
	return func(h *Handler) { h.pollOpts = opts }
}

// New creates the page handler. apiBaseURL is where the checkout API is
// reachable; the checkout and success pages drive it through the same client
// a headless integration would use.
func New(apiBaseURL string, contact *service.ContactService, log zerolog.Logger, opts ...Option) (*Handler, error) {
	funcs := template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	}

	templates := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("base.html").Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		templates[name] = t
	}

	h := &Handler{
		templates: templates,
		client:    checkout.NewClient(apiBaseURL),
		contact:   contact,
		log:       log,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

func (h *Handler) render(w http.ResponseWriter, status int, page string, data any) {
	t, ok := h.templates[page]
	if !ok {
		http.Error(w, "page not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "base.html", data); err != nil {
		h.log.Error().Err(err).Str("page", page).Msg("template render failed")
	}
}

type pageData struct {
	Title string
	Plans []domain.Plan
}

// Home handles GET /.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "home", pageData{Title: "Web X Media", Plans: domain.AvailablePlans()})
}

// Services handles GET /services.
func (h *Handler) Services(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "services", pageData{Title: "Services", Plans: domain.AvailablePlans()})
}

// About handles GET /about.
func (h *Handler) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "about", pageData{Title: "About Us"})
}
