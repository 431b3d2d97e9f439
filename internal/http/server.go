package http

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"melking/internal/core"
	"melking/internal/log"
	"melking/internal/services"
	appweb "melking/web"
)

const defaultRequestTimeout = 7 * time.Second

// ReadinessCheck reports whether a dependency can serve requests.
type ReadinessCheck func(ctx context.Context) error

// Options tunes a Server. Zero values fall back to defaults.
type Options struct {
	Labels         core.Labels
	Calendar       core.Calendar
	RequestTimeout time.Duration
	Logger         *log.Logger
	// Checks are run by /readyz in addition to the template and ledger checks.
	Checks map[string]ReadinessCheck
}

type Server struct {
	http.Server
	templates      *template.Template
	summaries      *services.SummaryService
	labels         core.Labels
	calendar       core.Calendar
	requestTimeout time.Duration
	logger         *log.Logger
	checks         map[string]ReadinessCheck
	started        time.Time
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, summaries *services.SummaryService, opts Options) *Server {
	mux := http.NewServeMux()

	if opts.Labels == (core.Labels{}) {
		opts.Labels = core.DefaultLabels()
	}
	if opts.Calendar == "" {
		opts.Calendar = core.Jalali
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig())
	}

	s := &Server{
		Server: http.Server{
			Addr: addr,
		},
		summaries:      summaries,
		labels:         opts.Labels,
		calendar:       opts.Calendar,
		requestTimeout: opts.RequestTimeout,
		logger:         opts.Logger.WithComponent(log.ComponentHTTP),
		checks:         opts.Checks,
		started:        time.Now(),
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", log.FieldError, err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	// UI partials
	mux.HandleFunc("/ui/finance-summary", s.withSecurityHeaders(s.handleFinanceSummary))
	mux.HandleFunc("/ui/date-filter", s.withSecurityHeaders(s.handleDateFilter))

	s.Handler = log.Middleware(s.logger)(mux)
	return s
}

// panel returns a fresh summary panel for one request.
func (s *Server) panel() core.Panel {
	return core.NewPanel(s.labels, s.calendar)
}

// render executes a template into memory so a failure never leaves a
// half-written response.
func (s *Server) render(name string, data any) ([]byte, error) {
	if s.templates == nil {
		return nil, fmt.Errorf("templates not loaded")
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (s *Server) writeTemplate(w http.ResponseWriter, r *http.Request, b *HTMXResponseBuilder, name string, data any) {
	body, err := s.render(name, data)
	if err != nil {
		fields := log.NewFields()
		fields[log.FieldTemplate] = name
		log.FromContext(r.Context()).Failure(r.Context(), "Template execution failed", log.OpRender, err, fields)
		InternalServerError("template error").Write(w)
		return
	}
	b.BodyHTML(body).Write(w)
}
