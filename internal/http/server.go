package http

import (
	stdhttp "net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"gitwiki/app/internal/wiki"
)

// Options configures the HTTP server wiring.
type Options struct {
	Store       *wiki.Store
	Renderer    *wiki.Renderer
	Homepage    string
	Logger      *logrus.Logger
	SentryHub   *sentry.Hub
	RateLimiter RateLimiterSettings
}

// RateLimiterSettings configures the HTTP rate limiter behaviour.
type RateLimiterSettings struct {
	RequestsPerSecond float64
	Burst             int
	ClientTTL         time.Duration
}

// Server wires the HTTP transport layer via Huma and templ components.
type Server struct {
	api         huma.API
	mux         *stdhttp.ServeMux
	store       *wiki.Store
	renderer    *wiki.Renderer
	homepage    string
	logger      *logrus.Logger
	sentry      *sentry.Hub
	rateLimiter *RateLimiter
}

// NewServer constructs the HTTP server.
func NewServer(opts Options) (*Server, error) {
	if opts.Store == nil {
		return nil, eris.New("page store is required")
	}
	if opts.Renderer == nil {
		return nil, eris.New("page renderer is required")
	}
	if opts.Homepage == "" {
		return nil, eris.New("homepage name is required")
	}

	mux := stdhttp.NewServeMux()
	config := huma.DefaultConfig("GitWiki", "1.0.0")
	// The built-in OpenAPI, docs, and schema routes would conflict with the
	// top-level page wildcards on the mux.
	config.OpenAPIPath = ""
	config.DocsPath = ""
	config.SchemasPath = ""

	api := humago.New(mux, config)

	srv := &Server{
		api:      api,
		mux:      mux,
		store:    opts.Store,
		renderer: opts.Renderer,
		homepage: opts.Homepage,
		logger:   opts.Logger,
		sentry:   opts.SentryHub,
	}

	settings := opts.RateLimiter
	if settings.Burst <= 0 {
		return nil, eris.New("rate limiter burst must be greater than zero")
	}
	if settings.RequestsPerSecond <= 0 {
		return nil, eris.New("rate limiter requests per second must be greater than zero")
	}
	if settings.ClientTTL <= 0 {
		return nil, eris.New("rate limiter client TTL must be greater than zero")
	}

	srv.rateLimiter = NewRateLimiter(settings)

	srv.registerMiddlewares()
	srv.registerRoutes()

	return srv, nil
}

// Handler exposes the underlying HTTP handler for wiring into the application.
func (s *Server) Handler() stdhttp.Handler {
	return s.mux
}

func (s *Server) registerMiddlewares() {
	s.api.UseMiddleware(
		s.sentryMiddleware(),
		s.recoveryMiddleware(),
		s.requestIDMiddleware(),
		s.rateLimitMiddleware(),
		s.loggingMiddleware(),
	)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /favicon.ico", faviconHandler)
	s.mux.HandleFunc("HEAD /favicon.ico", faviconHandler)

	s.registerHomeRoute()
	s.registerIndexRoute()
	s.registerPageRoute()
	s.registerEditRoute()
	s.registerSaveRoute()
	s.registerHealthRoute()
}

func (s *Server) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	s.mux.ServeHTTP(w, r)
}
