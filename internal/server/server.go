// Package server exposes the diagram store and editing operations over HTTP.
//
// The API is JSON except for diagram documents themselves, which travel as
// raw diagram-data XML, and rendered artifacts, which are served as SVG.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tobim/smartgraph/pkg/cache"
	"github.com/tobim/smartgraph/pkg/store"
)

// Options configures the server handler.
type Options struct {
	// Store persists diagrams by name.
	Store store.Store
	// Cache holds rendered artifacts. Nil disables caching.
	Cache cache.Cache
	// TTL is the lifetime of cached artifacts. Zero means no expiry.
	TTL time.Duration
	// Logger receives request errors. Nil falls back to the default logger.
	Logger *log.Logger
}

// Server routes diagram requests to the store and render pipeline.
type Server struct {
	store  store.Store
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
	logger *log.Logger
	router *chi.Mux
}

// New creates the HTTP handler.
func New(opts Options) *Server {
	s := &Server{
		store:  opts.Store,
		cache:  opts.Cache,
		keyer:  cache.NewDefaultKeyer(),
		ttl:    opts.TTL,
		logger: opts.Logger,
	}
	if s.cache == nil {
		s.cache = cache.NewNullCache()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}

	s.router = chi.NewRouter()
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.router.Route("/diagrams", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Get("/{name}", s.handleGet)
		r.Put("/{name}", s.handlePut)
		r.Delete("/{name}", s.handleDelete)
		r.Post("/{name}/nodes", s.handleAddNode)
		r.Delete("/{name}/nodes/{index}", s.handleRemoveNode)
		r.Get("/{name}/render.svg", s.handleRender)
	})

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
