// Package server exposes the Frameloom engine over an HTTP API.
//
// The API serves a single in-memory document per process. All mutation
// endpoints funnel through one mutex so the engine's single-threaded
// contract holds even though net/http dispatches handlers concurrently.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/frameloom/pkg/document"
	"github.com/matzehuels/frameloom/pkg/layout"
	"github.com/matzehuels/frameloom/pkg/locate"
	"github.com/matzehuels/frameloom/pkg/selection"
	"github.com/matzehuels/frameloom/pkg/snapshot"
	"github.com/matzehuels/frameloom/pkg/transform"
)

// Server wires the engine components behind an HTTP API.
type Server struct {
	mu sync.Mutex

	doc     *document.Document
	engine  *transform.Engine
	surface *layout.Surface
	locator *locate.Locator
	tracker *selection.Tracker
	store   snapshot.Store

	logger *charmlog.Logger
	http   *http.Server
}

// Options configures a Server.
type Options struct {
	// Addr is the listen address, e.g. ":8088".
	Addr string
	// Store persists snapshots; nil disables the snapshot endpoints.
	Store snapshot.Store
	// Logger receives request and lifecycle logs; nil uses the default.
	Logger *charmlog.Logger
}

// New creates a Server over the given document.
func New(doc *document.Document, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = charmlog.Default()
	}

	engine := transform.New()
	surface := layout.New(doc, engine)
	locator := locate.New(doc, surface)
	tracker := selection.New(locator)
	tracker.AttachTransform(engine)

	s := &Server{
		doc:     doc,
		engine:  engine,
		surface: surface,
		locator: locator,
		tracker: tracker,
		store:   opts.Store,
		logger:  opts.Logger,
	}
	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// ListenAndServe starts the HTTP server and blocks until ctx is cancelled
// or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.http.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.tracker.Close()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/document", s.handleGetDocument)
		r.Get("/breakpoints", s.handleGetBreakpoints)
		r.Post("/breakpoints", s.handleAddBreakpoint)
		r.Delete("/breakpoints/{id}", s.handleRemoveBreakpoint)

		r.Get("/nodes/{id}/resolved", s.handleResolveNode)
		r.Get("/nodes/{id}/instances", s.handleNodeInstances)
		r.Post("/nodes/{id}/transform", s.handleNodeTransform)

		r.Get("/transform", s.handleGetTransform)
		r.Post("/canvas/pan", s.handlePan)
		r.Post("/canvas/zoom", s.handleZoom)
		r.Post("/canvas/reset", s.handleResetTransform)

		r.Get("/selection", s.handleGetSelection)
		r.Put("/selection", s.handlePutSelection)
		r.Delete("/selection", s.handleDeleteSelection)

		if s.store != nil {
			r.Route("/snapshots", func(r chi.Router) {
				r.Get("/", s.handleListSnapshots)
				r.Put("/{name}", s.handleSaveSnapshot)
				r.Get("/{name}", s.handleLoadSnapshot)
				r.Delete("/{name}", s.handleDeleteSnapshot)
			})
		}
	})

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}
