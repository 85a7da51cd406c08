// Package server serves compound documents from a fixture store over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/conduit-lang/compound/internal/fixture"
	"github.com/conduit-lang/compound/pkg/compound"
	"github.com/conduit-lang/compound/pkg/web/query"
	"github.com/conduit-lang/compound/pkg/web/response"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Config holds server configuration
type Config struct {
	// Address is the listen address (e.g., "localhost:3000")
	Address string

	// APIPrefix mounts every route under a path such as "/api"
	APIPrefix string

	// Render configures document encoding
	Render response.RendererConfig

	// Timeouts
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// DefaultConfig returns the server defaults
func DefaultConfig() Config {
	return Config{
		Address:           "localhost:3000",
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		ShutdownTimeout:   30 * time.Second,
	}
}

// Server serves GET /{type} and GET /{type}/{id} from a fixture store
type Server struct {
	store    *fixture.Store
	config   Config
	logger   *zap.Logger
	renderer *response.Renderer
	handler  http.Handler
}

// New creates a server for store
func New(store *fixture.Store, config Config, logger *zap.Logger) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("fixture store cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	rc := config.Render
	rc.Logger = logger
	s := &Server{
		store:    store,
		config:   config,
		logger:   logger,
		renderer: response.NewRendererWithConfig(&rc),
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID, AccessLog(s.logger), Recovery(s.logger), Negotiate)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.RenderError(w, http.StatusNotFound, fmt.Errorf("no route for %s", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.RenderError(w, http.StatusMethodNotAllowed, fmt.Errorf("%s is not supported", r.Method))
	})

	mount := func(r chi.Router) {
		r.Get("/", s.index)
		r.Get("/{type}", s.list)
		r.Get("/{type}/{id}", s.show)
	}
	if s.config.APIPrefix != "" {
		r.Route(s.config.APIPrefix, mount)
	} else {
		mount(r)
	}
	return r
}

// index lists the resource types of the store as links
func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	doc := compound.NewDocument()
	types := s.store.Types()
	for _, typ := range types {
		doc.AddLink(typ, s.config.APIPrefix+"/"+typ)
	}
	doc.AddMeta("types", types).AddMeta("resources", s.store.Len())
	s.render(w, r, doc)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	s.serveDocument(w, r, chi.URLParam(r, "type"), "")
}

func (s *Server) show(w http.ResponseWriter, r *http.Request) {
	s.serveDocument(w, r, chi.URLParam(r, "type"), chi.URLParam(r, "id"))
}

func (s *Server) serveDocument(w http.ResponseWriter, r *http.Request, typ, id string) {
	logger := s.logger.With(zap.String("request_id", GetRequestID(r.Context())))

	doc, err := s.store.Document(typ, id, query.Parse(r), compound.WithLogger(logger))
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	s.render(w, r, doc.AddLink("self", r.URL.RequestURI()))
}

// render encodes doc before writing so that an encoding failure can still
// become an error document.
func (s *Server) render(w http.ResponseWriter, r *http.Request, doc *compound.Document) {
	data, err := s.renderer.Encode(doc)
	if err != nil {
		s.renderError(w, r, fmt.Errorf("failed to encode document: %w", err))
		return
	}

	etag := generateETag(data)
	w.Header().Set("ETag", etag)
	if matchesETag(etag, parseIfNoneMatch(r.Header.Get("If-None-Match"))) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", response.MediaType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("failed to write response",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.Error(err),
		)
	}
}

// renderError maps err to a status and writes an error document
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	var paramErr *query.InvalidParameterError
	switch {
	case errors.As(err, &paramErr):
		response.RenderError(w, http.StatusBadRequest, err)
	case errors.Is(err, fixture.ErrNotFound):
		response.RenderError(w, http.StatusNotFound, err)
	default:
		s.logger.Error("failed to serve document",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.Error(err),
		)
		response.RenderError(w, http.StatusInternalServerError, errors.New("the document could not be rendered"))
	}
}

// ListenAndServe listens on the configured address and serves until ctx is done
func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is done, then shuts down gracefully
// within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", zap.String("addr", listener.Addr().String()))
		errChan <- httpServer.Serve(listener)
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().ShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down server", zap.Duration("timeout", timeout))
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	return nil
}
