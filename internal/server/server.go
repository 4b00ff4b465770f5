// Package server exposes projects over a JSON HTTP API.
//
// Every workspace is an independent project stored under its own key prefix
// in a shared backend. Workspaces are identified by UUIDs and survive server
// restarts when the backend is persistent.
//
//	POST   /workspaces                        create a workspace
//	GET    /workspaces/{id}                   summary
//	DELETE /workspaces/{id}                   reset to defaults
//	PUT    /workspaces/{id}/board             set board dimensions
//	PUT    /workspaces/{id}/name              rename
//	POST   /workspaces/{id}/paint             paint one cell
//	GET    /workspaces/{id}/shapes            shape file
//	GET    /workspaces/{id}/project           project file
//	PUT    /workspaces/{id}/project           import a project file
//	GET    /workspaces/{id}/palette           palette colors
//	POST   /workspaces/{id}/palette           add a color
//	DELETE /workspaces/{id}/palette/{color}   remove a color
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/boardcreator/pkg/errors"
	"github.com/matzehuels/boardcreator/pkg/project"
	"github.com/matzehuels/boardcreator/pkg/storage"
)

// maxBodySize bounds request bodies, including imported project files.
const maxBodySize = 4 << 20

// Server serves the workspace API.
type Server struct {
	kv     storage.Store
	logger *log.Logger
	opts   []project.Option
	now    func() time.Time

	mu         sync.Mutex
	workspaces map[string]*workspace
}

// workspace serializes access to one project.
type workspace struct {
	mu   sync.Mutex
	proj *project.Store
}

// New creates a server over kv. opts are applied to every workspace project.
func New(kv storage.Store, logger *log.Logger, opts ...project.Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		kv:         kv,
		logger:     logger,
		opts:       append([]project.Option{project.WithLogger(logger)}, opts...),
		now:        time.Now,
		workspaces: make(map[string]*workspace),
	}
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/workspaces", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleSummary)
			r.Delete("/", s.handleClear)
			r.Put("/board", s.handleSetBoard)
			r.Put("/name", s.handleSetName)
			r.Post("/paint", s.handlePaint)
			r.Get("/shapes", s.handleShapes)
			r.Get("/project", s.handleExport)
			r.Put("/project", s.handleImport)
			r.Get("/palette", s.handlePalette)
			r.Post("/palette", s.handleAddColor)
			r.Delete("/palette/{color}", s.handleRemoveColor)
		})
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path,
			"status", ww.Status(), "duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// prefix returns the storage key prefix of a workspace.
func prefix(id string) string {
	return "ws:" + id + ":"
}

// create makes a new workspace and initializes its project.
func (s *Server) create(ctx context.Context) (string, error) {
	id := uuid.NewString()
	proj := project.New(storage.Scope(s.kv, prefix(id)), s.opts...)
	if err := proj.Load(ctx); err != nil {
		return "", err
	}
	s.mu.Lock()
	s.workspaces[id] = &workspace{proj: proj}
	s.mu.Unlock()
	s.logger.Info("workspace created", "id", id)
	return id, nil
}

// lookup returns the workspace for id, loading it from storage when it was
// created by an earlier process.
func (s *Server) lookup(ctx context.Context, id string) (*workspace, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid workspace id %q", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ws, ok := s.workspaces[id]; ok {
		return ws, nil
	}

	kv := storage.Scope(s.kv, prefix(id))
	_, ok, err := kv.Get(ctx, project.KeyFileName)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "look up workspace %s", id)
	}
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "workspace %s not found", id)
	}
	proj := project.New(kv, s.opts...)
	if err := proj.Load(ctx); err != nil {
		return nil, err
	}
	ws := &workspace{proj: proj}
	s.workspaces[id] = ws
	return ws, nil
}

// withProject runs fn with the locked project of the request's workspace.
func (s *Server) withProject(w http.ResponseWriter, r *http.Request, fn func(*project.Store) error) {
	id := chi.URLParam(r, "id")
	ws, err := s.lookup(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if err := fn(ws.proj); err != nil {
		writeError(w, err)
	}
}
