// Package server serves the task list REST API over any service.Service, usually the sqlite store.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	charmLog "github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/dori/taskflow/internal/service"
)

// defaultShutdownTimeout bounds graceful shutdown once the context is cancelled.
const defaultShutdownTimeout = 5 * time.Second

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Logger is the subset of a structured logger the server writes to.
type Logger interface {
	Info(msg any, keyvals ...any)
	Error(msg any, keyvals ...any)
}

// Server routes REST calls to a backend.
type Server struct {
	store  service.Service
	logger Logger
	newID  func() string
	mux    *http.ServeMux
}

// New builds the handler. A nil logger discards output.
func New(store service.Service, logger Logger) *Server {
	if logger == nil {
		logger = charmLog.New(io.Discard)
	}
	s := &Server{
		store:  store,
		logger: logger,
		newID:  uuid.NewString,
		mux:    http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("GET /api/task-lists", s.handleListTaskLists)
	s.mux.HandleFunc("POST /api/task-lists", s.handleCreateTaskList)
	s.mux.HandleFunc("GET /api/task-lists/{id}", s.handleGetTaskList)
	s.mux.HandleFunc("PUT /api/task-lists/{id}", s.handleUpdateTaskList)
	s.mux.HandleFunc("DELETE /api/task-lists/{id}", s.handleDeleteTaskList)

	s.mux.HandleFunc("GET /task-lists/{listId}/tasks", s.handleListTasks)
	s.mux.HandleFunc("POST /task-lists/{listId}/tasks", s.handleCreateTask)
	s.mux.HandleFunc("GET /task-lists/{listId}/tasks/{taskId}", s.handleGetTask)
	s.mux.HandleFunc("PUT /task-lists/{listId}/tasks/{taskId}", s.handleUpdateTask)
	s.mux.HandleFunc("DELETE /task-lists/{listId}/tasks/{taskId}", s.handleDeleteTask)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.requestLogging(s.requestID(limitBody(s.mux))).ServeHTTP(w, r)
}

// Run listens on addr and blocks until ctx is cancelled or the listener fails.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	if ctx == nil {
		ctx = context.Background()
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErrCh := make(chan error, 1)
	go func() {
		serveErrCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErrCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen and serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()

		shutdownErr := httpServer.Shutdown(shutdownCtx)
		serveErr := <-serveErrCh
		if shutdownErr != nil && !errors.Is(shutdownErr, context.Canceled) {
			return fmt.Errorf("shutdown server: %w", shutdownErr)
		}
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return fmt.Errorf("serve after shutdown: %w", serveErr)
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
