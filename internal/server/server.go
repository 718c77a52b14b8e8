// Package server exposes searches over HTTP and websockets.
//
// Routes:
//
//	GET /healthz                       liveness
//	GET /version                       build metadata
//	GET /api/gen?q=<vector>            generator run as JSON
//	GET /api/trans?q=<vector>          transitioner run as JSON
//	GET /api/graph?pattern=&format=    rendered state graph
//	GET /ws/gen?q=<vector>             generator run streamed over a websocket
//
// Every run gets the default pattern and time limits, so a request cannot
// keep a search busy forever.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/jugglesearch/pkg/pipeline"
)

// shutdownTimeout bounds how long ListenAndServe waits for open requests.
const shutdownTimeout = 5 * time.Second

// Server serves the search API.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	router   chi.Router
	upgrader websocket.Upgrader
}

// New creates a server that runs searches through runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hooks)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/api", func(r chi.Router) {
		r.Get("/gen", s.handleGen)
		r.Get("/trans", s.handleTrans)
		r.Get("/graph", s.handleGraph)
	})
	r.Get("/ws/gen", s.handleGenStream)

	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
