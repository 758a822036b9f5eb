// Package httpapi exposes the decat server over a JSON HTTP API.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/asorokin/decat/internal/logging"
	"github.com/asorokin/decat/internal/server/services"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires the application services to HTTP routes.
type Server struct {
	addr      string
	logger    logging.Logger
	users     *services.UserService
	entries   *services.EntryService
	exports   *services.ExportService
	jwtSecret []byte

	httpServer *http.Server
}

func NewServer(addr string, logger logging.Logger, users *services.UserService, entries *services.EntryService, exports *services.ExportService, jwtSecret string) *Server {
	return &Server{
		addr:      addr,
		logger:    logger,
		users:     users,
		entries:   entries,
		exports:   exports,
		jwtSecret: []byte(jwtSecret),
	}
}

// Router builds the route table. Split out from Run so tests can mount it on
// httptest.Server.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.metricsMiddleware)

	r.HandleFunc("/api/ping", s.handlePing).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/api/auth/login-link", s.handleLoginLink).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/verify", s.handleVerify).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/refresh", s.handleRefresh).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/logout", s.handleLogout).Methods(http.MethodPost)

	authed := r.NewRoute().Subrouter()
	authed.Use(s.accessTokenMiddleware)
	authed.HandleFunc("/api/session", s.handleSession).Methods(http.MethodGet)
	authed.HandleFunc("/api/entries", s.handleListEntries).Methods(http.MethodGet)
	authed.HandleFunc("/api/entries", s.handleCreateEntry).Methods(http.MethodPost)
	authed.HandleFunc("/api/entries/{id:[0-9]+}", s.handleUpdateEntry).Methods(http.MethodPut)
	authed.HandleFunc("/api/entries/{id:[0-9]+}", s.handleDeleteEntry).Methods(http.MethodDelete)
	authed.HandleFunc("/api/export", s.handleExport).Methods(http.MethodPost)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
