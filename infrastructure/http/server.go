package http

import (
	"context"
	"digest-lab/observability"
	"digest-lab/repositories"
	"digest-lab/services"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

// Server exposes the HTTP API: auth, on-demand digest preview, unsubscribe,
// digest archive search and a health probe.
type Server struct {
	log        *slog.Logger
	auth       services.IAuthService
	digest     services.IDigestService
	archive    repositories.IDigestArchiveRepository
	queue      repositories.IDigestQueueRepository
	monitoring *observability.MonitoringManager
	window     time.Duration
	srv        *http.Server
}

func NewServer(
	log *slog.Logger,
	host string,
	port int,
	auth services.IAuthService,
	digest services.IDigestService,
	archive repositories.IDigestArchiveRepository,
	queue repositories.IDigestQueueRepository,
	monitoring *observability.MonitoringManager,
	digestWindow time.Duration,
) *Server {
	s := &Server{
		log:        log,
		auth:       auth,
		digest:     digest,
		archive:    archive,
		queue:      queue,
		monitoring: monitoring,
		window:     digestWindow,
	}

	r := mux.NewRouter()
	r.Use(s.logging)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v1/auth/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/v1/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/v1/unsubscribe", s.handleUnsubscribe).Methods(http.MethodGet)

	protected := r.NewRoute().Subrouter()
	protected.Use(s.authenticate)
	protected.HandleFunc("/v1/digest", s.handleDigest).Methods(http.MethodGet)
	protected.HandleFunc("/v1/digests", s.handleDigestHistory).Methods(http.MethodGet)

	admin := r.NewRoute().Subrouter()
	admin.Use(s.authenticate, s.requireAdmin)
	admin.HandleFunc("/v1/digests/search", s.handleSearch).Methods(http.MethodGet)

	s.srv = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Run blocks until the context is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	}
}
