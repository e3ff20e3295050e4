package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hamed0406/statuswatch/internal/domain"
	"github.com/hamed0406/statuswatch/internal/httpapi/middleware"
)

// StatusSource exposes the monitor's current view.
type StatusSource interface {
	Snapshot() (domain.MonitorState, *domain.CheckResult)
}

type Server struct {
	Logger   *zap.Logger
	Target   string
	Status   StatusSource
	Registry *prometheus.Registry
	// StatusRPM limits /status per client IP; 0 disables the limit.
	StatusRPM int
}

func NewServer(l *zap.Logger, target string, status StatusSource, reg *prometheus.Registry) *Server {
	return &Server{Logger: l, Target: target, Status: status, Registry: reg, StatusRPM: 120}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.With(middleware.RateLimit(s.StatusRPM, s.StatusRPM/2)).Get("/status", s.handleStatus)

	if s.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{}))
	}
	return r
}

type statusResponse struct {
	Target        string              `json:"target"`
	Current       domain.Status       `json:"current"`
	LastAnnounced domain.Status       `json:"last_announced"`
	LastResult    *domain.CheckResult `json:"last_result"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st, last := s.Status.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(statusResponse{
		Target:        s.Target,
		Current:       st.Current,
		LastAnnounced: st.LastAnnounced,
		LastResult:    last,
	})
}

// ListenAndServe serves until ctx is cancelled or the listener fails,
// then shuts the server down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.Logger.Info("status_listen", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
