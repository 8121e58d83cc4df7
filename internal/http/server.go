package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/people-notes-backend/internal/platform/logger"
)

const defaultShutdownTimeout = 10 * time.Second

type Server struct {
	Engine          *gin.Engine
	ShutdownTimeout time.Duration
	log             *logger.Logger
}

func NewServer(cfg RouterConfig, shutdownTimeout time.Duration) *Server {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	return &Server{Engine: NewRouter(cfg), ShutdownTimeout: shutdownTimeout, log: cfg.Log}
}

// Run serves on address until ctx is cancelled, then drains in-flight
// requests for up to ShutdownTimeout.
func (s *Server) Run(ctx context.Context, address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.Engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if s.log != nil {
			s.log.Info("HTTP server listening", "addr", address)
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
		defer cancel()
		if s.log != nil {
			s.log.Info("HTTP server shutting down", "timeout", s.ShutdownTimeout.String())
		}
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
