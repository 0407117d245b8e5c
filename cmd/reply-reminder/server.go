package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/smith3v/reply-reminder/pkg/config"
	"github.com/smith3v/reply-reminder/pkg/logger"
)

type server struct {
	httpServer *http.Server
}

func newServer(cfg config.ServerConfig, handler http.Handler) *server {
	return &server{httpServer: &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		ErrorLog:          log.New(slogWriter{}, "", 0),
	}}
}

// Run serves until Shutdown is called.
func (s *server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// slogWriter routes net/http's internal error log into the application logger.
type slogWriter struct{}

func (slogWriter) Write(p []byte) (int, error) {
	logger.Error("http server error", "message", string(p))
	return len(p), nil
}
