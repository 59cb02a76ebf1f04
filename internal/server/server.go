package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/modi-mansi/ecommerce/internal/handler"
	"github.com/modi-mansi/ecommerce/internal/middleware"
	"github.com/modi-mansi/ecommerce/internal/validator"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 15 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

type Server struct {
	http   *http.Server
	logger *slog.Logger
}

// echoの組み立て（ミドルウェア・Validator・エラーハンドラ・ルート）
func NewEcho(logger *slog.Logger, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = handler.NewErrorHandler(logger).Handle

	//panicも500としてログに残るようにロガーを一番外側に置く
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	RegisterRoutes(e, h)
	return e
}

func New(addr string, logger *slog.Logger, h Handlers) *Server {
	e := NewEcho(logger, h)
	return &Server{
		http: &http.Server{
			Addr:         addr,
			Handler:      e,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
		logger: logger,
	}
}

// Run はctxが終わるまでサーブし、終わったらgraceful shutdownする
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", slog.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}
