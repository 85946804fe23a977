package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bnema/stockboard-cli/internal/domain"
	"github.com/bnema/stockboard-cli/internal/ports"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 10 * time.Second

// Board is the discussion board as the HTTP surface uses it.
type Board interface {
	LoadPosts(ctx context.Context, view ports.PostView) ([]domain.Post, error)
	SubmitPost(ctx context.Context, view ports.PostView, username, content string) (domain.Post, error)
}

type Config struct {
	Listen string
	Rate   float64
	Burst  int
}

type Server struct {
	echo    *echo.Echo
	board   Board
	limiter *RateLimiter
	cfg     Config
	logger  *slog.Logger
}

func New(board Board, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		echo:    echo.New(),
		board:   board,
		limiter: NewRateLimiter(rate.Limit(cfg.Rate), cfg.Burst),
		cfg:     cfg,
		logger:  logger,
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.routes()

	return s
}

func (s *Server) routes() {
	e := s.echo

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			rctx := c.Request().Context()
			if v.Error == nil {
				s.logger.InfoContext(rctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				s.logger.ErrorContext(rctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())

	limited := s.limiter.Middleware()

	e.GET("/", s.handleIndex)
	e.POST("/posts", s.handleFormPost, limited)
	e.GET("/api/posts", s.handleListPosts)
	e.POST("/api/posts", s.handleCreatePost, limited)
	e.GET("/health", s.handleHealth)
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.InfoContext(gCtx, "starting board server", "address", s.cfg.Listen)
		if err := s.echo.Start(s.cfg.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		s.logger.Info("shutting down board server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return s.limiter.RunCleanup(gCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
