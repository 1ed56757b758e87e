package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/openfest/festival-ui-api/config"
	httpx "github.com/openfest/festival-ui-api/internal/http"
	"github.com/openfest/festival-ui-api/internal/observability/statsd"
	"github.com/openfest/festival-ui-api/internal/service"
)

// ServerDeps contains everything the HTTP server runtime needs.
type ServerDeps struct {
	Config      *config.AppConfig
	Auth        *service.AuthService
	Guards      *service.Guards
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildHTTPHandler assembles the full middleware chain around the router.
// Order: Recover -> Logging -> EdgeFilter -> Router.
func BuildHTTPHandler(deps *ServerDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var metrics statsd.Sink
	if deps.Config.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: deps.Config.Metrics.StatsdAddress,
			Prefix:  deps.Config.Metrics.StatsdPrefix,
			Logger:  logger,
		})
		if err != nil {
			logger.Warn("statsd client unavailable, metrics disabled", "error", err)
		} else {
			metrics = client
		}
	}

	router := httpx.NewRouterWithEdge(httpx.RouterServices{
		Auth:         deps.Auth,
		Guards:       deps.Guards,
		Users:        userDirectory(deps.DB),
		CookieDomain: deps.Config.HTTP.CookieDomain,
		DefaultDeny:  deps.Config.DefaultDeny,
		Logger:       logger,
	}, httpx.EdgeFilterConfig{
		DefaultDeny: deps.Config.DefaultDeny,
		Metrics:     metrics,
	})

	h := httpx.Logging(logger)(router)
	h = httpx.Recover(logger)(h)
	return h
}

// RunHTTPServer serves until the context is canceled or a listener error
// occurs, then drains connections within the configured shutdown budget.
func RunHTTPServer(ctx context.Context, deps *ServerDeps) error {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpCfg := deps.Config.HTTP
	addr := httpCfg.Addr
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      BuildHTTPHandler(deps),
		ReadTimeout:  httpCfg.ReadTimeout,
		WriteTimeout: httpCfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("HTTP server stopped")
	return nil
}
