package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	feed "github.com/medalwatch/podium/internal/adapters/feed"
	status "github.com/medalwatch/podium/internal/adapters/http/status"
	sink "github.com/medalwatch/podium/internal/adapters/sink"
	app "github.com/medalwatch/podium/internal/app"
	"github.com/medalwatch/podium/internal/config"
	"github.com/medalwatch/podium/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// .env files feed the PODIUM_* variables during local development;
	// absence is not an error.
	_ = godotenv.Load()

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env). Invalid
	// configuration is fatal at startup.
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (already validated with the config)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; keeping info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
	}

	// Feed source with the configured bounds.
	source := feed.NewHTTPSource(cfg.FeedURL,
		feed.WithTimeout(cfg.FetchTimeout()),
		feed.WithAuthToken(cfg.FeedAuthToken),
	)

	// Console is always on; the webhook joins when configured.
	reporters := []sink.Reporter{sink.NewConsoleReporter(os.Stdout)}
	if cfg.WebhookURL != "" {
		reporters = append(reporters, sink.NewWebhookReporter(cfg.WebhookURL))
	}

	w := app.New(
		app.WithLogger(log),
		app.WithSource(source),
		app.WithReporters(reporters...),
		app.WithTopN(cfg.TopN),
		app.WithInterval(cfg.PollInterval()),
	)

	// Status endpoints (/healthz, /metrics).
	mux := http.NewServeMux()
	status.NewHandler().Register(mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info(gCtx, "starting watcher",
			logger.String("feed_url", cfg.FeedURL),
			logger.Int("top_n", cfg.TopN),
			logger.Duration("interval", cfg.PollInterval()),
		)
		return w.Run(gCtx)
	})

	g.Go(func() error {
		log.Info(gCtx, "starting status server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Tear everything down once the context ends, whether from a signal
	// or a failed component.
	g.Go(func() error {
		<-gCtx.Done()
		log.Info(ctx, "shutting down...")

		w.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error(ctx, "server shutdown failed", logger.Error(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error(ctx, "exited with error", logger.Error(err))
		return
	}

	log.Info(ctx, "stopped")
}
