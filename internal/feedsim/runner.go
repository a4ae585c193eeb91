package feedsim

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/medalwatch/podium/pkg/logger"
)

// Server timeout constants.
const (
	readTimeout       = 5 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 2 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Run serves the simulated feed until the context is cancelled.
func Run(ctx context.Context, config *Config) error {
	log := logger.Get()

	gen := NewGenerator(config.Entrants, config.Seed)
	srv := NewServer(gen.Events(config.InitialEvents))

	log.Info(ctx, "starting feed simulator",
		logger.String("addr", config.Addr),
		logger.Int("entrants", gen.Entrants()),
		logger.Int("initialEvents", srv.EventCount()),
		logger.Duration("mutateEvery", config.MutateEvery),
		logger.Any("seed", config.Seed))

	mux := http.NewServeMux()
	srv.Register(mux)

	httpServer := &http.Server{
		Addr:              config.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("feed server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		mutate(gCtx, config.MutateEvery, gen, srv)
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("feed server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info(context.Background(), "feed simulator stopped",
		logger.Int("events", srv.EventCount()),
		logger.Int("requests", srv.RequestCount()))
	return nil
}

// mutate appends a fresh event at the configured pace. A non-positive
// pace leaves the document static.
func mutate(ctx context.Context, every time.Duration, gen *Generator, srv *Server) {
	if every <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ev := gen.Event()
			srv.Append(ev)
			logger.Get().Info(ctx, "appended event",
				logger.String("title", ev.Title),
				logger.Int("events", srv.EventCount()))
		}
	}
}
