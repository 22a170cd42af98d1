package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cms "github.com/goliatone/go-bilingual-cms"
	"github.com/goliatone/go-bilingual-cms/internal/di"
	"github.com/goliatone/go-bilingual-cms/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		log.Fatalf("cms server: %v", err)
	}
}

type server struct {
	module    *cms.Module
	registry  *di.DispatcherRegistry
	scheduler *scheduler
	http      *http.Server
}

func (s *server) close() {
	s.scheduler.Stop()
	s.registry.Close()
	_ = s.module.Close()
}

func run(ctx context.Context, args []string) error {
	srv, err := buildServer(ctx, args)
	if err != nil {
		return err
	}
	defer srv.close()

	logger := logging.ModuleLogger(srv.module.LoggerProvider(), "cms.server")
	srv.scheduler.Start()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	logger.Info("server.listening", "addr", srv.http.Addr, "jobs", srv.scheduler.Len())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("server.stopped")
	return nil
}

func buildServer(ctx context.Context, args []string) (*server, error) {
	fs := flag.NewFlagSet("cms-server", flag.ContinueOnError)
	addr := fs.String("addr", "", "Listen address; defaults to CMS_HTTP_ADDR or :8080")
	seedPath := fs.String("seed", "", "YAML file with navbar, contact and page settings to seed")
	reseed := fs.Bool("reseed", false, "Overwrite singletons that are already stored when seeding")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := cms.DefaultConfig()
	cfg.Features.Logger = true
	if err := cms.ApplyEnv(&cfg); err != nil {
		return nil, fmt.Errorf("apply environment: %w", err)
	}
	if *addr != "" {
		cfg.HTTP.Addr = *addr
	}

	sched := newScheduler(logging.NoOp())
	registry := di.NewDispatcherRegistry()
	module, err := cms.New(cfg,
		di.WithCommandRegistry(registry),
		di.WithCronRegistrar(sched.Register),
	)
	if err != nil {
		registry.Close()
		return nil, fmt.Errorf("initialise cms module: %w", err)
	}
	sched.logger = logging.ModuleLogger(module.LoggerProvider(), "cms.scheduler")

	if *seedPath != "" {
		data, err := os.ReadFile(*seedPath)
		if err != nil {
			registry.Close()
			_ = module.Close()
			return nil, fmt.Errorf("read seed: %w", err)
		}
		report, err := cms.SeedFromYAML(ctx, cms.SeedOptions{Records: module.Records(), Data: data, Ensure: *reseed})
		if err != nil {
			registry.Close()
			_ = module.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
		logging.ModuleLogger(module.LoggerProvider(), "cms.server").Info("server.seeded", "applied", report.Applied, "skipped", report.Skipped)
	}

	return &server{
		module:    module,
		registry:  registry,
		scheduler: sched,
		http: &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           module.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}
