// Command aisumo serves the AI tool catalog and runs one-off seed and fetch
// jobs against the configured backend.
//
// Usage:
//
//	aisumo [-env-file .env] serve|seed|fetch
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"aisumo/internal/blob"
	"aisumo/internal/catalog"
	"aisumo/internal/config"
	"aisumo/internal/httpapi"
	"aisumo/internal/logging"
	"aisumo/internal/persistence"
	"aisumo/pkg/domain"
)

const shutdownGrace = 10 * time.Second

var exitFunc = os.Exit

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	exitFunc(code)
}

func cli(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("aisumo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	envFile := fs.String("env-file", ".env", "optional dotenv file with AISUMO_* settings")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	cmd := fs.Arg(0)
	if cmd == "" {
		cmd = "serve"
	}
	if cmd != "serve" && cmd != "seed" && cmd != "fetch" {
		_, _ = fmt.Fprintf(stderr, "unknown command %q (want serve, seed or fetch)\n", cmd)
		return 2
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	logger, err := logging.New(cfg.LogLevel, cfg.Development())
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "logging: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	a, err := openApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		_, _ = fmt.Fprintf(stderr, "startup: %v\n", err)
		return 1
	}
	defer a.close()

	switch cmd {
	case "seed":
		err = runSeed(ctx, a, stdout)
	case "fetch":
		err = runFetch(ctx, a, stdout)
	default:
		err = runServe(ctx, cfg, a)
	}
	if err != nil {
		logger.Error(cmd+" failed", zap.Error(err))
		_, _ = fmt.Fprintf(stderr, "%s: %v\n", cmd, err)
		return 1
	}
	return 0
}

// app holds two stores over one backend: the public site and the admin area
// keep separate in-memory state and see each other's writes only by fetching.
type app struct {
	backend  domain.TableStore
	blobs    blob.Store
	site     *catalog.Store
	admin    *catalog.Admin
	registry *prometheus.Registry
	logger   *zap.Logger
}

func openApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	backend, err := persistence.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Storage.Driver, err)
	}
	blobs, err := blob.Open(ctx, cfg.Blob)
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("open %s blob store: %w", cfg.Blob.Driver, err)
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := catalog.NewPrometheusMetrics(reg)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	site := catalog.New(backend, catalog.WithLogger(logger.Named("catalog.site")), catalog.WithMetrics(metrics))
	store := catalog.New(backend, catalog.WithLogger(logger.Named("catalog.admin")), catalog.WithMetrics(metrics))
	logger.Info("storage ready",
		zap.String("driver", string(cfg.Storage.Driver)),
		zap.String("blob_driver", string(blobs.Driver())))
	return &app{backend: backend, blobs: blobs, site: site, admin: catalog.NewAdmin(store, blobs), registry: reg, logger: logger}, nil
}

func (a *app) close() {
	if err := a.backend.Close(); err != nil {
		a.logger.Warn("close store", zap.Error(err))
	}
}

func runSeed(ctx context.Context, a *app, stdout io.Writer) error {
	if err := a.admin.SeedDatabase(ctx); err != nil {
		return err
	}
	return json.NewEncoder(stdout).Encode(a.admin.Stats())
}

func runFetch(ctx context.Context, a *app, stdout io.Writer) error {
	report := a.admin.FetchAll(ctx)
	for _, t := range report.Tables {
		status := "kept"
		switch {
		case t.Err != nil:
			status = "error: " + t.Err.Error()
		case t.Replaced():
			status = "replaced"
		}
		if _, err := fmt.Fprintf(stdout, "%-16s rows=%-4d %s\n", t.Table, t.Rows, status); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(stdout, "seeded=%t\n", a.admin.IsDatabaseSeeded())
	return err
}

func runServe(ctx context.Context, cfg config.Config, a *app) error {
	a.site.FetchAll(ctx)
	a.admin.FetchAll(ctx)
	go a.site.Poll(ctx, cfg.PublicRefresh)
	handler := httpapi.New(httpapi.Options{
		Site:     catalog.NewSite(a.site),
		Admin:    a.admin,
		Blobs:    a.blobs,
		Auth:     httpapi.TokenAuthenticator{Token: cfg.AdminToken},
		Logger:   a.logger.Named("http"),
		Gatherer: a.registry,
	}).Routes()
	if cfg.AdminToken == "" {
		a.logger.Warn("AISUMO_ADMIN_TOKEN is empty; admin API is disabled")
	}

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	a.logger.Info("listening", zap.String("addr", cfg.HTTPAddr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
