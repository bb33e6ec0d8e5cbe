package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/yndnr/tablesync-go/internal/core/service"
	"github.com/yndnr/tablesync-go/internal/infra/buildinfo"
	"github.com/yndnr/tablesync-go/internal/infra/confloader"
	"github.com/yndnr/tablesync-go/internal/infra/shutdown"
	"github.com/yndnr/tablesync-go/internal/server/config"
	"github.com/yndnr/tablesync-go/internal/server/httpserver"
	"github.com/yndnr/tablesync-go/internal/storage/memory"
	"github.com/yndnr/tablesync-go/internal/telemetry/logger"
	"github.com/yndnr/tablesync-go/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		addr        = flag.String("addr", "", "Listen address (overrides server.http.addr)")
		logLevel    = flag.String("log-level", "", "Log level (overrides log.level)")
		noSeed      = flag.Bool("no-seed", false, "Start with an empty table")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("tablesync-server %s\n", buildinfo.String())
		return nil
	}

	overrides := map[string]any{}
	if *addr != "" {
		overrides["server.http.addr"] = *addr
	}
	if *logLevel != "" {
		overrides["log.level"] = *logLevel
	}
	if *noSeed {
		overrides["table.seed"] = false
	}

	cfg, err := config.Load(*configFile, overrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	log.Info("starting tablesync-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Get().Commit,
		"config", *configFile)

	store := memory.New(memory.WithBTreeDegree(cfg.Table.BTreeDegree))

	var registry *metric.Registry
	var recorder service.Recorder
	if cfg.Metrics.Enabled {
		registry = metric.Global()
		recorder = registry
	}

	table := service.NewTableService(store,
		service.WithLogger(log),
		service.WithRecorder(recorder),
	)
	if registry != nil {
		if err := registry.RegisterTable(table); err != nil {
			return fmt.Errorf("register table metrics: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Table.Seed {
		if err := table.Seed(ctx, service.DefaultSeed()); err != nil {
			return fmt.Errorf("seed table: %w", err)
		}
	}

	router := httpserver.NewRouter(&httpserver.RouterConfig{
		Table:          table,
		Logger:         log,
		Metrics:        registry,
		RateLimitRPS:   rateLimitRPS(cfg),
		RateLimitBurst: cfg.Server.HTTP.RateLimit.Burst,
		EnableAudit:    true,
	})

	srv := httpserver.New(cfg.Server.HTTP.Addr, router,
		httpserver.WithReadHeaderTimeout(cfg.Server.HTTP.ReadHeaderTimeout),
		httpserver.WithBaseContext(ctx),
	)

	shutdownHandler := shutdown.NewHandler(cfg.Server.HTTP.ShutdownTimeout)
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("stopping HTTP server")
		return srv.Shutdown(ctx)
	})

	if *configFile != "" {
		watcher, err := watchConfig(*configFile, log)
		if err != nil {
			log.Warn("config hot reload disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown(func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.Info("HTTP server listening", "addr", srv.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		return shutdownHandler.Wait(egctx)
	})

	if err := eg.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

func rateLimitRPS(cfg *config.ServerConfig) float64 {
	if !cfg.Server.HTTP.RateLimit.Enabled {
		return 0
	}
	return cfg.Server.HTTP.RateLimit.RPS
}

// watchConfig re-reads the config file on change and applies the new log
// level. Other settings need a restart.
func watchConfig(path string, log logger.Logger) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		w.Stop()
		return nil, err
	}

	w.OnChange(func(string) {
		cfg, err := config.Load(path, nil)
		if err != nil {
			log.Warn("ignoring invalid config change", "error", err)
			return
		}
		if cfg.Log.Level != logger.GetLevel() {
			logger.SetLevel(cfg.Log.Level)
			log.Info("log level changed", "level", logger.GetLevel())
		}
	})
	w.StartAsync()

	return w, nil
}
