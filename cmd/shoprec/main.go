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
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rushteam/shoprec/config"
	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/service"
	"github.com/rushteam/shoprec/snapshot"
	"github.com/rushteam/shoprec/store"
)

func main() {
	configPath := flag.String("config", "", "yaml 配置文件路径（可选，环境变量可覆盖）")
	flag.Parse()

	// .env 仅本地开发使用，缺失不报错
	_ = godotenv.Load()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return err
	}

	if cfg.Postgres.DSN == "" {
		return fmt.Errorf("postgres dsn is required (SHOPREC_PG_DSN)")
	}
	pg, err := store.NewPostgresStore(cfg.Postgres.DSN)
	if err != nil {
		return err
	}

	// Redis 可选：配置了才连，用作快照共享存储与动态黑名单
	var kv core.Store
	if cfg.Redis.Addr != "" {
		rs, err := store.NewRedisStore(cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rs.Close()
		kv = rs
	}

	snapshots, err := newSnapshotStore(cfg.Snapshot, kv)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	rec, err := service.New(service.Options{
		Orders:    pg,
		Catalog:   pg,
		Snapshots: snapshots,
		KV:        kv,
		Rec:       cfg.Rec,
		CacheTTL:  cfg.Snapshot.CacheTTL,
		Logger:    logger,
		Metrics:   service.NewMetrics(registry),
	})
	if err != nil {
		return err
	}

	scheduler, err := service.NewScheduler(cfg.Train.Cron, rec, logger)
	if err != nil {
		return err
	}
	if scheduler != nil {
		scheduler.Start()
		defer scheduler.Stop()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.Handle("/", service.Handler(rec, logger))

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.HTTP.Addr).Msg("shoprec listening")
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Str("service", "shoprec").Logger(), nil
}

func newSnapshotStore(cfg config.SnapshotConfig, kv core.Store) (core.SnapshotStore, error) {
	switch cfg.Backend {
	case "file":
		return snapshot.NewFileStore(cfg.Path), nil
	case "redis":
		if kv == nil {
			return nil, fmt.Errorf("snapshot backend %q requires redis.addr", cfg.Backend)
		}
		return snapshot.NewKVStore(kv, cfg.Key), nil
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.Backend)
	}
}
