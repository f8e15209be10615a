package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bryanwahyu/account-risk/internal/application"
	appanalyses "github.com/bryanwahyu/account-risk/internal/application/analyses"
	"github.com/bryanwahyu/account-risk/internal/config"
	domain "github.com/bryanwahyu/account-risk/internal/domain/analyses"
	"github.com/bryanwahyu/account-risk/internal/infra/db/memory"
	mysqlp "github.com/bryanwahyu/account-risk/internal/infra/db/mysql"
	"github.com/bryanwahyu/account-risk/internal/infra/db/postgres"
	"github.com/bryanwahyu/account-risk/internal/infra/db/sqlite"
	"github.com/bryanwahyu/account-risk/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/account-risk/internal/infra/storage"
	"github.com/bryanwahyu/account-risk/internal/logging"
	"github.com/bryanwahyu/account-risk/internal/middleware"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadEnv()

	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	host := flag.String("host", cfg.Server.Host, "listen host")
	port := flag.Int("port", cfg.Server.Port, "listen port")
	flag.Parse()
	cfg.Server.Host, cfg.Server.Port = *host, *port

	logger := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,

		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	slog.SetDefault(logger)

	ctx := context.Background()

	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	svc := &appanalyses.Service{
		Repo:  repo,
		Clock: application.SystemClock{},
	}

	// init minio (opsional)
	if cfg.Archive.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Archive.Endpoint,
			cfg.Archive.Region,
			cfg.Archive.BucketName,
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			cfg.Archive.UseSSL,
		)
		if err != nil {
			return fmt.Errorf("minio init: %w", err)
		}
		svc.Archive = store
		logger.Info("report archive enabled", "endpoint", cfg.Archive.Endpoint, "bucket", cfg.Archive.BucketName)
	}

	addr := cfg.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpserver.NewRouter(svc, middleware.NewMetrics(), logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-stop:
	}
	logger.Info("shutting down server")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx2)
}

type schemaRepo interface {
	domain.Repository
	EnsureSchema(ctx context.Context) error
}

// openStore connects the configured record store and makes sure its table
// exists. The returned func releases the connection pool.
func openStore(ctx context.Context, cfg *config.Config) (domain.Repository, func(), error) {
	var (
		db   *sql.DB
		repo schemaRepo
		err  error
	)

	switch cfg.Database.Driver {
	case config.DriverMemory:
		slog.Warn("using in-memory store; history is lost on restart")
		return memory.NewAnalysisRepository(), func() {}, nil
	case config.DriverMySQL:
		if db, err = mysqlp.Connect(ctx, cfg.MySQLDSN()); err == nil {
			repo = mysqlp.NewAnalysisRepository(db)
		}
	case config.DriverPostgres:
		if db, err = postgres.Connect(ctx, cfg.PostgresDSN()); err == nil {
			repo = postgres.NewAnalysisRepository(db)
		}
	default:
		path := sqlite.ResolvePath(cfg.Database.Dir, cfg.Database.File)
		slog.Info("sqlite store", "path", path)
		if db, err = sqlite.Connect(ctx, path); err == nil {
			repo = sqlite.NewAnalysisRepository(db)
		}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s connect: %w", cfg.Database.Driver, err)
	}

	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("%s schema: %w", cfg.Database.Driver, err)
	}
	return repo, func() { _ = db.Close() }, nil
}
