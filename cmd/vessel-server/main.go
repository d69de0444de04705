// Where: cmd/vessel-server/main.go
// What: HTTP facade entrypoint.
// Why: Serve repo lookup, scan pass-through, and issue tracking over JSON.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vessel-dev/vessel/internal/issues"
	"github.com/vessel-dev/vessel/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, server.ConfigFromEnv(), logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg server.Config, logger *zap.Logger) error {
	srv, err := buildServer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	httpServer := srv.HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", httpServer.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down")
	return httpServer.Shutdown(shutdownCtx)
}

// buildServer picks the snapshot backend: S3 when a bucket is configured,
// otherwise the local issues directory.
func buildServer(ctx context.Context, cfg server.Config, logger *zap.Logger) (*server.Server, error) {
	deps := server.Dependencies{}
	if cfg.IssuesS3Bucket != "" {
		store, err := issues.NewS3Store(ctx, issues.S3Options{
			Bucket:    cfg.IssuesS3Bucket,
			Prefix:    cfg.IssuesS3Prefix,
			Region:    cfg.IssuesS3Region,
			Endpoint:  cfg.IssuesS3Endpoint,
			AccessKey: cfg.IssuesS3AccessKey,
			SecretKey: cfg.IssuesS3SecretKey,
		}, logger.Named("snapshots"))
		if err != nil {
			return nil, fmt.Errorf("init s3 snapshot store: %w", err)
		}
		deps.Snapshots = store
		logger.Info("issue snapshots stored in s3", zap.String("bucket", cfg.IssuesS3Bucket))
	}
	return server.New(cfg, logger, deps), nil
}
