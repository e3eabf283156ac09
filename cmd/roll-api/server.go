package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rollforge/roll-api/internal/config"
	"github.com/rollforge/roll-api/internal/dicelang"
	"github.com/rollforge/roll-api/internal/handlers/httpapi"
	"github.com/rollforge/roll-api/internal/orchestrators/roller"
	"github.com/rollforge/roll-api/internal/pkg/clock"
	"github.com/rollforge/roll-api/internal/pkg/idgen"
	"github.com/rollforge/roll-api/internal/pkg/rng"
	"github.com/rollforge/roll-api/internal/redis"
	"github.com/rollforge/roll-api/internal/repositories/rollhistory"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  `Start the roll-api HTTP server. Configuration comes from the environment: PORT, REDIS_ADDR, REDIS_PASSWORD, HISTORY_TTL.`,
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	redisClient, err := redis.NewClient(cfg.RedisAddr, &redis.Options{
		Password: cfg.RedisPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("failed to close redis client", "error", err)
		}
	}()

	historyRepo, err := rollhistory.NewRedisRepository(&rollhistory.Config{
		Client: redisClient,
		Clock:  clock.New(),
	})
	if err != nil {
		return fmt.Errorf("failed to create history repository: %w", err)
	}

	engine, err := dicelang.NewEngine(&dicelang.Config{
		Roller: rng.NewToolkit(),
	})
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	rollService, err := roller.NewOrchestrator(&roller.Config{
		HistoryRepo: historyRepo,
		IDGenerator: idgen.NewUUID("roll"),
		Engine:      engine,
		HistoryTTL:  cfg.HistoryTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to create roll orchestrator: %w", err)
	}

	handler, err := httpapi.NewHandler(&httpapi.Config{
		RollService: rollService,
	})
	if err != nil {
		return fmt.Errorf("failed to create HTTP handler: %w", err)
	}

	mux := http.NewServeMux()
	handler.Register(mux)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down HTTP server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("graceful shutdown failed, forcing close", "error", err)
			return srv.Close()
		}
		slog.Info("server stopped gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}
