package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/giygas/medreminder/board"
	"github.com/giygas/medreminder/clock"
	"github.com/giygas/medreminder/config"
	"github.com/giygas/medreminder/data"
	"github.com/giygas/medreminder/handlers"
	"github.com/giygas/medreminder/health"
	"github.com/giygas/medreminder/interfaces"
	"github.com/giygas/medreminder/logging"
	"github.com/giygas/medreminder/monitor"
	"github.com/giygas/medreminder/push"
	"github.com/giygas/medreminder/scheduler"
	"github.com/giygas/medreminder/server"
	"github.com/giygas/medreminder/validation"
)

func loadEnv() {
	// Get the working directory and read the env variables
	if err := godotenv.Load(); err == nil {
		return
	}

	// If failed, try loading from executable directory
	ex, err := os.Executable()
	if err != nil {
		slog.Warn("Failed to get executable path", "error", err)
		return
	}
	exPath := filepath.Dir(ex)
	if err := godotenv.Load(filepath.Join(exPath, ".env")); err != nil {
		slog.Info("No .env file found, using environment only")
	}
}

func newPusher(cfg config.PushConfig) interfaces.Pusher {
	pusher, err := push.New(cfg)
	if err != nil {
		// Reminders still reach the board; only the phone copy is lost
		logging.Error("Push provider unavailable, falling back to log", "provider", cfg.Provider, "error", err)
		return push.NewLogPusher()
	}
	return pusher
}

func main() {
	loadEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger(logging.Options{
		Dir:            cfg.LogDir,
		Level:          cfg.LogLevel,
		Env:            cfg.Env,
		RetentionWeeks: cfg.LogRetentionWeeks,
		MaxFileSize:    cfg.MaxLogFileSize,
	})
	defer logging.Close()

	loc, err := cfg.Location()
	if err != nil {
		logging.Error("Invalid timezone", "timezone", cfg.Timezone, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Dataset
	store := data.NewDataContainer()
	store.SetServerStartTime(time.Now())
	validator := validation.NewDataValidator()
	loader := data.NewLoader(store, validator, cfg.DatasetFile)
	if err := loader.Load(); err != nil {
		logging.Error("Failed to load dataset", "error", err)
		os.Exit(1)
	}
	if cfg.DatasetFile != "" {
		go func() {
			if err := loader.Watch(ctx); err != nil {
				logging.Warn("Dataset hot reload disabled", "error", err)
			}
		}()
	}

	// Board, push and monitor
	clk := clock.Real{}
	notificationBoard := board.New(clk, cfg.NotificationTTL)
	dispatcher := push.NewDispatcher(notificationBoard, newPusher(cfg.Push), cfg.Push.RatePerSec, cfg.Push.Timeout)
	mon := monitor.New(store, clk, dispatcher, loc)

	sched := scheduler.NewScheduler(mon, cfg.TickInterval, loc)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}

	handler := handlers.NewHTTPHandler(handlers.Dependencies{
		DataStore:     store,
		Validator:     validator,
		Board:         notificationBoard,
		Monitor:       mon,
		HealthChecker: health.NewHealthChecker(store, mon, cfg.TickInterval),
		Clock:         clk,
	})
	srv := server.NewServer(cfg, handler)

	// Profiling endpoint (accessible at /debug/pprof/) - only for local dev
	if cfg.Env == config.EnvDevelopment {
		go func() {
			logging.Info("Profiling server started at http://localhost:6060/debug/pprof/")
			if err := http.ListenAndServe("localhost:6060", nil); err != nil {
				logging.Warn("Profiling server failed", "error", err)
			}
		}()
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	logging.Info(fmt.Sprintf("Reminding %s", store.GetDataset().Patient),
		"timezone", loc.String(),
		"push_provider", cfg.Push.Provider,
		"dataset", store.GetSource())

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		logging.Error("Server failed to start", "error", err)
	}

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Server shutdown failed", "error", err)
	}

	logging.Info("Waiting for in-flight push notifications...")
	dispatcher.Wait()

	logging.Info("Shutdown complete")
}
