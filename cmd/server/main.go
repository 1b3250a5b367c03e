package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/utsavratan/gestureflow/pkg/award"
	"github.com/utsavratan/gestureflow/pkg/catalog"
	"github.com/utsavratan/gestureflow/pkg/config"
	"github.com/utsavratan/gestureflow/pkg/db"
	"github.com/utsavratan/gestureflow/pkg/engine"
	"github.com/utsavratan/gestureflow/pkg/evaluator"
	"github.com/utsavratan/gestureflow/pkg/ledger"
	"github.com/utsavratan/gestureflow/pkg/notify"
	"github.com/utsavratan/gestureflow/pkg/server"
	"github.com/utsavratan/gestureflow/pkg/stats"
)

func main() {
	// Optional .env for local development; environment wins in production.
	_ = godotenv.Load()

	logger := newLogger()
	slog.SetDefault(logger)

	configPath := getEnv("ACHIEVEMENTS_CONFIG_PATH", "config/achievements.json")
	loader := config.NewLoader(configPath, logger)
	cfg, err := loader.Load()
	if err != nil {
		logger.Error("failed to load achievement config", "path", configPath, "error", err)
		os.Exit(1)
	}
	cat := catalog.NewInMemoryCatalog(cfg, configPath, logger)

	var (
		provider stats.Provider
		levels   ledger.LevelLedger
		awards   award.Repository
		srvOpts  []server.Option
	)

	storeMode := strings.ToLower(getEnv("STORE_MODE", "postgres"))
	switch storeMode {
	case "memory":
		logger.Warn("using in-memory stores, state is lost on restart")
		provider = stats.NewMemoryProvider()
		levels = ledger.NewMemoryLevelLedger()
		awards = award.NewMemoryRepository()
	default:
		dbCfg := db.NewConfigFromEnv()
		conn, err := db.Connect(dbCfg)
		if err != nil {
			logger.Error("failed to connect to database", "host", dbCfg.Host, "error", err)
			os.Exit(1)
		}
		defer func() { _ = conn.Close() }()

		if err := db.Migrate(conn); err != nil {
			logger.Error("failed to apply schema", "error", err)
			os.Exit(1)
		}

		provider = stats.NewPostgresProvider(conn)
		levels = ledger.NewPostgresLevelLedger(conn)
		awards = award.NewPostgresRepository(conn)
		srvOpts = append(srvOpts, server.WithHealthCheck(func() error { return db.Health(conn) }))
	}

	dispatcher := notify.NewDispatcher(newNotificationSink(), newSocialSink(), logger)

	eng := engine.New(cat, provider, evaluator.NewBuiltinRegistry(), levels, awards, dispatcher, logger)
	defer eng.Close()

	srvCfg := server.DefaultConfig()
	srvCfg.Port = getEnvAsInt("HTTP_PORT", srvCfg.Port)
	srv := server.New(srvCfg, eng, logger, srvOpts...)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}

	logger.Info("server exiting")
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// newNotificationSink picks the notification backend. Only the logging sink
// ships today; push delivery plugs in here.
func newNotificationSink() notify.NotificationSink {
	return notify.NewDevLogNotificationSink()
}

func newSocialSink() notify.SocialSink {
	return notify.NewDevLogSocialSink()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
