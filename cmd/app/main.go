package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"transferflow/cmd"
	"transferflow/internal/pkg/telemetry"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	instruments, shutdownTelemetry, err := telemetry.Init(ctx, logger, telemetry.Options{
		ServiceName:  "transferflow",
		StdoutTraces: configs.OTelTracesStdout,
		OTLPEndpoint: configs.OTLPEndpoint,
	})
	if err != nil {
		log.Fatalf("Failed to initialise telemetry: %v", err)
	}

	app, closeApp, err := cmd.NewCompositionRoot(ctx, configs, logger, instruments)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	jobManager := app.NewJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	startWebServer(ctx, &app, configs.HTTPPort)

	jobManager.StopAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = errors.Join(closeApp(), shutdownTelemetry(shutdownCtx)); err != nil {
		logger.Error("Shutdown finished with errors", "error", err)
	}
}

func getConfigs() cmd.Config {
	// A missing .env is fine; the environment may already be set.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	return cmd.Config{
		HTTPPort:            envOr("HTTP_PORT", "8080"),
		Storage:             envOr("STORAGE", cmd.StorageMemory),
		DBHost:              os.Getenv("DB_HOST"),
		DBPort:              envOr("DB_PORT", "5432"),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              os.Getenv("DB_NAME"),
		DBSslMode:           os.Getenv("DB_SSLMODE"),
		MockLatency:         time.Duration(envInt("MOCK_LATENCY_MS", 0)) * time.Millisecond,
		MockFailEvery:       envInt("MOCK_FAIL_EVERY", 0),
		MockSeed:            uint64(envInt("MOCK_SEED", 42)),
		MockOrderCount:      envInt("MOCK_ORDER_COUNT", 40),
		SeedFixtures:        envBool("SEED_FIXTURES", true),
		StatsReportSchedule: os.Getenv("STATS_REPORT_SCHEDULE"),
		OTelTracesStdout:    envBool("OTEL_TRACES_STDOUT", false),
		OTLPEndpoint:        os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		log.Fatalf("%s must be a non-negative integer, got %q", key, raw)
	}
	return v
}

func envBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Fatalf("%s must be a boolean, got %q", key, raw)
	}
	return v
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string) {
	e, err := app.NewRouter(ctx)
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	go func() {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			e.Logger.Fatal(startErr)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
