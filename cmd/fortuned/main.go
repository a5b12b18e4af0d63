package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	httpadapter "github.com/YuGyeong-Kim02/mbtifortune/internal/adapters/http"
	"github.com/YuGyeong-Kim02/mbtifortune/internal/adapters/llm/openrouter"
	"github.com/YuGyeong-Kim02/mbtifortune/internal/adapters/web"
	"github.com/YuGyeong-Kim02/mbtifortune/internal/app"
	"github.com/YuGyeong-Kim02/mbtifortune/internal/config"
)

func main() {
	// A local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// Read per request so a key added later is picked up and a missing key
	// is a handled response, not a startup crash.
	apiKey := func() string { return os.Getenv("OPENROUTER_API_KEY") }

	llmClient := openrouter.NewClient(
		&http.Client{Timeout: cfg.LLMTimeout},
		apiKey,
		cfg.OpenRouterBaseURL,
		cfg.LLMModel,
		cfg.LLMTemperature,
		logger,
	)

	svc := app.NewFortuneService(llmClient, apiKey)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(svc)
	handler.Register(e)

	if err := web.Register(e); err != nil {
		logger.Error("failed to mount web client", "error", err)
		os.Exit(1)
	}

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
