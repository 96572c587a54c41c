package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/seu-repo/aloy-nlp/internal/adapter/ai/completion"
	"github.com/seu-repo/aloy-nlp/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/aloy-nlp/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/aloy-nlp/internal/adapter/nlp"
	"github.com/seu-repo/aloy-nlp/internal/service/classifier"
	"github.com/seu-repo/aloy-nlp/internal/service/health"
	"github.com/seu-repo/aloy-nlp/internal/service/interpreter"
	"github.com/seu-repo/aloy-nlp/pkg/config"
)

const (
	serviceName    = "aloy-nlp"
	serviceVersion = "v1.0.0"
)

func main() {
	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting Aloy NLP API",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	cfg.Normalize(logger)

	if cfg.Logging.Debug {
		devLogger, err := zap.NewDevelopment()
		if err == nil {
			logger = devLogger
		}
		logger.Info("Effective configuration",
			zap.String("http", fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)),
			zap.String("llm_url", cfg.LLM.URL),
			zap.String("llm_model", cfg.LLM.Model),
			zap.Int("llm_retries", cfg.LLM.Retries),
			zap.Bool("llm_fallback", cfg.LLM.Fallback),
			zap.String("annotator", cfg.NLP.Annotator),
		)
	}

	// 3. Initialize Linguistic Annotator
	annotator := nlp.New(cfg.NLP.Annotator, logger)

	// 4. Initialize Remote Model Client
	modelClient := completion.NewClient(completion.Config{
		URL:         cfg.LLM.URL,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		TopP:        cfg.LLM.TopP,
		Timeout:     cfg.LLM.Timeout,
		Retries:     cfg.LLM.Retries,
		Fallback:    cfg.LLM.Fallback,
	}, logger)

	// 5. Initialize Services (Business Logic Layer)
	classifierService := classifier.NewService(annotator, logger)
	interpreterService := interpreter.NewService(classifierService, modelClient, logger)

	// 6. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(middleware.NewCORS(cfg.CORS))
	app.Use(middleware.CircuitBreaker(logger))

	// Health Check Endpoints
	healthService := health.NewService(&health.Config{
		Version:       serviceVersion,
		ModelURL:      cfg.LLM.URL,
		ModelFallback: cfg.LLM.Fallback,
	}, logger)
	health.NewFiberHandler(healthService).RegisterRoutes(app)

	// Metrics endpoint for Prometheus
	app.Get("/metrics", func(c *fiber.Ctx) error {
		handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		handler(c.Context())
		return nil
	})

	// Interpretation endpoint
	interpretHandler := handlers.NewInterpretHandler(interpreterService, logger)
	app.Post("/interpret", interpretHandler.Interpret)

	// 7. Start HTTP Server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		logger.Info("Starting HTTP Server", zap.String("addr", addr))
		if err := app.Listen(addr); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 8. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}
