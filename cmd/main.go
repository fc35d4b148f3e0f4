package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/davidbz/pdfnotes/internal/config"
	"github.com/davidbz/pdfnotes/internal/domain"
	"github.com/davidbz/pdfnotes/internal/http"
	"github.com/davidbz/pdfnotes/internal/http/middleware"
	"github.com/davidbz/pdfnotes/internal/observability"
	"github.com/davidbz/pdfnotes/internal/provider/echo"
	"github.com/davidbz/pdfnotes/internal/provider/openai"
	"github.com/davidbz/pdfnotes/internal/provider/registry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	container := buildContainer()

	if err := container.Invoke(run); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run serves until SIGINT/SIGTERM, then drains in-flight requests.
func run(server *http.Server, logger *zap.Logger) error {
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}
	if err := container.Provide(func(cfg *config.ModelConfig) domain.ModelSettings {
		return domain.ModelSettings{
			Model:       cfg.Name,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		}
	}); err != nil {
		log.Fatalf("Failed to provide model settings: %v", err)
	}

	// Observability
	if err := container.Provide(func(cfg *config.LogConfig) (*zap.Logger, error) {
		return observability.InitLogger(cfg.Level)
	}); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// Completer registry
	if err := container.Provide(newCompleterRegistry); err != nil {
		log.Fatalf("Failed to provide registry: %v", err)
	}

	// Domain Services
	if err := container.Provide(newSummarizerService); err != nil {
		log.Fatalf("Failed to provide summarizer service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}

// newCompleterRegistry registers every completer that can be constructed.
// A completer that fails to initialize is logged and left out.
func newCompleterRegistry(cfg *openai.Config, logger *zap.Logger) (domain.CompleterRegistry, error) {
	ctx := context.Background()
	reg := registry.NewRegistry()

	if err := reg.Register(ctx, echo.NewProvider()); err != nil {
		return nil, fmt.Errorf("failed to register echo completer: %w", err)
	}

	logger.Info("initializing OpenRouter client", zap.String("base_url", cfg.BaseURL))
	openrouter, err := openai.NewProvider(*cfg)
	if err != nil {
		logger.Error("failed to initialize OpenRouter client", zap.Error(err))
		return reg, nil
	}
	if cfg.APIKey == "" {
		logger.Warn("OPENROUTER_API_KEY is not set; completion calls will fail")
	}

	if err := reg.Register(ctx, openrouter); err != nil {
		return nil, fmt.Errorf("failed to register OpenRouter completer: %w", err)
	}

	return reg, nil
}

// newSummarizerService selects the configured completer. When it is not
// registered the service starts anyway and reports itself unavailable.
func newSummarizerService(
	cfg *config.Config,
	reg domain.CompleterRegistry,
	settings domain.ModelSettings,
	logger *zap.Logger,
) *domain.SummarizerService {
	ctx := context.Background()

	completer, err := reg.Get(ctx, cfg.Provider)
	if err != nil {
		names, _ := reg.List(ctx)
		logger.Error("completer not available",
			zap.String("provider", cfg.Provider),
			zap.Strings("registered", names),
			zap.Error(err))
		return domain.NewSummarizerService(nil, settings)
	}

	logger.Info("using model",
		zap.String("provider", completer.Name()),
		zap.String("model", settings.Model),
		zap.Int("max_tokens", settings.MaxTokens),
		zap.Float64("temperature", settings.Temperature))

	return domain.NewSummarizerService(completer, settings)
}
