package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Conceptual-Machines/mood-to-movie/internal/api"
	apimiddleware "github.com/Conceptual-Machines/mood-to-movie/internal/api/middleware"
	"github.com/Conceptual-Machines/mood-to-movie/internal/config"
	"github.com/Conceptual-Machines/mood-to-movie/internal/controller"
	"github.com/Conceptual-Machines/mood-to-movie/internal/llm"
	"github.com/Conceptual-Machines/mood-to-movie/internal/metrics"
	"github.com/Conceptual-Machines/mood-to-movie/internal/observability"
	"github.com/Conceptual-Machines/mood-to-movie/internal/services"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	environmentProduction = "production"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "mood-to-movie@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			EnableLogs:       true,
			Debug:            cfg.Environment != environmentProduction,
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	langfuse := observability.InitializeLangfuse(ctx, cfg)

	cloudwatch, err := metrics.NewClient(ctx, cfg.Environment)
	if err != nil {
		log.Printf("⚠️  CloudWatch metrics unavailable: %v", err)
	}
	recorder := metrics.Multi{metrics.NewSentryMetrics()}
	if cloudwatch != nil {
		recorder = append(recorder, cloudwatch)
	}

	// Build the recommendation client once; without a usable key every request reports why
	factory := llm.NewProviderFactory(cfg.OpenAIAPIKey, cfg.GeminiAPIKey)
	apiKey, newProvider := factory.ForModel(cfg.Model)
	temperature := cfg.Temperature

	var recommender controller.Recommender
	configured := true
	client, err := services.NewRecommendationClient(ctx, services.ClientOptions{
		APIKey:      apiKey,
		Model:       cfg.Model,
		Temperature: &temperature,
		Metrics:     recorder,
		Langfuse:    langfuse,
	}, newProvider)
	if err != nil {
		log.Printf("⚠️  Recommendations unavailable: %v", err)
		sentry.CaptureException(err)
		recommender = services.NewUnavailableRecommender(err)
		configured = false
	} else {
		recommender = client
	}

	registry := controller.NewRegistry(func() *controller.Controller {
		return controller.New(recommender, controller.WithRequestTimeout(cfg.RequestTimeout))
	})
	go sweepSessions(registry, cfg.SessionMaxIdle)

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.SetupRouter(cfg, GetVersion(), api.Dependencies{
		Recommender: recommender,
		Registry:    registry,
		Sessions:    apimiddleware.NewSessionStore(cfg.SessionSecret, cfg.IsProduction()),
		Metrics:     recorder,
		Configured:  configured,
	})

	log.Printf("🚀 Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}

// sweepSessions evicts idle visitor controllers for the life of the process
func sweepSessions(registry *controller.Registry, maxIdle time.Duration) {
	if maxIdle <= 0 {
		return
	}

	ticker := time.NewTicker(maxIdle / 2)
	defer ticker.Stop()

	for range ticker.C {
		if evicted := registry.Sweep(maxIdle); evicted > 0 {
			log.Printf("🧹 Evicted %d idle sessions (%d active)", evicted, registry.Len())
		}
	}
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization":  true,
		"cookie":         true,
		"x-api-key":      true,
		"x-goog-api-key": true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
