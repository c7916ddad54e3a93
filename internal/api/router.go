package api

import (
	"github.com/Conceptual-Machines/mood-to-movie/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/mood-to-movie/internal/api/middleware"
	"github.com/Conceptual-Machines/mood-to-movie/internal/config"
	"github.com/Conceptual-Machines/mood-to-movie/internal/controller"
	"github.com/Conceptual-Machines/mood-to-movie/internal/metrics"
	webhandlers "github.com/Conceptual-Machines/mood-to-movie/internal/web/handlers"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

// Dependencies are the long-lived services the router hands to handlers
type Dependencies struct {
	Recommender controller.Recommender
	Registry    *controller.Registry
	Sessions    sessions.Store
	Metrics     metrics.Recorder
	Configured  bool // false when the recommender could not be constructed
}

func SetupRouter(cfg *config.Config, version string, deps Dependencies) *gin.Engine {
	router := gin.New()

	// Recovery wraps the Sentry hub, which reports panics before re-raising them
	router.Use(apimiddleware.RecoverPanics())
	router.Use(apimiddleware.SentryHub())
	router.Use(apimiddleware.TrackRequests(deps.Metrics))

	// Health check
	healthHandler := handlers.NewHealthHandler(cfg.Model, deps.Configured)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, cfg.Model, deps.Registry)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// Stateless recommendations
	recommendationHandler := handlers.NewRecommendationHandler(deps.Recommender, deps.Registry)
	v1 := router.Group("/api/v1")
	v1.POST("/recommendations", recommendationHandler.Recommend)

	// Everything below is per visitor
	visitor := router.Group("/")
	visitor.Use(apimiddleware.VisitorSession(deps.Sessions))
	{
		// Web pages
		webHandler := webhandlers.NewWebHandler(deps.Registry)
		visitor.GET("/", webHandler.Home)
		visitor.POST("/mood", webHandler.SubmitMood)
		visitor.POST("/reset", webHandler.Reset)

		// Session API for script clients
		session := visitor.Group("/api/v1/session")
		session.GET("", recommendationHandler.GetSession)
		session.PUT("/mood", recommendationHandler.UpdateMood)
		session.POST("/submit", recommendationHandler.SubmitSession)
		session.POST("/reset", recommendationHandler.ResetSession)
	}

	return router
}
