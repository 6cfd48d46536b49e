package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/strohel/za-kolik-pojedu/internal/handler"
	"github.com/strohel/za-kolik-pojedu/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	QuoteHandler  *handler.QuoteHandler
	TariffHandler *handler.TariffHandler
	RedisClient   *redis.Client
	NewRelicApp   *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Quote routes.
		quotes := v1.Group("/quotes")
		{
			quotes.POST("", deps.QuoteHandler.CreateQuote)
			quotes.GET("", deps.QuoteHandler.GetAll)
			quotes.GET("/:id", deps.QuoteHandler.GetQuote)
		}

		// Provider listing.
		v1.GET("/providers", deps.QuoteHandler.GetProviders)

		// Tariff routes.
		tariffs := v1.Group("/tariffs")
		{
			tariffs.GET("", deps.TariffHandler.GetAll)
			tariffs.GET("/:tier", deps.TariffHandler.GetTariff)
		}
	}

	return router
}
