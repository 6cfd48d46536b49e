package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/strohel/za-kolik-pojedu/internal/app"
	"github.com/strohel/za-kolik-pojedu/internal/config"
	"github.com/strohel/za-kolik-pojedu/internal/handler"
	internalRedis "github.com/strohel/za-kolik-pojedu/internal/redis"
	"github.com/strohel/za-kolik-pojedu/internal/repository/postgres"
	"github.com/strohel/za-kolik-pojedu/internal/service"
	"github.com/strohel/za-kolik-pojedu/internal/tariff"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Build the tariff catalog first: a parse failure means the embedded
	// tables are defective and there is nothing to serve.
	catalog, err := tariff.BuildCatalog()
	if err != nil {
		log.Fatalf("failed to build tariff catalog: %v", err)
	}
	log.Println("Tariff catalog built")

	// Initialize New Relic before the database so we can instrument it.
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	// Initialize the quote history database.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Initialize Redis for quote caching and idempotent replays.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server := wireServer(catalog, db, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(catalog *tariff.Catalog, db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Initialize stores.
	quoteCache := internalRedis.NewQuoteCache(redisClient)
	quoteRepo := postgres.NewQuoteRepository(db)

	// Initialize services. car4way is the implemented provider; bolt is a
	// registered placeholder.
	quoteService := service.NewQuoteService(quoteRepo, quoteCache,
		service.NewCar4wayProvider(catalog),
		service.NewBoltProvider(),
	)

	// Initialize handlers.
	quoteHandler := handler.NewQuoteHandler(quoteService)
	tariffHandler := handler.NewTariffHandler(catalog)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		QuoteHandler:  quoteHandler,
		TariffHandler: tariffHandler,
		RedisClient:   redisClient,
		NewRelicApp:   nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
