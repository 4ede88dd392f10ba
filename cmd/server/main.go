package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	httpapi "carrental-backend/internal/api/http"
	"carrental-backend/internal/config"
	"carrental-backend/internal/currency"
	"carrental-backend/internal/gateway"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/pricing"
	"carrental-backend/internal/repository/postgres"
	"carrental-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Car Rental Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Pricing Engine and Currency Converter
	rateSource := currency.NewHTTPRateSource(cfg.Currency.RateSourceURL)
	converter := currency.NewConverter(rateSource, cfg.Currency)
	engine := pricing.NewEngine(cfg.Pricing, pricing.DefaultStrategies())

	// Initialize Gateway
	stripeGateway := gateway.NewStripeGateway(cfg.Stripe.APIKey, cfg.Currency.CurrencyDecimals)

	// Initialize Services
	pricingSvc := service.NewPricingService(store.CarRepository, engine, converter)
	reconciliationSvc := service.NewReconciliationService(store.PaymentRepository, stripeGateway)
	webhookSvc := service.NewWebhookService(store.WebhookEventRepository, store.PaymentRepository)

	// Initialize Handlers
	webhookHandler := httpapi.NewWebhookHandler(webhookSvc, cfg.Stripe.WebhookSecret)
	pricingHandler := httpapi.NewPricingHandler(pricingSvc)
	reconciliationHandler := httpapi.NewReconciliationHandler(reconciliationSvc)

	// Routes
	router := mux.NewRouter()
	router.HandleFunc("/webhooks/stripe", webhookHandler.HandleStripeWebhook).Methods(http.MethodPost)
	router.HandleFunc("/cars/{id:[0-9]+}/price", pricingHandler.HandlePreviewPrice).Methods(http.MethodGet)
	router.HandleFunc("/admin/reconciliation", reconciliationHandler.HandleRunReconciliation).Methods(http.MethodPost)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server stopped", "error", err)
		log.Fatalf("HTTP server stopped: %v", err)
	}
}
