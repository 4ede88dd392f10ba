package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"carrental-backend/internal/config"
	"carrental-backend/internal/currency"
	"carrental-backend/internal/gateway"
	"carrental-backend/internal/jobs"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/penalty"
	"carrental-backend/internal/repository/postgres"
	"carrental-backend/internal/scheduler"
	"carrental-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'detect-late-returns', 'daily-reconciliation', 'refresh-rates', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Car Rental Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	// Initialize Penalty Calculator
	calculator := penalty.New(penalty.Config{
		GracePeriodMinutes:         cfg.Penalty.GracePeriodMinutes,
		SeverelyLateThresholdHours: cfg.Penalty.SeverelyLateThresholdHours,
		HourlyRateFraction:         decimal.NewFromFloat(cfg.Penalty.HourlyRateFraction),
		DailyRateMultiplier:        decimal.NewFromFloat(cfg.Penalty.DailyRateMultiplier),
		MaxPenaltyMultiple:         decimal.NewFromFloat(cfg.Penalty.MaxPenaltyMultiple),
	})

	// Initialize Currency Converter and Gateway
	rateSource := currency.NewHTTPRateSource(cfg.Currency.RateSourceURL)
	converter := currency.NewConverter(rateSource, cfg.Currency)
	stripeGateway := gateway.NewStripeGateway(cfg.Stripe.APIKey, cfg.Currency.CurrencyDecimals)

	// Initialize Services
	lateReturnSvc := service.NewLateReturnService(store.RentalRepository, calculator, cfg.Jobs.PageSize)
	reconciliationSvc := service.NewReconciliationService(store.PaymentRepository, stripeGateway)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(lateReturnSvc, reconciliationSvc, converter, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "detect-late-returns":
		jobRunner.DetectLateReturns()
	case "daily-reconciliation":
		jobRunner.RunDailyReconciliation()
	case "refresh-rates":
		jobRunner.RefreshExchangeRates()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - detect-late-returns\n")
		fmt.Printf("  - daily-reconciliation\n")
		fmt.Printf("  - refresh-rates\n")
		fmt.Printf("  - all-nightly\n")
		os.Exit(1)
	}
}
