package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/club28/backend/docs"
	"github.com/club28/backend/internal/config"
	"github.com/club28/backend/internal/database"
	"github.com/club28/backend/internal/handlers"
	"github.com/club28/backend/internal/live"
	mW "github.com/club28/backend/internal/middleware"
	"github.com/club28/backend/internal/services"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Club28 League API
// @version 1.0
// @description Tournament registration, match verification, standings and wallet settlement
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Initialize config
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.name", "DATABASE_NAME")
	viper.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")
	viper.BindEnv("database.auto_migrate", "DATABASE_AUTO_MIGRATE")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("static.bank_logos", "BANK_LOGOS_DIR")
	viper.BindEnv("server.host", "SERVER_HOST")
	config.BindEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}

	viper.SetDefault("static.bank_logos", services.DefaultLogosDir)
	viper.SetDefault("server.host", "localhost:8080")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	docs.SwaggerInfo.Host = viper.GetString("server.host")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := database.InitDatabase(ctx)
	defer db.Close()

	redisClient := database.InitRedis(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}

	leagueConfig := config.LoadLeagueConfig()

	hub := live.NewHub()
	go hub.Run(ctx)

	notifier := services.NewLogNotifier()
	ledger := services.NewWalletLedger(db)
	accounts := services.NewAccountService(db)
	correlator := services.NewCorrelator(db, ledger)
	tournamentService := services.NewTournamentService(db, correlator)
	registrationService := services.NewRegistrationService(db, ledger, services.NewGroupAllocator(), accounts, notifier, hub)
	matchService := services.NewMatchService(db, services.NewPrizeService(ledger), notifier, hub)
	standingsService := services.NewStandingsService(db)
	bankDirectory := services.NewBankDirectory(viper.GetString("static.bank_logos"))
	paymentService := services.NewPaymentService(redisClient, ledger, accounts, leagueConfig)
	withdrawalService := services.NewWithdrawalService(db, redisClient, ledger, bankDirectory, leagueConfig)

	if redisClient != nil {
		reminders := services.NewReminderService(db, redisClient, notifier, leagueConfig)
		scheduler, err := reminders.Start(ctx)
		if err != nil {
			log.Fatalf("Failed to start reminder scheduler: %v", err)
		}
		defer func() {
			if err := scheduler.Shutdown(); err != nil {
				log.Printf("[REMINDER] scheduler shutdown: %v", err)
			}
		}()
	} else {
		log.Println("[REMINDER] redis unavailable, match reminders disabled")
	}

	r := handlers.NewRouter(handlers.Handlers{
		Registrations: handlers.NewRegistrationHandler(registrationService),
		Matches:       handlers.NewMatchHandler(matchService),
		Tournaments:   handlers.NewTournamentHandler(tournamentService, standingsService, correlator),
		Wallet:        handlers.NewWalletHandler(ledger, correlator, paymentService, withdrawalService, bankDirectory),
		Live:          handlers.NewLiveHandler(hub),
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://"+docs.SwaggerInfo.Host+"/swagger/doc.json"),
	))

	// Static file server for bank logos
	r.Handle("/static/bank-logos/*", http.StripPrefix("/static/bank-logos/",
		mW.StaticFileServer(viper.GetString("static.bank_logos"), services.PlaceholderLogo)))

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()

	log.Println("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}
