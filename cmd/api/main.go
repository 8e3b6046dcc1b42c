package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"currency-wallet/config"
	exchangeClient "currency-wallet/internal/adapter/exchange"
	razorpayGateway "currency-wallet/internal/adapter/gateway/razorpay"
	httpHandler "currency-wallet/internal/adapter/http/handler"
	newsClient "currency-wallet/internal/adapter/news"
	pgStorage "currency-wallet/internal/adapter/storage/postgres"
	redisStorage "currency-wallet/internal/adapter/storage/redis"
	"currency-wallet/internal/core/ports"
	"currency-wallet/internal/service"
	"currency-wallet/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("currency-wallet", cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Currency Wallet")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	accountRepo := pgStorage.NewAccountRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	idemCache := redisStorage.NewCache(rdb, "idem:")
	displayCache := redisStorage.NewCache(rdb, "display:")
	orderStore := redisStorage.NewOrderStore(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize core services
	sigSvc := service.NewHMACSignatureService()
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	// Initialize outbound clients
	gateway := razorpayGateway.NewClient(cfg.Razorpay, &http.Client{Timeout: cfg.Razorpay.Timeout}, sigSvc, log)
	fxClient := exchangeClient.NewClient(cfg.Exchange, &http.Client{Timeout: cfg.Exchange.Timeout}, log)
	news := newsClient.NewClient(cfg.News, &http.Client{Timeout: cfg.News.Timeout}, log)

	// Initialize business services
	authSvc := service.NewAuthService(accountRepo, hashSvc, tokenSvc)
	walletSvc := service.NewWalletService(
		accountRepo,
		txRepo,
		orderStore,
		idemCache,
		gateway,
		fxClient,
		transactor,
		service.WalletConfig{
			BaseCurrency:    cfg.Exchange.BaseCurrency,
			OrderTTL:        cfg.Razorpay.OrderTTL,
			VerifySignature: cfg.Razorpay.VerifySignature,
		},
		log,
	)
	historySvc := service.NewHistoryService(accountRepo, txRepo, cfg.Exchange.BaseCurrency)
	ratesSvc := service.NewRatesService(fxClient, news, displayCache, cfg.Exchange.DisplayTTL, cfg.News.CacheTTL, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		WalletSvc:      walletSvc,
		HistorySvc:     historySvc,
		RatesSvc:       ratesSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		BaseCurrency:   cfg.Exchange.BaseCurrency,
		NewsQuery:      cfg.News.DefaultQuery,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
