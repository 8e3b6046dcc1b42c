package handler

import (
	"currency-wallet/internal/adapter/http/middleware"
	redisStore "currency-wallet/internal/adapter/storage/redis"
	"currency-wallet/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	WalletSvc      ports.WalletService
	HistorySvc     ports.HistoryService
	RatesSvc       ports.RatesService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	BaseCurrency   string
	NewsQuery      string
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	displayHandler := NewDisplayHandler(deps.RatesSvc, deps.BaseCurrency, deps.NewsQuery)
	v1.GET("/exchange", rl("display"), displayHandler.Rates)
	v1.GET("/news", rl("display"), displayHandler.News)

	// --- JWT-authenticated routes (wallet) ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	walletHandler := NewWalletHandler(deps.WalletSvc, deps.HistorySvc, deps.RatesSvc)

	wallet := v1.Group("/wallet", jwtAuth)
	{
		wallet.GET("", rl("wallet_read"), walletHandler.Overview)
		wallet.GET("/balance", rl("wallet_read"), walletHandler.GetBalance)
		wallet.POST("/deposit", rl("wallet_write"), walletHandler.Deposit)
		wallet.POST("/deposit/confirm", rl("wallet_write"), walletHandler.ConfirmDeposit)
		wallet.POST("/withdraw", rl("wallet_write"), walletHandler.Withdraw)
		wallet.POST("/convert", rl("wallet_write"), walletHandler.Convert)
		wallet.GET("/transactions", rl("wallet_read"), walletHandler.ListTransactions)
		wallet.GET("/summary", rl("wallet_read"), walletHandler.GetSummary)
	}

	return r
}
