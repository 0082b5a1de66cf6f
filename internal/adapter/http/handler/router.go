package handler

import (
	"xrpl-payroll-gateway/internal/adapter/http/middleware"
	redisStore "xrpl-payroll-gateway/internal/adapter/storage/redis"
	"xrpl-payroll-gateway/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	PaymentSvc   ports.PaymentService
	TrustlineSvc ports.TrustlineService
	WalletSvc    ports.WalletService
	TokenSvc     ports.TokenService
	Hasher       ports.PasswordHasher
	PaymentLog   ports.PaymentLogRepository // nil = history disabled
	Ledger       ports.LedgerGateway

	Operator     string
	PasswordHash string
	Issuer       string
	Currency     string

	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rules := middleware.DefaultRateLimitRules()
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

	v1 := r.Group("/api/v1")

	// --- Public routes ---
	authHandler := NewAuthHandler(deps.Operator, deps.PasswordHash, deps.Hasher, deps.TokenSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	// --- Operator session routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	walletHandler := NewWalletHandler(deps.WalletSvc, deps.Ledger, deps.Issuer, deps.Currency)
	wallets := v1.Group("/wallets", jwtAuth)
	{
		wallets.GET("", rl("wallets"), walletHandler.List)
		wallets.POST("/import", rl("wallets"), walletHandler.Import)
		wallets.POST("/generate", rl("wallets"), walletHandler.Generate)
		wallets.GET("/:address/balance", rl("wallets"), walletHandler.Balance)
		wallets.PUT("/:address/activate", rl("wallets"), walletHandler.Activate)
		wallets.DELETE("/:address", rl("wallets"), walletHandler.Remove)
	}

	paymentHandler := NewPaymentHandler(deps.PaymentSvc, deps.WalletSvc, deps.PaymentLog)
	payments := v1.Group("/payments", jwtAuth)
	{
		payments.POST("", rl("payments"), paymentHandler.Send)
		payments.GET("/history", rl("wallets"), paymentHandler.History)
	}

	trustlineHandler := NewTrustlineHandler(deps.TrustlineSvc, deps.WalletSvc, deps.Issuer, deps.Currency)
	trustlines := v1.Group("/trustlines", jwtAuth)
	{
		trustlines.GET("/status", rl("trustlines"), trustlineHandler.Status)
		trustlines.POST("", rl("trustlines"), trustlineHandler.Establish)
	}

	return r
}
