package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"xrpl-payroll-gateway/config"
	"xrpl-payroll-gateway/internal/adapter/directory"
	httpHandler "xrpl-payroll-gateway/internal/adapter/http/handler"
	pgStorage "xrpl-payroll-gateway/internal/adapter/storage/postgres"
	redisStorage "xrpl-payroll-gateway/internal/adapter/storage/redis"
	"xrpl-payroll-gateway/internal/adapter/xrpl"
	"xrpl-payroll-gateway/internal/core/ports"
	"xrpl-payroll-gateway/internal/service"
	"xrpl-payroll-gateway/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("node", cfg.XRPL.RPCURL).
		Msg("Starting XRPL Payroll Gateway")

	ctx := context.Background()
	healthCheckers := []ports.HealthChecker{}

	// PostgreSQL backs the payment history. The gateway can run without
	// it; history endpoints then return empty results.
	var payLog ports.PaymentLogRepository
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Warn().Err(err).Msg("PostgreSQL unavailable, payment history disabled")
	} else {
		defer pool.Close()
		payLog = pgStorage.NewPaymentLogRepo(pool)
		healthCheckers = append(healthCheckers, pgStorage.NewHealthCheck(pool))
		log.Info().Msg("PostgreSQL connected")
	}

	// Redis backs the directory cache and rate limiting, both optional.
	var dirCache ports.DirectoryCache
	var rateLimitStore *redisStorage.RateLimitStore
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, caching and rate limiting disabled")
	} else {
		defer rdb.Close()
		dirCache = redisStorage.NewDirectoryCache(rdb)
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
		log.Info().Msg("Redis connected")
	}

	// Ledger node
	nodeHTTP := &http.Client{Timeout: cfg.XRPL.RequestTimeout}
	ledger := xrpl.NewClient(cfg.XRPL.RPCURL, nodeHTTP, log)
	if err := ledger.Connect(ctx); err != nil {
		log.Fatal().Err(err).Str("rpc_url", cfg.XRPL.RPCURL).Msg("Failed to reach ledger node")
	}
	log.Info().Msg("Ledger node reachable")

	keys := xrpl.NewKeyManager(ledger)

	var faucet ports.FaucetClient
	if cfg.XRPL.FaucetURL != "" {
		faucet = xrpl.NewFaucet(cfg.XRPL.FaucetURL, nodeHTTP, log)
	}

	// Wallet directory on the pinning service
	pinHTTP := &http.Client{Timeout: cfg.Pinning.RequestTimeout}
	walletDir := directory.NewPinningDirectory(
		cfg.Pinning.BaseURL,
		cfg.Pinning.GatewayURL,
		cfg.Pinning.APIKey,
		cfg.Pinning.Tag,
		pinHTTP,
		dirCache,
		cfg.Pinning.CacheTTL,
		log,
	)

	// Core services
	cipher, err := service.NewAESSecretCipher(cfg.AES.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize secret cipher")
	}
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.JWTIssuer)

	walletSvc := service.NewWalletService(
		keys,
		ledger,
		walletDir,
		cipher,
		faucet,
		cfg.XRPL.FundingInterval,
		cfg.XRPL.FundingAttempts,
		log,
	)
	trustlineSvc := service.NewTrustlineService(
		ledger,
		keys,
		cfg.XRPL.FeeFallbackDrops,
		cfg.XRPL.LedgerHorizon,
		cfg.Trustline.DefaultLimit,
		log,
	)
	paymentSvc := service.NewPaymentService(
		walletSvc,
		trustlineSvc,
		ledger,
		keys,
		payLog,
		cfg.XRPL.IssuerAddress,
		cfg.XRPL.IssuedCurrency,
		cfg.Trustline.DefaultLimit,
		cfg.XRPL.FeeFallbackDrops,
		cfg.XRPL.LedgerHorizon,
		log,
	)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		PaymentSvc:     paymentSvc,
		TrustlineSvc:   trustlineSvc,
		WalletSvc:      walletSvc,
		TokenSvc:       tokenSvc,
		Hasher:         hashSvc,
		PaymentLog:     payLog,
		Ledger:         ledger,
		Operator:       cfg.Auth.Operator,
		PasswordHash:   cfg.Auth.PasswordHash,
		Issuer:         cfg.XRPL.IssuerAddress,
		Currency:       cfg.XRPL.IssuedCurrency,
		RateLimitStore: rateLimitStore,
		HealthCheckers: healthCheckers,
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
