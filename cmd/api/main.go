package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/paydii_api/internal/cache"
	"github.com/GTDGit/paydii_api/internal/config"
	"github.com/GTDGit/paydii_api/internal/database"
	"github.com/GTDGit/paydii_api/internal/handler"
	"github.com/GTDGit/paydii_api/internal/middleware"
	"github.com/GTDGit/paydii_api/internal/repository"
	"github.com/GTDGit/paydii_api/internal/service"
	"github.com/GTDGit/paydii_api/internal/sse"
	"github.com/GTDGit/paydii_api/internal/worker"
	"github.com/GTDGit/paydii_api/pkg/payment"
)

// main is the application entrypoint for the Paydii marketplace API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("store", cfg.Store.Driver).Msg("starting paydii api")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Open the key-value store
	store, pingers, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("store initialization failed")
		fmt.Fprintf(os.Stderr, "store initialization failed: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	// 4. Initialize repositories
	productRepo := repository.NewProductRepository(store)
	purchaseRepo := repository.NewPurchaseRepository(store)
	couponRepo := repository.NewCouponRepository(store)
	reviewRepo := repository.NewReviewRepository(store)
	accountRepo := repository.NewAccountRepository(store)

	// 5. Value transfer
	var transferer service.Transferer
	if cfg.Payment.BaseURL != "" {
		client := payment.NewClient(cfg.Payment.BaseURL, cfg.Payment.MerchantID, cfg.Payment.Secret, cfg.Payment.Timeout)
		transferer = service.NewPaymentTransferer(client)
		log.Info().Str("base_url", cfg.Payment.BaseURL).Msg("payments gateway configured")
	} else {
		transferer = service.NewDryRunTransferer()
		log.Warn().Msg("PAYMENT_BASE_URL not set - purchases use the dry-run transferer")
	}

	// 6. Initialize services
	hub := sse.NewHub()
	notifier := sse.NewHubNotifier(hub)
	seq := service.NewSequencer()

	productSvc := service.NewProductService(store, productRepo, seq, notifier)
	purchaseSvc := service.NewPurchaseService(store, productSvc, purchaseRepo, transferer, seq, notifier)
	couponSvc := service.NewCouponService(store, productSvc, couponRepo, seq)
	reviewSvc := service.NewReviewService(store, productSvc, reviewRepo, seq, notifier)
	reviewSvc.SetStarRange(cfg.Review.MinStar, cfg.Review.MaxStar)
	accountSvc := service.NewAccountService(store, accountRepo, seq, cfg.JWTSecret, cfg.JWTTTL)
	auditSvc := service.NewAuditService(productRepo, purchaseRepo, reviewRepo, seq)

	var moderator service.ImageModerator
	if cfg.AWS.ModerationEnabled {
		m, err := service.NewRekognitionModerator(ctx, &cfg.AWS)
		if err != nil {
			log.Warn().Err(err).Msg("Rekognition initialization failed - image moderation disabled")
		} else {
			moderator = m
		}
	}
	imageSvc := service.NewImageService(&cfg.S3, moderator)

	// 7. HTTP layer
	handlers := &handler.Handlers{
		Health:   handler.NewHealthHandler(cfg.Store.Driver, pingers),
		Auth:     handler.NewAuthHandler(accountSvc),
		Product:  handler.NewProductHandler(productSvc),
		Purchase: handler.NewPurchaseHandler(purchaseSvc),
		Coupon:   handler.NewCouponHandler(couponSvc),
		Review:   handler.NewReviewHandler(reviewSvc),
		Image:    handler.NewImageHandler(imageSvc),
		SSE:      handler.NewSSEHandler(hub),
	}

	limiter := middleware.NewInvalidAuthRateLimiter(5, time.Minute)
	defer limiter.Stop()
	jwtMw := middleware.NewJWTMiddleware(cfg.JWTSecret, limiter)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORSAllowedHosts))
	router.Use(middleware.LoggingMiddleware())
	handler.SetupRoutes(router, handlers, jwtMw)

	// 8. Start background workers
	go worker.NewAuditWorker(auditSvc, cfg.Worker.AuditInterval).Start(ctx)

	// 9. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 10. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 11. Cancel context to stop workers
	cancel()

	// 12. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// openStore builds the configured key-value backend and returns the
// connections the health check should ping along with a func that closes
// everything it opened.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, map[string]handler.Pinger, func(), error) {
	pingers := map[string]handler.Pinger{}

	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := database.Connect(ctx, &cfg.DB)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("database connection failed: %w", err)
		}
		if err := database.Migrate(db.DB); err != nil {
			db.Close()
			return nil, nil, nil, fmt.Errorf("migration failed: %w", err)
		}
		log.Info().Msg("migrations completed successfully")
		pingers["postgres"] = dbPinger{db}

		var store repository.Store = repository.NewPostgresStore(db)
		if cfg.Redis.Enabled() {
			redisClient, err := cache.NewRedisClient(&cfg.Redis)
			if err != nil {
				db.Close()
				return nil, nil, nil, fmt.Errorf("redis connection failed: %w", err)
			}
			log.Info().Dur("ttl", cfg.Store.CacheTTL).Msg("redis read-through cache enabled")
			pingers["redis"] = redisClient
			cached := repository.NewCachedStore(store, cache.NewEntryCache(redisClient, cfg.Store.CacheTTL))
			return cached, pingers, func() {
				cached.Close()
				redisClient.Close()
			}, nil
		}
		return store, pingers, func() { store.Close() }, nil

	case config.StoreRedis:
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("redis connection failed: %w", err)
		}
		log.Info().Msg("redis connected successfully")
		pingers["redis"] = redisClient
		store := repository.NewRedisStore(redisClient)
		return store, pingers, func() { store.Close() }, nil

	default:
		log.Warn().Msg("using in-memory store - state is lost on restart")
		store := repository.NewMemoryStore()
		return store, pingers, func() { store.Close() }, nil
	}
}

type dbPinger struct{ db *sqlx.DB }

func (p dbPinger) Ping(ctx context.Context) error { return p.db.PingContext(ctx) }

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
