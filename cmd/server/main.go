package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/cache"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/config"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/database"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/handlers"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/logger"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/metrics"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/middleware"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/services"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/utils"

	_ "github.com/kshengbe-dot/This-Is-Us-Series/docs/api" // Swagger docs
)

// @title This Is Us Community API
// @version 1.0.0
// @description Reader community data service: counters, comments, ratings, achievements and the terms gate
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/kshengbe-dot/This-Is-Us-Series

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log := logger.New("info")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log := logger.New(cfg.LogLevel)

	// Connect to database
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	db, err := database.ConnectWithRetry(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Optional Redis cache
	redis := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if redis.Enabled() {
		defer redis.Close()
		log.Info().Str("addr", cfg.RedisAddr).Msg("Stats cache enabled")
	}

	auth, err := services.NewAuthenticator(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create authenticator")
	}

	deps := &handlers.Deps{
		DB:      db,
		Config:  cfg,
		Cache:   cache.NewBookCache(redis, cfg.StatsCacheTTL, log),
		Metrics: metrics.Default(),
		Log:     log,
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: utils.ErrorHandler,
		AppName:      "this-is-us-community",
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New())
	app.Use(corsMiddleware(cfg))

	// Prometheus metrics
	prometheus := fiberprometheus.New("this_is_us")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health
	healthHandler := &handlers.HealthHandler{Deps: deps, Redis: redis}
	app.Get("/health", healthHandler.Health)

	// API routes under /api
	api := app.Group("/api")
	api.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return utils.ErrorResponse(c, "Too many requests. Please slow down.", fiber.StatusTooManyRequests, "limit")
		},
	}))
	api.Use(middleware.VersionMiddleware())
	api.Use(middleware.Identify(auth, cfg, log))

	handlers.Register(api, deps)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found")
	})

	// Graceful shutdown
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigs
		log.Info().Msg("Gracefully shutting down...")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	// Start server
	log.Info().
		Str("port", cfg.Port).
		Str("db", cfg.DBType).
		Str("auth", cfg.AuthMode).
		Int("terms_version", cfg.TermsVersion).
		Msg("Starting server")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}

	log.Info().Msg("Server stopped")
}

// corsMiddleware allows credentialed requests from ALLOWED_ORIGINS, any origin otherwise
func corsMiddleware(cfg *config.Config) fiber.Handler {
	headers := "Origin, Content-Type, Accept, Authorization, " + middleware.GuestHeader + ", X-Api-Version"
	if cfg.AllowedOrigins == "" {
		return cors.New(cors.Config{
			AllowHeaders:  headers,
			ExposeHeaders: middleware.GuestHeader,
		})
	}
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowHeaders:     headers,
		ExposeHeaders:    middleware.GuestHeader,
		AllowCredentials: true,
	})
}
