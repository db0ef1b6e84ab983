package main

import (
	"context"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"storefront/docs"
	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/handler"
	"storefront/internal/logging"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
	"storefront/internal/session"
	"storefront/internal/view"
)

// @title Mi Tienda API
// @version 1.0
// @description Read-only JSON view of the storefront catalog and the session cart.
// @host localhost:5000
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()
	logging.Configure(cfg.LogLevel, cfg.LogFormat)

	if cfg.SessionSecret == "change-me" {
		log.Warn().Msg("SESSION_SECRET is not set; using the default secret")
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}
	if cfg.ResetDB {
		log.Warn().Msg("RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	executor := db.NewExecutor(gormDB)
	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := executor.Ping(startupCtx); err != nil {
		log.Error().Err(err).Msg("database connection check failed")
	} else {
		log.Info().Str("driver", cfg.DBDriver).Msg("database connection ok")
	}
	cancel()

	checks := map[string]handler.Pinger{"database": executor}

	var store session.Store
	switch cfg.SessionStore {
	case "redis":
		cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer cacheClient.Close()
		store = session.NewRedisStore(cacheClient)
		checks["redis"] = cacheClient
	default:
		store = session.NewMemoryStore()
	}

	jwtService := auth.NewJWTService(cfg.SessionSecret, cfg.SessionTTL)
	sessions := session.NewManager(store, jwtService, session.ManagerConfig{
		TTL:    cfg.SessionTTL,
		Secure: cfg.SessionSecure,
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	cartRepo := repository.NewCartRepository(gormDB)

	// Initialize services
	authService := service.NewAuthService(userRepo)
	catalogService := service.NewCatalogService(productRepo, categoryRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	profileService := service.NewProfileService(userRepo)

	var admins handler.Admins
	if len(cfg.CatalogAdmins) > 0 {
		ids, missing, err := service.ResolveAdmins(context.Background(), userRepo, cfg.CatalogAdmins)
		if err != nil {
			log.Fatal().Err(err).Msg("resolve catalog admins")
		}
		for _, handle := range missing {
			log.Warn().Str("usuario", handle).Msg("catalog admin is not registered, ignoring")
		}
		admins = handler.NewAdmins(ids)
	}

	renderer, err := view.New()
	if err != nil {
		log.Fatal().Err(err).Msg("parse templates")
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer

	// Register routes
	router.Register(e, router.Handlers{
		Home:    handler.NewHomeHandler(catalogService),
		Auth:    handler.NewAuthHandler(authService),
		Catalog: handler.NewCatalogHandler(catalogService, admins),
		Cart:    handler.NewCartHandler(cartService),
		Profile: handler.NewProfileHandler(profileService),
		Health:  handler.NewHealthHandler(checks),
		API:     handler.NewAPIHandler(catalogService, cartService),
	}, sessions.Middleware()...)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
	} else {
		docs.SwaggerInfo.Host = "localhost:" + cfg.ServerPort
	}
	log.Info().Str("url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html").Msg("swagger documentation available")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info().Str("addr", addr).Msg("server listening")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}
