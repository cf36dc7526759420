package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/sitegen/internal/auth"
	"github.com/octobees/sitegen/internal/cms"
	"github.com/octobees/sitegen/internal/config"
	"github.com/octobees/sitegen/internal/database"
	"github.com/octobees/sitegen/internal/handler"
	middlewarepkg "github.com/octobees/sitegen/internal/middleware"
	"github.com/octobees/sitegen/internal/repository"
	"github.com/octobees/sitegen/internal/router"
	"github.com/octobees/sitegen/internal/service"
	"github.com/octobees/sitegen/internal/template"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	registry := template.NewDefaultRegistry(cfg.DefaultTemplate)
	if err := registry.Check(); err != nil {
		log.Fatalf("failed to load default template %s: %v", cfg.DefaultTemplate, err)
	}

	var cmsOpts []cms.Option
	if cfg.Redis.Enabled() {
		redisClient := cms.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("redis unavailable, continuing without cache: %v", err)
		} else {
			cmsOpts = append(cmsOpts, cms.WithCache(cms.NewRedisCache(redisClient), cfg.CacheTTL))
			log.Printf("cms cache enabled addr=%s ttl=%s", cfg.Redis.Addr, cfg.CacheTTL)
		}
	}

	cmsOpts = append(cmsOpts, cms.WithTimeout(cfg.CMSTimeout))
	cmsClient := cms.NewClient(nil, cfg.CMSBaseURL, cfg.CMSAudience, cmsOpts...)

	var leadsRepo repository.LeadsRepository
	if cfg.DatabaseURL != "" {
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect database: %v", err)
		}
		defer pool.Close()
		if err := database.Migrate(ctx, pool); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
		leadsRepo = repository.NewPGXLeadsRepository(pool)
	} else {
		log.Printf("DATABASE_URL not set, leads are forwarded without being stored")
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	resolver := template.NewResolver(cmsClient, registry)
	validator := service.NewLeadValidator(cfg.PhoneRegion, service.WithDNSResolver(service.SystemDNSResolver()))

	handlers := router.Handlers{
		Pages:      handler.NewPagesHandler(service.NewPageService(cmsClient, cfg.SiteURL), resolver),
		Leads:      handler.NewLeadsHandler(service.NewLeadService(validator, cmsClient, leadsRepo)),
		Revalidate: handler.NewRevalidateHandler(service.NewRevalidationService(cmsClient.Cache())),
		Sitemap:    handler.NewSitemapHandler(service.NewSitemapService(cmsClient, cfg.SiteURL)),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("listening on :%s templates=%v default=%s", cfg.Port, registry.IDs(), registry.DefaultID())
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
