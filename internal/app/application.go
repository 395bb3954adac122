package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"clinicsite-backend/internal/config"
	"clinicsite-backend/internal/handlers"
	"clinicsite-backend/internal/middleware"
	"clinicsite-backend/internal/models"
	"clinicsite-backend/internal/repository"
	"clinicsite-backend/internal/sections"
	"clinicsite-backend/internal/seed"
	"clinicsite-backend/internal/service"
	"clinicsite-backend/pkg/cache"
	"clinicsite-backend/pkg/logger"
)

type Options struct {
	// SeedDemo creates a demo clinic with a starter site on boot.
	SeedDemo bool
}

type Application struct {
	cfg     *config.Config
	options Options

	db    *gorm.DB
	cache *cache.Cache

	repositories repositoryContainer
	services     serviceContainer
	handlers     handlerContainer

	rateLimits *middleware.RateLimitManager
	router     *gin.Engine
	server     *http.Server
}

type repositoryContainer struct {
	Clinic repository.ClinicRepository
	Site   repository.SiteRepository
}

type serviceContainer struct {
	Clinic *service.ClinicService
	Site   *service.SiteService
	Upload *service.UploadService
}

type handlerContainer struct {
	Clinic  *handlers.ClinicHandler
	Site    *handlers.SiteHandler
	Upload  *handlers.UploadHandler
	Builder *handlers.BuilderHandler
}

func New(cfg *config.Config, opts Options) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &Application{
		cfg:     cfg,
		options: opts,
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.runMigrations(); err != nil {
		return nil, err
	}

	if err := app.createIndexes(); err != nil {
		return nil, err
	}

	app.initCache()
	app.initRepositories()
	app.initServices()
	app.initHandlers()

	if opts.SeedDemo {
		seed.EnsureDemoClinic(app.services.Clinic, app.services.Site)
	}

	app.rateLimits = middleware.NewRateLimitManager(context.Background())

	if err := app.initRouter(); err != nil {
		return nil, err
	}

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.rateLimits != nil {
		if err := a.rateLimits.Shutdown(); err != nil {
			logger.Error(err, "Failed to stop rate limit manager", nil)
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) initDatabase() error {
	logger.Info("Connecting to database", nil)

	db, err := gorm.Open(postgres.Open(a.cfg.DatabaseURL), &gorm.Config{
		Logger: logger.NewGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	a.db = db
	return nil
}

func (a *Application) runMigrations() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	logger.Info("Running database migrations", nil)

	if err := a.db.AutoMigrate(
		&models.Clinic{},
		&models.SiteRecord{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database migration completed", nil)
	return nil
}

func (a *Application) createIndexes() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_clinics_subdomain ON clinics(subdomain)",
		"CREATE INDEX IF NOT EXISTS idx_site_records_published_at ON site_records(published_at) WHERE published_at IS NOT NULL",
		"CREATE INDEX IF NOT EXISTS idx_site_records_document ON site_records USING GIN (document)",
	}

	for _, stmt := range statements {
		if err := a.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func (a *Application) initCache() {
	if a.cfg.EnableRedis {
		a.cache = cache.NewCache(a.cfg.RedisURL, true)
	} else {
		a.cache = cache.NewCache("", false)
	}
}

func (a *Application) initRepositories() {
	a.repositories = repositoryContainer{
		Clinic: repository.NewClinicRepository(a.db),
		Site:   repository.NewSiteRepository(a.db),
	}
}

func (a *Application) initServices() {
	a.services = serviceContainer{
		Clinic: service.NewClinicService(a.repositories.Clinic),
		Site:   service.NewSiteService(a.repositories.Site, a.repositories.Clinic, a.cache),
		Upload: service.NewUploadService(a.cfg.UploadDir, a.cfg.MaxUploadSize),
	}
}

func (a *Application) initHandlers() {
	a.handlers = handlerContainer{
		Clinic:  handlers.NewClinicHandler(a.services.Clinic),
		Site:    handlers.NewSiteHandler(a.services.Site),
		Upload:  handlers.NewUploadHandler(a.services.Upload),
		Builder: handlers.NewBuilderHandler(sections.Builtin()),
	}
}

func (a *Application) initRouter() error {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(logger.GinLogger())
	router.Use(middleware.MetricsMiddleware())
	router.Use(func(c *gin.Context) {
		c.Set("rateLimitManager", a.rateLimits)
		c.Next()
	})
	router.Use(middleware.RateLimitMiddleware(a.cfg))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.Static("/uploads", a.cfg.UploadDir)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/clinics", a.handlers.Clinic.Create)
		v1.GET("/clinics", a.handlers.Clinic.List)
		v1.GET("/clinics/:clinicId", a.handlers.Clinic.Get)

		v1.GET("/sites/:clinicId", a.handlers.Site.Get)
		v1.PUT("/sites/:clinicId", a.handlers.Site.Save)
		v1.POST("/sites/:clinicId/publish", a.handlers.Site.Publish)
		v1.GET("/sites/:clinicId/published", a.handlers.Site.Published)

		v1.GET("/builder/config", a.handlers.Builder.Config)
		v1.GET("/builder/templates", a.handlers.Builder.Templates)

		v1.POST("/uploads", middleware.UploadRateLimitMiddleware(20, 60), a.handlers.Upload.Upload)
		v1.GET("/uploads", a.handlers.Upload.List)
		v1.DELETE("/uploads", a.handlers.Upload.Delete)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "route not found",
			"path":  c.Request.URL.Path,
		})
	})

	a.router = router
	return nil
}
