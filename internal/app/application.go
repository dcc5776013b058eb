package app

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"healbuddy-web/internal/background"
	"healbuddy-web/internal/config"
	"healbuddy-web/internal/handlers"
	"healbuddy-web/internal/middleware"
	"healbuddy-web/internal/templates"
	"healbuddy-web/pkg/cache"
	"healbuddy-web/pkg/logger"
	"healbuddy-web/pkg/navigation"
	"healbuddy-web/pkg/utils"
)

type Options struct {
	// Navigation overrides the default navigation entries.
	Navigation []navigation.Item
}

type Application struct {
	cfg     *config.Config
	options Options

	cache       *cache.Cache
	pool        *background.Pool
	rateLimiter *middleware.RateLimitManager
	navigation  *navigation.Table
	templates   *template.Template

	templateHandler *handlers.TemplateHandler
	router          *gin.Engine
	server          *http.Server
}

func New(ctx context.Context, cfg *config.Config, opts Options) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &Application{
		cfg:     cfg,
		options: opts,
	}

	if err := app.initNavigation(); err != nil {
		return nil, err
	}

	if err := app.initTemplates(); err != nil {
		return nil, err
	}

	app.initCache()
	app.rateLimiter = middleware.NewRateLimitManager(ctx)

	if err := app.initHandlers(); err != nil {
		return nil, err
	}

	app.initRouter()
	app.warmCache(ctx)

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

	if a.pool != nil {
		if err := a.pool.Shutdown(ctx); err != nil {
			logger.Error(err, "Failed to stop background workers", nil)
		}
	}

	if a.rateLimiter != nil {
		if err := a.rateLimiter.Shutdown(); err != nil {
			logger.Error(err, "Failed to stop rate limiter", nil)
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) initNavigation() error {
	items := a.options.Navigation
	if len(items) == 0 {
		items = navigation.Default()
	}

	table, err := navigation.NewTable(items)
	if err != nil {
		return fmt.Errorf("failed to build navigation: %w", err)
	}

	a.navigation = table
	logger.Info("Navigation loaded", map[string]interface{}{"entries": table.Len()})
	return nil
}

func (a *Application) initTemplates() error {
	tmpl, err := utils.LoadTemplates(templates.FS, templates.Layout)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	for _, item := range a.navigation.Items() {
		if tmpl.Lookup(handlers.ContentTemplateName(item.Path)) == nil {
			return fmt.Errorf("no template for navigation entry %q (%s)", item.Title, item.Path)
		}
	}

	a.templates = tmpl
	logger.Info("Templates loaded successfully", nil)
	return nil
}

// initCache falls back to rendering without a cache when redis is unreachable.
func (a *Application) initCache() {
	if !a.cfg.EnableCache {
		return
	}

	c, err := cache.NewCache(a.cfg.RedisURL, true)
	if err != nil {
		logger.Error(err, "Failed to initialize cache, continuing without it", map[string]interface{}{"redis": a.cfg.RedisURL})
		return
	}

	a.cache = c
}

// warmCache drops pages cached by a previous deployment and renders every
// navigation entry in both menu states.
func (a *Application) warmCache(ctx context.Context) {
	if a.cache == nil {
		return
	}

	if err := a.cache.InvalidatePages(ctx); err != nil {
		logger.Error(err, "Failed to invalidate cached pages", nil)
	}

	a.pool = background.NewPool(2, 16)
	a.pool.Start(ctx)

	for _, item := range a.navigation.Items() {
		for _, menuOpen := range []bool{false, true} {
			task := background.Task{
				Name:    "warm_page",
				Timeout: 5 * time.Second,
				Retries: 2,
				Backoff: time.Second,
				Run: func(ctx context.Context) error {
					return a.templateHandler.WarmPage(ctx, item, menuOpen)
				},
			}
			if err := a.pool.Submit(task); err != nil {
				logger.Error(err, "Failed to schedule cache warm-up", map[string]interface{}{"path": item.Path})
				return
			}
		}
	}
}

func (a *Application) initHandlers() error {
	templateHandler, err := handlers.NewTemplateHandler(a.cfg, a.templates, a.navigation)
	if err != nil {
		return fmt.Errorf("failed to initialize template handler: %w", err)
	}

	if a.cache != nil {
		templateHandler.SetCache(a.cache)
	}

	a.templateHandler = templateHandler
	return nil
}

func (a *Application) initRouter() {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(logger.GinLogger())
	if a.cfg.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}
	router.Use(middleware.SecurityHeadersMiddleware(
		[]string{a.templateHandler.TailwindURL()},
		[]string{"'unsafe-inline'"},
	))
	router.Use(middleware.RateLimitMiddleware(a.cfg, a.rateLimiter))

	router.GET("/health", handlers.Health)
	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	router.GET("/", a.templateHandler.RedirectHome)
	for _, item := range a.navigation.Items() {
		router.GET(item.Path, a.templateHandler.RenderPage)
	}

	corsConfig := cors.Config{
		AllowOrigins:  a.cfg.CORSOrigins,
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	}

	v1 := router.Group("/api/v1")
	v1.Use(cors.New(corsConfig))
	{
		v1.GET("/navigation", a.templateHandler.GetNavigation)
	}

	router.NoRoute(func(c *gin.Context) {
		if path := c.Request.URL.Path; path == "/api" || strings.HasPrefix(path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Route not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		a.templateHandler.RenderNotFound(c)
	})

	a.router = router
}
