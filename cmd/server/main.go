package main

import (
	"log"
	"time"

	"page_flow_app_go/config"
	"page_flow_app_go/db"
	"page_flow_app_go/handlers"
	"page_flow_app_go/middleware"
	"page_flow_app_go/models"
	"page_flow_app_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment, cfg.TursoDatabaseURL, cfg.TursoAuthToken); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.Session{}, &models.PreviewDraft{}, &models.ProxyAuditLog{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize file storage (R2 or local fallback)
	services.InitializeStorage(cfg)

	// Compute cache-busting asset versions once at startup
	middleware.InitAssetVersions()

	client := services.NewBackendClient(cfg)
	pageService := services.NewLandingPageService(client, db.DB, cfg.SessionSecret)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.ContextKeyConfig, cfg)
			return next(c)
		}
	})

	// Static files
	e.Static("/static", "static")

	// Session routes
	sessionHandler := handlers.NewSessionHandler(client, cfg)
	e.GET("/api/auth/session", sessionHandler.GetSession)
	e.POST("/api/auth/login", sessionHandler.Login, middleware.LoginRateLimiter.Middleware())
	e.POST("/api/auth/logout", sessionHandler.Logout)

	// AI proxy routes (session optional: the backend scopes by payload)
	ai := e.Group("/api/ai")
	ai.Use(middleware.GenerationRateLimiter.Middleware())
	ai.Use(middleware.AuditProxy())
	handlers.NewAIHandler(client, cfg).Register(ai)

	// Landing page routes (authenticated)
	pages := e.Group("/api/landing-pages")
	pages.Use(middleware.RequireAuth(cfg))
	pages.Use(middleware.AuditProxy())
	pagesHandler := handlers.NewLandingPagesHandler(pageService, cfg)
	pagesHandler.Register(pages)
	handlers.NewDownloadHandler(client, cfg).Register(pages)

	// Business info routes (authenticated)
	business := e.Group("/api/business-info")
	business.Use(middleware.RequireAuth(cfg))
	handlers.NewBusinessInfoHandler(client, cfg).Register(business)

	// Preview routes
	previewHandler := handlers.NewPreviewHandler(client, cfg)
	e.POST("/api/preview-landing-page", previewHandler.Preview)
	e.GET("/api/preview-landing-page/latest", previewHandler.Latest, middleware.RequireAuth(cfg))
	e.GET("/preview", previewHandler.PreviewPage, middleware.RequireAuth(cfg))

	// Design upload (authenticated, rate limited)
	uploadHandler := handlers.NewUploadHandler(client, cfg)
	e.POST("/api/upload-design", uploadHandler.UploadDesign,
		middleware.RequireAuth(cfg), middleware.UploadRateLimiter.Middleware())

	// Start background cleanup jobs (runs every hour)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
