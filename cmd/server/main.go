package main

import (
	"log"
	"time"

	"diligencias_app_go/config"
	"diligencias_app_go/db"
	"diligencias_app_go/handlers"
	"diligencias_app_go/middleware"
	"diligencias_app_go/models"
	"diligencias_app_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.TursoDatabaseURL, cfg.TursoAuthToken, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.PasswordResetToken{},
		&models.UnitConfig{},
		&models.CaseRecord{},
		&models.Person{},
		&models.Lawyer{},
		&models.Event{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Static files
	e.Static("/static", "static")

	// Public routes: logged-in users are sent back to the dashboard
	public := e.Group("")
	public.Use(middleware.RedirectIfAuthenticated())
	{
		public.GET("/login", handlers.LoginHandler)
		public.POST("/login", handlers.LoginPostHandler, middleware.LoginRateLimiter.Middleware())
		public.GET("/signup", handlers.SignupHandler)
		public.POST("/signup", handlers.SignupPostHandler, middleware.LoginRateLimiter.Middleware())
		public.GET("/forgot-password", handlers.ForgotPasswordHandler)
		public.POST("/forgot-password", handlers.ForgotPasswordPostHandler, middleware.PasswordResetRateLimiter.Middleware())
		public.GET("/reset-password", handlers.ResetPasswordHandler)
		public.POST("/reset-password", handlers.ResetPasswordPostHandler, middleware.PasswordResetRateLimiter.Middleware())
	}

	// Protected routes
	protected := e.Group("")
	protected.Use(middleware.RequireAuth())
	{
		protected.GET("/", handlers.DashboardHandler)
		protected.POST("/logout", handlers.LogoutHandler)

		// Entity manager
		protected.GET("/entidades", handlers.EntitiesPageHandler)
		protected.GET("/entidades/lista", handlers.EntityListHandler)
		protected.POST("/entidades", handlers.EntitySaveHandler, middleware.WriteRateLimiter.Middleware())
		protected.POST("/entidades/:kind/:id/borrar", handlers.EntityDeleteHandler, middleware.WriteRateLimiter.Middleware())
		protected.GET("/entidades/borrar-todo", handlers.EntitiesDeleteAllConfirmHandler)
		protected.POST("/entidades/borrar-todo", handlers.EntitiesDeleteAllHandler, middleware.WriteRateLimiter.Middleware())
		protected.GET("/entidades/exportar", handlers.EntitiesExportHandler)

		// Events
		protected.GET("/eventos", handlers.EventsPageHandler)
		protected.POST("/eventos", handlers.EventCreateHandler, middleware.WriteRateLimiter.Middleware())
		protected.POST("/eventos/:id", handlers.EventUpdateHandler, middleware.WriteRateLimiter.Middleware())
		protected.POST("/eventos/:id/borrar", handlers.EventDeleteHandler, middleware.WriteRateLimiter.Middleware())

		// Unit configuration
		protected.GET("/configuracion", handlers.ConfiguracionPageHandler)
		protected.POST("/configuracion", handlers.ConfiguracionSaveHandler, middleware.WriteRateLimiter.Middleware())

		// Diligencia catalog and forms
		protected.GET("/diligencias", handlers.DiligenciasPageHandler)
		protected.GET("/diligencias/archivo", handlers.DiligenciaArchivoHandler)
		protected.GET("/diligencias/caratula", handlers.DiligenciaCaratulaHandler)
		protected.GET("/diligencias/aviso-letrado", handlers.DiligenciaAvisoLetradoHandler)

		// Activity log
		protected.GET("/actividad", handlers.AuditLogPageHandler)
	}

	// Start background cleanup jobs (runs every hour)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}

			if err := services.CleanupExpiredTokens(db.DB); err != nil {
				log.Printf("Error cleaning up expired tokens: %v", err)
			}
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
