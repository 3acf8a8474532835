package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gravadigital/prestigio-api/internal/backup"
	"github.com/gravadigital/prestigio-api/internal/config"
	"github.com/gravadigital/prestigio-api/internal/handlers"
	"github.com/gravadigital/prestigio-api/internal/logger"
	"github.com/gravadigital/prestigio-api/internal/middleware"
	"github.com/gravadigital/prestigio-api/internal/services"
	"github.com/gravadigital/prestigio-api/internal/storage"
)

// Server represents the admin HTTP server
type Server struct {
	httpServer *http.Server
	config     *config.Config
	service    *services.PrestigeService
	uploader   *backup.Uploader
}

// New creates a new server instance. The uploader may be nil when backups
// are not configured.
func New(cfg *config.Config, store storage.Store, uploader *backup.Uploader) *Server {
	return &Server{
		config:   cfg,
		service:  services.NewPrestigeService(store),
		uploader: uploader,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	router := s.setupRouter()

	s.httpServer = &http.Server{
		Addr:    ":" + s.config.Server.Port,
		Handler: router,

		// Timeouts seguros según estándares de Go
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Get().Info("Starting admin HTTP server", "port", s.config.Server.Port,
		"auth", s.config.AuthEnabled(), "backup", s.uploader != nil)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	logger.Get().Info("Shutting down HTTP server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *gin.Engine {
	if s.config.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(s.config.CORS.AllowOrigins, ",")
	corsConfig.AllowMethods = strings.Split(s.config.CORS.AllowMethods, ",")
	corsConfig.AllowHeaders = strings.Split(s.config.CORS.AllowHeaders, ",")
	if s.config.CORS.AllowOrigins == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowOrigins = nil
	}
	router.Use(cors.New(corsConfig))

	router.NoRoute(middleware.NoRoute)

	// Health check
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Prestigio API is running",
			"status":  "healthy",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.setupAPIRoutes(router)

	return router
}

// setupAPIRoutes configures all API routes
func (s *Server) setupAPIRoutes(router *gin.Engine) {
	dataHandler := handlers.NewDataHandler(s.service)
	personHandler := handlers.NewPersonHandler(s.service)
	eventHandler := handlers.NewEventHandler(s.service)
	vouchHandler := handlers.NewVouchHandler(s.service)
	authHandler := handlers.NewAuthHandler(s.config)
	backupHandler := handlers.NewBackupHandler(s.service, s.uploader)

	api := router.Group("/api")
	{
		api.POST("/login", authHandler.Login)

		// Read surface stays open, the public page consumes it
		api.GET("/data", dataHandler.GetData)
		api.GET("/leaderboard", dataHandler.GetLeaderboard)
		api.GET("/history", dataHandler.GetHistory)
		api.GET("/pending", vouchHandler.GetPending)

		// Vouch voting is open too: voters are anonymous devices
		api.POST("/vouch", vouchHandler.SubmitVote)

		// Mutating admin routes require a session when auth is configured
		admin := api.Group("")
		if s.config.AuthEnabled() {
			admin.Use(middleware.RequireAdmin(s.config.Admin.JWTSecret))
		}
		{
			admin.POST("/person", personHandler.CreatePerson)
			admin.DELETE("/person/:id", personHandler.DeletePerson)
			admin.POST("/event", eventHandler.CreateEvent)
			admin.PUT("/event/:id", eventHandler.UpdateEvent)
			admin.DELETE("/event/:id", eventHandler.DeleteEvent)
			admin.POST("/backup", backupHandler.CreateBackup)
		}
	}
}
