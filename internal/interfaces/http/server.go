// internal/interfaces/http/server.go
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ayuraa/wellness-backend/internal/config"
	"github.com/ayuraa/wellness-backend/internal/domain/booking"
	"github.com/ayuraa/wellness-backend/internal/domain/chat"
	"github.com/ayuraa/wellness-backend/internal/domain/checkout"
	"github.com/ayuraa/wellness-backend/internal/domain/goal"
	"github.com/ayuraa/wellness-backend/internal/domain/healer"
	"github.com/ayuraa/wellness-backend/internal/domain/identity"
	"github.com/ayuraa/wellness-backend/internal/domain/profile"
	"github.com/ayuraa/wellness-backend/internal/domain/session"
	"github.com/ayuraa/wellness-backend/internal/domain/wishlist"
	"github.com/ayuraa/wellness-backend/internal/infrastructure/database/postgres"
	redisinfra "github.com/ayuraa/wellness-backend/internal/infrastructure/database/redis"
	"github.com/ayuraa/wellness-backend/internal/interfaces/http/handlers"
	"github.com/ayuraa/wellness-backend/internal/interfaces/http/middleware"
	"github.com/ayuraa/wellness-backend/internal/interfaces/http/routes"
	"github.com/ayuraa/wellness-backend/internal/pkg/auth"
	"github.com/ayuraa/wellness-backend/internal/pkg/email"
	"github.com/ayuraa/wellness-backend/internal/pkg/pdf"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// Server represents the HTTP server
type Server struct {
	config     *config.Config
	logger     *logrus.Logger
	gin        *gin.Engine
	httpServer *http.Server
	db         *postgres.DB
	cache      *redisinfra.Client
	metrics    *middleware.Metrics
	sessions   *session.Manager
}

// NewServer wires the services and builds the router
func NewServer(cfg *config.Config, logger *logrus.Logger, db *postgres.DB, cache *redisinfra.Client) (*Server, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
	}

	s := &Server{
		config:  cfg,
		logger:  logger,
		db:      db,
		cache:   cache,
		metrics: middleware.NewMetrics(),
	}

	h, guards, err := s.buildHandlers()
	if err != nil {
		return nil, err
	}

	s.gin = gin.New()
	if err := s.gin.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	s.setupMiddleware()
	s.setupRoutes(h, guards)

	return s, nil
}

// buildHandlers constructs every service and handler
func (s *Server) buildHandlers() (*routes.Handlers, routes.Guards, error) {
	cfg, logger := s.config, s.logger
	db := s.db.GetDB()
	rdb := s.cache.GetClient()

	var provider identity.Provider
	switch cfg.External.Auth.Provider {
	case "gotrue":
		provider = identity.NewGoTrueProvider(cfg.External.Auth)
	case "local", "":
		provider = identity.NewLocalProvider(
			db,
			auth.NewPasswordManager(cfg),
			auth.NewJWTManager(cfg),
			identity.NewRedisRevoker(rdb),
		)
	default:
		return nil, routes.Guards{}, fmt.Errorf("unknown auth provider %q", cfg.External.Auth.Provider)
	}
	identityService := identity.NewService(provider, cfg.Security.MinPasswordLength, logger)

	profiles := profile.NewService(db, logger)
	healers := healer.NewService(profiles, s.cache, cfg.Storefront.HealerCacheTTL, logger)

	s.sessions = session.NewManager(
		session.NewRedisStore(rdb, cfg.Storefront.SessionTTL),
		cfg,
		logger,
		session.WithListeners(
			session.NewCategoryFocus(healer.CategoryLabel),
			s.metrics.NavigationListener(),
		),
	)

	mailer := email.NewService(cfg, logger)
	bookings := booking.NewService(db, booking.NewMailNotifier(mailer, profiles), logger)
	receipts := pdf.NewService(cfg.Storefront.WkhtmltopdfPath, pdf.CompanyInfo{
		Name:    cfg.External.Email.FromName,
		Email:   cfg.External.Email.FromEmail,
		Phone:   "+91 98765 43210",
		Address: "Wellness Center, Mumbai, India",
	})

	var upstream chat.Upstream
	if u, ok := chat.NewHTTPUpstream(cfg.External.Chat); ok {
		upstream = u
	}

	h := &routes.Handlers{
		Auth:       handlers.NewAuthHandler(identityService, profiles, s.sessions, mailer, logger),
		Profile:    handlers.NewProfileHandler(profiles, healers, logger),
		Booking:    handlers.NewBookingHandler(bookings, profiles, receipts, logger),
		Healer:     handlers.NewHealerHandler(healers, logger),
		Goal:       handlers.NewGoalHandler(goal.NewService(db, logger), logger),
		Wishlist:   handlers.NewWishlistHandler(wishlist.NewService(db, logger), logger),
		Chat:       handlers.NewChatHandler(chat.NewService(upstream, logger), logger),
		Storefront: handlers.NewStorefrontHandler(s.sessions, profiles, healers, logger),
		Cart:       handlers.NewCartHandler(s.sessions, s.metrics, logger),
		Checkout:   handlers.NewCheckoutHandler(checkout.NewService(s.sessions.Pricing(), logger), s.sessions, logger),
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.App.Environment, s.db, s.cache),
	}
	guards := routes.NewGuards(identityService, middleware.Session(cfg))
	return h, guards, nil
}

// setupMiddleware configures all middleware for the server
func (s *Server) setupMiddleware() {
	s.gin.Use(gin.Recovery())
	s.gin.Use(middleware.RequestID())
	s.gin.Use(middleware.Logger(s.logger))
	s.gin.Use(s.metrics.Middleware())
	s.gin.Use(middleware.CORS(s.config))
	s.gin.Use(middleware.SecurityHeaders(s.config.App.Name))
	s.gin.Use(middleware.RateLimit(s.config.Security.RateLimitPerMinute, s.cache.GetClient(), s.logger))
	s.gin.Use(middleware.RequestSizeLimit(maxBodyBytes))
	s.gin.Use(middleware.Timeout(s.config.Server.RequestTimeout))
}

// setupRoutes configures all routes for the server
func (s *Server) setupRoutes(h *routes.Handlers, guards routes.Guards) {
	s.gin.GET("/health", h.Health.Health)
	s.gin.GET("/ready", h.Health.Ready)
	s.gin.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	routes.SetupRoutes(s.gin.Group("/api/v1"), h, guards)

	s.gin.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Endpoint not found",
		})
	})

	if s.config.IsDevelopment() {
		s.gin.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"message":     s.config.App.Name,
				"version":     s.config.App.Version,
				"environment": s.config.App.Environment,
				"health":      "/health",
				"endpoints": gin.H{
					"auth":       "/api/v1/auth",
					"profile":    "/api/v1/profile",
					"bookings":   "/api/v1/bookings",
					"healers":    "/api/v1/healers",
					"goals":      "/api/v1/goals",
					"wishlist":   "/api/v1/wishlist",
					"chat":       "/api/v1/chat",
					"storefront": "/api/v1/storefront",
					"cart":       "/api/v1/cart",
					"checkout":   "/api/v1/checkout",
				},
			})
		})
	}
}

// Handler returns the router
func (s *Server) Handler() http.Handler {
	return s.gin
}

// Sessions returns the storefront session manager
func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.gin,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	s.logger.WithFields(logrus.Fields{
		"port":     s.config.Server.Port,
		"base_url": fmt.Sprintf("http://localhost:%s/api/v1", s.config.Server.Port),
	}).Info("HTTP server starting")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("Shutting down HTTP server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server stopped gracefully")
	return nil
}
