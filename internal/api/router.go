package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/royalestate/realty-platform/internal/api/handler"
	"github.com/royalestate/realty-platform/internal/api/middleware"
	"github.com/royalestate/realty-platform/internal/core/domain"
	"github.com/royalestate/realty-platform/internal/core/ports"
	"github.com/royalestate/realty-platform/internal/core/service"
)

// RouterConfig carries the wired services the HTTP surface exposes. DB and
// RDB may be nil when the platform runs without a backend; routes stay up and
// the listing service serves its simulated mode.
type RouterConfig struct {
	JWTSecret string
	Log       zerolog.Logger
	DB        *mongo.Database
	RDB       *redis.Client
	Provider  ports.AuthProvider
	Sessions  ports.SessionStore
	Listings  ports.ListingService
	Sections  *service.ViewRouter
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("realty"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(cfg.Provider, cfg.Sessions)
	listingHandler := handler.NewListingHandler(cfg.Listings)
	navigationHandler := handler.NewNavigationHandler()
	toolsHandler := handler.NewToolsHandler()

	authRequired := middleware.Auth(cfg.JWTSecret)
	authOptional := middleware.AuthOptional(cfg.JWTSecret)
	memberOnly := middleware.RBAC(domain.RoleClient, domain.RoleBroker, domain.RoleEmployee, domain.RoleSuperAdmin)

	// --- Auth routes ---
	auth := e.Group("/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/guest", authHandler.Guest)
	auth.POST("/logout", authHandler.Logout, authRequired)
	auth.GET("/session", authHandler.Session)

	// --- Navigation ---
	e.GET("/v1/navigation", navigationHandler.Navigation, authOptional)

	// --- Active section ---
	if cfg.Sections != nil {
		sectionHandler := handler.NewSectionHandler(cfg.Sections)
		e.GET("/v1/sections", sectionHandler.Active, authOptional)
		e.PUT("/v1/sections/:id", sectionHandler.Activate, authOptional)
	}

	// --- Listings ---
	listings := e.Group("/v1/listings")
	listings.GET("", listingHandler.List, authOptional)
	listings.POST("", listingHandler.Create, authRequired, memberOnly)
	listings.PUT("/:id", listingHandler.Update, authRequired, memberOnly)
	listings.DELETE("/:id", listingHandler.Delete, authRequired, memberOnly)

	e.POST("/v1/uploads", listingHandler.Upload, authRequired, memberOnly)

	// --- Broker toolbox (gated like its navigation section) ---
	tools := e.Group("/v1/tools", authRequired, middleware.RBACSection(domain.SectionTools))
	tools.GET("/contracts", toolsHandler.Templates)
	tools.POST("/contracts", toolsHandler.RenderContract)
	tools.POST("/watermark", toolsHandler.Watermark)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(cfg.DB, cfg.RDB)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
