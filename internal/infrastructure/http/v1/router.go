// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"devinventory/internal/domain/catalogs/division"
	"devinventory/internal/domain/catalogs/itemtype"
	"devinventory/internal/domain/device"
	"devinventory/internal/infrastructure/http/v1/handlers"
	"devinventory/internal/infrastructure/http/v1/middleware"
	"devinventory/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	ItemTypes *itemtype.Service
	Divisions *division.Service
	Devices   *device.Service

	// Health serves /health; nil registers liveness only
	Health *handlers.HealthHandler
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	middleware.SetupValidator()

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth)
	registerHealthRoutes(router.Group("/health"), cfg.Health)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(cfg.JWTValidator))
	{
		registerCatalogRoutes(v1, cfg)
		registerDeviceRoutes(v1, cfg)
	}

	return router
}

func registerHealthRoutes(rg *gin.RouterGroup, h *handlers.HealthHandler) {
	if h == nil {
		h = handlers.NewHealthHandler("", "", nil)
	}
	rg.GET("/live", h.Live)
	rg.GET("/ready", h.Ready)
	rg.GET("/info", h.Info)
}

// registerCatalogRoutes registers the reference list endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- ITEM TYPES ---
	if cfg.ItemTypes != nil {
		handler := handlers.NewItemTypeHandler(baseHandler, cfg.ItemTypes)
		RegisterCatalogRoutes(catalogs.Group("/item-types"), handler)
	}

	// --- DIVISIONS ---
	if cfg.Divisions != nil {
		handler := handlers.NewDivisionHandler(baseHandler, cfg.Divisions)
		RegisterCatalogRoutes(catalogs.Group("/divisions"), handler)
	}
}

// registerDeviceRoutes registers the inventory endpoints.
// Static segments are registered next to :id; gin gives them precedence.
func registerDeviceRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.Devices == nil {
		return
	}

	h := handlers.NewDeviceHandler(handlers.NewBaseHandler(), cfg.Devices)
	read := middleware.RequirePermission(middleware.PermDeviceRead)
	write := middleware.RequirePermission(middleware.PermDeviceWrite)

	devices := rg.Group("/devices")
	devices.GET("", read, h.List)
	devices.POST("", write, h.Create)
	devices.GET("/summary", read, h.Summary)
	devices.GET("/next-code", write, h.NextCode)
	devices.GET("/values/:field", read, h.Values)
	devices.GET("/by-code/:kodeId", read, h.GetByKodeID)
	devices.GET("/:id", read, h.Get)
	devices.PUT("/:id", write, h.Update)
	devices.DELETE("/:id", middleware.RequirePermission(middleware.PermDeviceDelete), h.Delete)
	devices.GET("/:id/history", read, h.History)
}
