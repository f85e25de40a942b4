package v1

import (
	"github.com/gin-gonic/gin"

	"devinventory/internal/infrastructure/http/v1/middleware"
)

// CatalogRouteHandler defines the interface for reference list handlers.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	GetByCode(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a reference list.
// Reads need catalog:read; every change needs catalog:write.
//
// Usage:
//
//	handler := handlers.NewItemTypeHandler(baseHandler, itemTypes)
//	RegisterCatalogRoutes(catalogs.Group("/item-types"), handler)
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler) {
	read := middleware.RequirePermission(middleware.PermCatalogRead)
	write := middleware.RequirePermission(middleware.PermCatalogWrite)

	group.GET("", read, handler.List)
	group.POST("", write, handler.Create)
	group.GET("/by-code/:code", read, handler.GetByCode)
	group.GET("/:id", read, handler.Get)
	group.PUT("/:id", write, handler.Update)
	group.DELETE("/:id", write, handler.Delete)
}
