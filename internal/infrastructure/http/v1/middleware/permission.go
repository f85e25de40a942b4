// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"github.com/gin-gonic/gin"

	"devinventory/internal/core/apperror"
	appctx "devinventory/internal/core/context"
)

// Permissions carried in the token's perms claim.
const (
	PermDeviceRead   = "device:read"
	PermDeviceWrite  = "device:write" // create, update, next-code preview
	PermDeviceDelete = "device:delete"

	PermCatalogRead  = "catalog:read"
	PermCatalogWrite = "catalog:write"
)

// RequirePermission rejects callers without permission. Admins pass every check.
// Must run after Auth.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		switch {
		case user == nil:
			abortUnauthorized(c, "authentication required")
		case !user.HasPermission(permission):
			_ = c.Error(apperror.NewForbidden("insufficient permissions").
				WithDetail("required_permission", permission))
			c.Abort()
		default:
			c.Next()
		}
	}
}
