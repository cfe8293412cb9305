package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/tenancy"
	"github.com/pms/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Tenant boundary keys
const (
	// TenantContextKey stores the request's tenancy.Context in gin.Context
	TenantContextKey = "tenant_context"
	// DebugTenantHeader names a tenant directly, bypassing token identity.
	// Honored only outside production and only when explicitly enabled.
	DebugTenantHeader = "X-Debug-Tenant"
)

// TenantValidator checks that a tenant exists and may issue requests.
// Satisfied by the tenancy application service.
type TenantValidator interface {
	EnsureActive(ctx context.Context, tenantID uuid.UUID) (*tenancy.Tenant, error)
}

// TenantBoundaryConfig holds configuration for the tenant boundary middleware
type TenantBoundaryConfig struct {
	// Validator verifies the tenant is active. Optional; without it the
	// boundary only establishes identity.
	Validator TenantValidator
	// Production hard-gates every debug switch below, regardless of value
	Production bool
	// AllowDebugOverride honors the X-Debug-Tenant header in development
	AllowDebugOverride bool
	// SkipPaths are paths that don't require a tenant identity
	SkipPaths []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// TenantBoundary constructs the request's tenancy.Context exactly once, from
// the verified JWT claim. Everything downstream receives tenant identity
// through this value; no other request input can influence it.
func TenantBoundary(cfg TenantBoundaryConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		claim := GetJWTTenantID(c)

		// Development-only escape hatch. Both conditions are required; the
		// production check is not configurable past this point.
		if !cfg.Production && cfg.AllowDebugOverride {
			if override := c.GetHeader(DebugTenantHeader); override != "" {
				if cfg.Logger != nil {
					cfg.Logger.Warn("Tenant identity overridden via debug header",
						zap.String("tenant_id", override),
						zap.String("path", path))
				}
				claim = override
			}
		}

		tctx, err := tenancy.FromVerifiedClaim(claim)
		if err != nil {
			respondUnauthenticated(c, "No verified tenant identity")
			return
		}

		if cfg.Validator != nil {
			if _, err := cfg.Validator.EnsureActive(c.Request.Context(), tctx.TenantID()); err != nil {
				if cfg.Logger != nil {
					cfg.Logger.Warn("Tenant validation failed",
						zap.String("tenant_id", tctx.TenantID().String()),
						zap.Error(err))
				}
				respondForbidden(c, "Tenant is not active")
				return
			}
		}

		c.Set(TenantContextKey, tctx)

		// Enrich the request context for logging and the persistence guard
		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, _ = logger.WithTenantID(ctx, log, tctx.TenantID().String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetTenantContext retrieves the request's tenancy.Context. The second
// return is false when the boundary middleware has not run.
func GetTenantContext(c *gin.Context) (tenancy.Context, bool) {
	if v, exists := c.Get(TenantContextKey); exists {
		if tctx, ok := v.(tenancy.Context); ok && tctx.Valid() {
			return tctx, true
		}
	}
	return tenancy.Context{}, false
}

func respondUnauthenticated(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHENTICATED",
			"message": message,
		},
	})
}

func respondForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "TENANT_SUSPENDED",
			"message": message,
		},
	})
}
