package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledback/ledback_backend/internal/core/domain"
)

const ownerCtxKey = contextKey("owner")

// IdentityHeader carries the caller identity, set by the authenticating
// reverse proxy in front of this service.
const IdentityHeader = "X-User-Email"

// IdentityMiddleware resolves the caller's owner id from the trusted identity
// header and stores it in the request context. Requests without an identity
// are rejected.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetHeader(IdentityHeader)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing " + IdentityHeader + " header"})
			return
		}

		owner := domain.OwnerID(email)

		logger := GetLoggerFromCtx(c.Request.Context())
		enrichedLogger := logger.With(slog.String("owner", email))

		ctx := context.WithValue(c.Request.Context(), ownerCtxKey, owner)
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// OptionalIdentityMiddleware resolves the identity header when present but
// lets anonymous requests through as the global owner. Used on read routes
// that serve the shared catalog.
func OptionalIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetHeader(IdentityHeader)
		if email == "" {
			c.Next()
			return
		}

		ctx := context.WithValue(c.Request.Context(), ownerCtxKey, domain.OwnerID(email))
		ctx = context.WithValue(ctx, loggerCtxKey, GetLoggerFromCtx(ctx).With(slog.String("owner", email)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetOwnerFromContext retrieves the caller's owner id from the Gin context.
// It returns the owner and a boolean indicating if it was found.
func GetOwnerFromContext(c *gin.Context) (domain.OwnerID, bool) {
	owner, ok := c.Request.Context().Value(ownerCtxKey).(domain.OwnerID)
	if !ok {
		return domain.GlobalOwner, false
	}
	return owner, true
}
