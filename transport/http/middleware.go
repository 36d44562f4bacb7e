package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/somnia-network/govauth/service"
)

const (
	// ContextAddressKey is the gin context key for the resolved address
	ContextAddressKey = "userAddress"

	// ContextAuthenticatedAtKey is the gin context key for the local time
	// the request was authenticated. Informational only; it is not the
	// token's issuance time.
	ContextAuthenticatedAtKey = "authenticatedAt"
)

// RequireAuth creates middleware that rejects requests without a valid
// bearer token and attaches the resolved address to the context.
func RequireAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenID, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
			return
		}

		token, ok := authService.VerifyToken(tokenID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ContextAddressKey, token.Address)
		c.Set(ContextAuthenticatedAtKey, time.Now())

		c.Next()
	}
}

// OptionalAuth attaches the resolved address when a valid bearer token is
// present and proceeds anonymously otherwise.
func OptionalAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenID, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if token, ok := authService.VerifyToken(tokenID); ok {
				c.Set(ContextAddressKey, token.Address)
				c.Set(ContextAuthenticatedAtKey, time.Now())
			}
		}

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}

	token := header[len(prefix):]
	if token == "" {
		return "", false
	}

	return token, true
}

// CORS sets the cross-origin headers for the governance frontend and
// answers preflight requests.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "content-type, authorization")
		c.Header("Access-Control-Max-Age", "3600")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SecurityHeaders sets the standard browser hardening headers.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		c.Next()
	}
}

// RequestLogger logs each request with the authenticated address when one
// was resolved by the auth middleware.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if address, exists := c.Get(ContextAddressKey); exists {
			attrs = append(attrs, "user_address", address.(common.Address).Hex())
		}

		log.Info("request processed", attrs...)
	}
}
