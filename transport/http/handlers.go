package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/somnia-network/govauth/core"
	"github.com/somnia-network/govauth/service"
)

// AuthHandlers contains HTTP handlers for auth endpoints
type AuthHandlers struct {
	authService *service.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authService *service.AuthService) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
	}
}

// AuthResponse is the envelope returned by the authenticate endpoint.
// Expected failures travel in this envelope, not as transport errors.
type AuthResponse struct {
	Success   bool       `json:"success"`
	Token     string     `json:"token,omitempty"`
	Address   string     `json:"address,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// Challenge handles the challenge request
func (h *AuthHandlers) Challenge(c *gin.Context) {
	var req struct {
		Address string `json:"address" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	challenge, err := h.authService.CreateChallenge(req.Address)
	if err != nil {
		if errors.Is(err, core.ErrInvalidAddress) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address format"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create challenge"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"nonce":      challenge.Nonce,
		"message":    challenge.Message,
		"expires_at": challenge.ExpiresAt,
	})
}

// Authenticate handles the signed-challenge submission
func (h *AuthHandlers) Authenticate(c *gin.Context) {
	var req struct {
		Address   string `json:"address" binding:"required"`
		Message   string `json:"message" binding:"required"`
		Signature string `json:"signature" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result := h.authService.Authenticate(c.Request.Context(), req.Address, req.Message, req.Signature)
	if !result.Success {
		c.JSON(http.StatusOK, AuthResponse{
			Success: false,
			Error:   failureMessage(result.Reason),
		})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Success:   true,
		Token:     result.TokenID,
		Address:   result.Address.Hex(),
		ExpiresAt: &result.ExpiresAt,
	})
}

// failureMessage renders a rejection reason for clients. The two
// cryptographic reasons share one message so responses don't reveal which
// verification step failed.
func failureMessage(reason core.FailureReason) string {
	switch reason {
	case core.ReasonInvalidAddress:
		return "Invalid address format"
	case core.ReasonNoChallenge:
		return "No challenge found for this address"
	case core.ReasonChallengeExpired:
		return "Challenge expired"
	case core.ReasonMessageMismatch:
		return "Message does not match challenge"
	case core.ReasonSignatureInvalid, core.ReasonVerificationError:
		return "Invalid signature"
	default:
		return "Authentication failed"
	}
}

// Logout handles token revocation. The token to revoke is the caller's own
// bearer credential.
func (h *AuthHandlers) Logout(c *gin.Context) {
	tokenID, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
		return
	}

	h.authService.RevokeToken(c.Request.Context(), tokenID)

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Stats returns store occupancy counters
func (h *AuthHandlers) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.authService.Stats())
}

// Me returns information about the authenticated user
func (h *AuthHandlers) Me(c *gin.Context) {
	address, exists := c.Get(ContextAddressKey)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User not found in context"})
		return
	}
	authenticatedAt, _ := c.Get(ContextAuthenticatedAtKey)

	response := gin.H{
		"address": address.(common.Address).Hex(),
	}
	if ts, ok := authenticatedAt.(time.Time); ok {
		response["authenticated_at"] = ts
	}

	c.JSON(http.StatusOK, response)
}

// Authorize checks if a user is authorized
func (h *AuthHandlers) Authorize(c *gin.Context) {
	// The auth middleware has already validated the token.
	address, exists := c.Get(ContextAddressKey)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User not found in context"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authorized": true,
		"address":    address.(common.Address).Hex(),
	})
}

// Health is the liveness endpoint
func (h *AuthHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
