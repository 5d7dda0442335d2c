package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// AdminSessions is the part of the admin authenticator the handler needs
type AdminSessions interface {
	Login(ctx context.Context, username, password string) (*auth.Token, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

var _ AdminSessions = (*auth.AdminAuthenticator)(nil)

// AuthHandler handles admin authentication requests
type AuthHandler struct {
	BaseHandler
	sessions AdminSessions
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions AdminSessions) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login godoc
//
//	@ID				login
//	@Summary		Admin login
//	@Description	Exchanges the admin credentials for a bearer token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Login credentials"
//	@Success		200		{object}	LoginResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		429		{object}	ErrorResponse
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	token, err := h.sessions.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		log := logger.Enrich(c.Request.Context(), logger.GetGinLogger(c))
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Warn("Admin login rejected", zap.String("client_ip", c.ClientIP()))
			h.Unauthorized(c, "Invalid username or password")
			return
		}
		log.Error("Failed to issue token", zap.Error(err))
		h.InternalError(c)
		return
	}

	h.Success(c, "Login successful", TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		ExpiresIn:   int64(time.Until(token.ExpiresAt).Seconds()),
	})
}

// Logout godoc
//
//	@ID				logout
//	@Summary		Admin logout
//	@Description	Revokes the bearer token used for this request
//	@Tags			auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	MessageResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	if err := h.sessions.Logout(c.Request.Context(), claims); err != nil {
		logger.Enrich(c.Request.Context(), logger.GetGinLogger(c)).Error("Failed to revoke token", zap.Error(err))
		h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "Failed to log out")
		return
	}
	h.Success(c, "Logged out successfully", nil)
}

// Me godoc
//
//	@ID			currentUser
//	@Summary	Current admin
//	@Tags		auth
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	CurrentUserEnvelope
//	@Failure	401	{object}	ErrorResponse
//	@Router		/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	resp := CurrentUserResponse{Username: claims.Username, Role: claims.Role}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}
	h.Success(c, "Current user retrieved successfully", resp)
}
