// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/popgo-backend/internal/i18n"
	"github.com/javajoker/popgo-backend/internal/services"
	"github.com/javajoker/popgo-backend/internal/utils"
)

type AuthHandler struct {
	authService AuthService
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	authResponse, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, i18n.KeyUserNotFound)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":      i18n.T(lang, i18n.KeyAuthRegisterSuccess),
		"user":         authResponse.User,
		"token":        authResponse.Token,
		"token_type":   authResponse.TokenType,
		"expires_in":   authResponse.ExpiresIn,
		"idle_timeout": authResponse.IdleTimeout,
	})
}

// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	authResponse, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, i18n.KeyUserNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":      i18n.T(lang, i18n.KeyAuthLoginSuccess),
		"user":         authResponse.User,
		"token":        authResponse.Token,
		"token_type":   authResponse.TokenType,
		"expires_in":   authResponse.ExpiresIn,
		"idle_timeout": authResponse.IdleTimeout,
	})
}

// POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if token, ok := utils.GetTokenFromContext(c); ok {
		h.authService.Logout(token)
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthLogoutSuccess),
	})
}

// POST /api/logout/all
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	closed := h.authService.LogoutAll(userID)

	utils.SuccessResponse(c, gin.H{
		"message":         i18n.T(lang, i18n.KeyAuthLogoutSuccess),
		"sessions_closed": closed,
	})
}

// GET /api/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, i18n.KeyUserNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}
