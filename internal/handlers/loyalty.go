// internal/handlers/loyalty.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/popgo-backend/internal/i18n"
	"github.com/javajoker/popgo-backend/internal/services"
	"github.com/javajoker/popgo-backend/internal/utils"
)

type LoyaltyHandler struct {
	loyaltyService LoyaltyService
}

func NewLoyaltyHandler(loyaltyService LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{loyaltyService: loyaltyService}
}

// POST /api/loyalty/calculate
func (h *LoyaltyHandler) Calculate(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	account, score, err := h.loyaltyService.Calculate(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, i18n.KeyUserNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyLoyaltyCalculated),
		"account": account,
		"score":   score,
	})
}

// GET /api/loyalty/dashboard
func (h *LoyaltyHandler) Dashboard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	dashboard, err := h.loyaltyService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, i18n.KeyUserNotFound)
		return
	}

	utils.SuccessResponse(c, dashboard)
}

// GET /api/loyalty/leaderboard
func (h *LoyaltyHandler) Leaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.DefaultLeaderboardSize)))
	if err != nil {
		limit = services.DefaultLeaderboardSize
	}

	entries, err := h.loyaltyService.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, i18n.KeyUserNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{"leaderboard": entries})
}
