// internal/handlers/preferences.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/popgo-backend/internal/i18n"
	"github.com/javajoker/popgo-backend/internal/services"
	"github.com/javajoker/popgo-backend/internal/utils"
)

type PreferencesHandler struct {
	preferenceService PreferenceService
}

func NewPreferencesHandler(preferenceService PreferenceService) *PreferencesHandler {
	return &PreferencesHandler{preferenceService: preferenceService}
}

// GET /api/preferences
func (h *PreferencesHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	utils.SuccessResponse(c, h.preferenceService.Get(c.Request.Context(), userID))
}

// PUT /api/preferences
func (h *PreferencesHandler) Update(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.UpdatePreferencesRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.preferenceService.Update(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, i18n.KeyUserNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyPreferencesUpdated),
		"preferences": view,
	})
}

// POST /api/preferences/visits/:id
func (h *PreferencesHandler) RecordVisit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	itemID := strings.TrimSpace(c.Param("id"))
	if itemID == "" {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyValidationRequired, "id"), nil)
		return
	}

	count, err := h.preferenceService.RecordVisit(c.Request.Context(), userID, itemID)
	if err != nil {
		respondError(c, err, i18n.KeyUserNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{"id": itemID, "visits": count})
}
