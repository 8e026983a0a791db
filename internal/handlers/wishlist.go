// internal/handlers/wishlist.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/popgo-backend/internal/i18n"
	"github.com/javajoker/popgo-backend/internal/services"
	"github.com/javajoker/popgo-backend/internal/utils"
)

type WishlistHandler struct {
	wishlistService WishlistService
}

func NewWishlistHandler(wishlistService WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// GET /api/wishlist
func (h *WishlistHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	res, err := h.wishlistService.List(c.Request.Context(), userID, utils.GetListParams(c))
	if err != nil {
		respondError(c, err, i18n.KeyWishlistNotFound)
		return
	}

	utils.PaginatedResponse(c, res.Items, res.Result)
}

// POST /api/wishlist
func (h *WishlistHandler) Add(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.AddWishlistRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.wishlistService.Add(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, i18n.KeyWishlistNotFound)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyWishlistAdded),
		"item":    services.NewItemView(item.ToItem()),
	})
}

// DELETE /api/wishlist/:id
func (h *WishlistHandler) Delete(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, i18n.KeyWishlistNotFound)
	if !ok {
		return
	}

	if err := h.wishlistService.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, i18n.KeyWishlistNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyWishlistDeleted)})
}

// POST /api/wishlist/:id/move
func (h *WishlistHandler) MoveToCollection(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, i18n.KeyWishlistNotFound)
	if !ok {
		return
	}

	// The body is optional.
	var req services.MoveToCollectionRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	item, err := h.wishlistService.MoveToCollection(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err, i18n.KeyWishlistNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyWishlistMoved),
		"item":    services.NewItemView(item.ToItem()),
	})
}
