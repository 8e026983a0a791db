// internal/handlers/collection.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/popgo-backend/internal/i18n"
	"github.com/javajoker/popgo-backend/internal/services"
	"github.com/javajoker/popgo-backend/internal/utils"
)

type CollectionHandler struct {
	collectionService CollectionService
	storage           ArtworkStorage
}

func NewCollectionHandler(collectionService CollectionService, storage ArtworkStorage) *CollectionHandler {
	return &CollectionHandler{
		collectionService: collectionService,
		storage:           storage,
	}
}

// GET /api/collection
func (h *CollectionHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	res, err := h.collectionService.List(c.Request.Context(), userID, utils.GetListParams(c))
	if err != nil {
		respondError(c, err, i18n.KeyCollectionNotFound)
		return
	}

	utils.PaginatedResponse(c, res.Items, res.Result)
}

// GET /api/collection/stats
func (h *CollectionHandler) Stats(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	stats, err := h.collectionService.Stats(c.Request.Context(), userID, utils.GetListParams(c).Filter)
	if err != nil {
		respondError(c, err, i18n.KeyCollectionNotFound)
		return
	}

	utils.SuccessResponse(c, stats)
}

// POST /api/collection
func (h *CollectionHandler) Add(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.AddCollectionRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.collectionService.Add(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, i18n.KeyCatalogNotFound)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCollectionAdded),
		"item":    services.NewItemView(item.ToItem()),
	})
}

// PUT /api/collection/:id
func (h *CollectionHandler) Update(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, i18n.KeyCollectionNotFound)
	if !ok {
		return
	}

	var req services.UpdateCollectionRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.collectionService.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err, i18n.KeyCollectionNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCollectionUpdated),
		"item":    services.NewItemView(item.ToItem()),
	})
}

// DELETE /api/collection/:id
func (h *CollectionHandler) Delete(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, i18n.KeyCollectionNotFound)
	if !ok {
		return
	}

	if err := h.collectionService.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, i18n.KeyCollectionNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyCollectionDeleted)})
}

// POST /api/collection/:id/artwork
func (h *CollectionHandler) UploadArtwork(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, i18n.KeyCollectionNotFound)
	if !ok {
		return
	}

	if _, err := h.collectionService.Get(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, i18n.KeyCollectionNotFound)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "file"), nil)
		return
	}
	file, err := header.Open()
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}
	defer file.Close()

	upload, err := h.storage.UploadArtwork(file, userID.String())
	switch {
	case errors.Is(err, services.ErrFileTooLarge):
		maxMB := strconv.FormatInt(h.storage.MaxArtworkBytes()/(1024*1024), 10)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileTooLarge, maxMB), nil)
		return
	case errors.Is(err, services.ErrFileType):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileInvalidType), nil)
		return
	case err != nil:
		logrus.WithError(err).WithField("user_id", userID).Error("Artwork upload failed")
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed))
		return
	}

	item, err := h.collectionService.SetArtwork(c.Request.Context(), userID, id, upload.URL)
	if err != nil {
		if delErr := h.storage.DeleteFile(upload.Key); delErr != nil {
			logrus.WithError(delErr).WithField("key", upload.Key).Warn("Failed to remove orphaned artwork")
		}
		respondError(c, err, i18n.KeyCollectionNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"upload":  upload,
		"item":    services.NewItemView(item.ToItem()),
	})
}
