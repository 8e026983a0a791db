// internal/handlers/catalog.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/popgo-backend/internal/i18n"
	"github.com/javajoker/popgo-backend/internal/utils"
)

type CatalogHandler struct {
	catalogService CatalogService
}

func NewCatalogHandler(catalogService CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GET /api/catalog
func (h *CatalogHandler) Search(c *gin.Context) {
	res, err := h.catalogService.Search(c.Request.Context(), utils.GetListParams(c))
	if err != nil {
		respondError(c, err, i18n.KeyCatalogNotFound)
		return
	}

	utils.PaginatedResponse(c, res.Items, res.Result)
}

// GET /api/catalog/:id
func (h *CatalogHandler) Get(c *gin.Context) {
	item, err := h.catalogService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, i18n.KeyCatalogNotFound)
		return
	}

	utils.SuccessResponse(c, item)
}

// GET /api/catalog/categories
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.catalogService.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err, i18n.KeyCatalogNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{"categories": categories})
}
