// internal/utils/pagination.go
package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/popgo-backend/internal/pipeline"
)

// ListParams are the filter, sort and page parameters of a list request.
type ListParams struct {
	Filter pipeline.FilterState
	Sort   pipeline.SortState
	Page   pipeline.PageState
	Lang   string
}

// GetListParams reads search, category, condition, exclusive, sort, order,
// page and limit from the query string. Unknown values fall back to defaults.
func GetListParams(c *gin.Context) ListParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(pipeline.DefaultItemsPerPage)))
	exclusive, _ := strconv.ParseBool(c.DefaultQuery("exclusive", "false"))

	if !pipeline.ValidItemsPerPage(limit) {
		limit = pipeline.DefaultItemsPerPage
	}

	return ListParams{
		Filter: pipeline.FilterState{
			SearchQuery:   c.Query("search"),
			Category:      c.Query("category"),
			Condition:     strings.ToLower(c.Query("condition")),
			ExclusiveOnly: exclusive,
		},
		Sort: pipeline.SortState{
			Field:     pipeline.ParseSortField(c.Query("sort")),
			Direction: pipeline.ParseDirection(c.Query("order")),
		},
		Page: pipeline.PageState{
			CurrentPage:  page,
			ItemsPerPage: limit,
		}.Normalize(),
		Lang: GetLangFromContext(c),
	}
}

func SetPaginationHeaders(c *gin.Context, res pipeline.Result) {
	c.Header("X-Total-Count", strconv.Itoa(res.Stats.FilteredCount))
	c.Header("X-Page", strconv.Itoa(res.Page.CurrentPage))
	c.Header("X-Per-Page", strconv.Itoa(res.Page.ItemsPerPage))
	c.Header("X-Total-Pages", strconv.Itoa(res.TotalPages))
}

// PaginatedResponse writes one processed page plus its stats and page
// control as meta.
func PaginatedResponse(c *gin.Context, data interface{}, res pipeline.Result) {
	SetPaginationHeaders(c, res)
	SuccessResponseWithMeta(c, data, gin.H{
		"stats": res.Stats,
		"pagination": gin.H{
			"page":        res.Page.CurrentPage,
			"limit":       res.Page.ItemsPerPage,
			"total":       res.Stats.FilteredCount,
			"total_pages": res.TotalPages,
			"window":      res.Window,
			"choices":     pipeline.ItemsPerPageChoices,
		},
	})
}
