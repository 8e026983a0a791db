// internal/services/catalog_service.go
package services

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/javajoker/popgo-backend/internal/models"
	"github.com/javajoker/popgo-backend/internal/pipeline"
	"github.com/javajoker/popgo-backend/internal/utils"
)

// CatalogService serves the bundled figure catalog, the source of the
// Search view.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) all(ctx context.Context) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return items, nil
}

// Search runs the list pipeline over the catalog. Search matches title,
// number and series; catalog entries carry no condition so that filter is
// ignored.
func (s *CatalogService) Search(ctx context.Context, params utils.ListParams) (*ListResult, error) {
	items, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	params.Filter.SearchNumberAndSeries = true
	params.Filter.Condition = ""

	source := lo.Map(items, func(c models.CatalogItem, _ int) pipeline.Item { return c.ToItem() })
	return runList(source, params), nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*models.CatalogItem, error) {
	var item models.CatalogItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "catalog item")
	}
	return &item, nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.db.WithContext(ctx).Model(&models.CatalogItem{}).
		Where("category <> ''").
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return categories, nil
}
