// internal/services/collection_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/popgo-backend/internal/database"
	"github.com/javajoker/popgo-backend/internal/errs"
	"github.com/javajoker/popgo-backend/internal/models"
	"github.com/javajoker/popgo-backend/internal/pipeline"
	"github.com/javajoker/popgo-backend/internal/utils"
)

// Fields that UpdateCollectionRequest.Clear may name.
const (
	FieldCondition     = "condition"
	FieldPurchasePrice = "purchase_price"
	FieldPurchaseDate  = "purchase_date"
	FieldNotes         = "notes"
)

type CollectionService struct {
	db *gorm.DB
}

// FigureRequest describes a figure either by catalog id or free-form.
type FigureRequest struct {
	CatalogItemID *string  `json:"catalog_item_id,omitempty"`
	Title         string   `json:"title" validate:"required_without=CatalogItemID,max=255"`
	Number        string   `json:"number" validate:"required_without=CatalogItemID,max=32"`
	Category      string   `json:"category" validate:"max=100"`
	Series        []string `json:"series"`
	Exclusive     bool     `json:"exclusive"`
	ImageName     *string  `json:"imageName,omitempty"`
}

type AddCollectionRequest struct {
	FigureRequest
	Condition     *string  `json:"condition,omitempty" validate:"omitempty,condition"`
	PurchasePrice *float64 `json:"purchase_price,omitempty" validate:"omitempty,gte=0"`
	PurchaseDate  *string  `json:"purchase_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes         *string  `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateCollectionRequest is a partial edit: nil fields are left alone and
// fields named in Clear are reset to absent.
type UpdateCollectionRequest struct {
	Condition     *string  `json:"condition,omitempty" validate:"omitempty,condition"`
	PurchasePrice *float64 `json:"purchase_price,omitempty" validate:"omitempty,gte=0"`
	PurchaseDate  *string  `json:"purchase_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes         *string  `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Clear         []string `json:"clear,omitempty" validate:"omitempty,dive,oneof=condition purchase_price purchase_date notes"`
}

func NewCollectionService(db *gorm.DB) *CollectionService {
	return &CollectionService{db: db}
}

func (s *CollectionService) items(ctx context.Context, userID uuid.UUID) ([]models.CollectionItem, error) {
	var items []models.CollectionItem
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	return items, nil
}

func (s *CollectionService) source(ctx context.Context, userID uuid.UUID) ([]pipeline.Item, error) {
	items, err := s.items(ctx, userID)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(c models.CollectionItem, _ int) pipeline.Item { return c.ToItem() }), nil
}

func (s *CollectionService) List(ctx context.Context, userID uuid.UUID, params utils.ListParams) (*ListResult, error) {
	source, err := s.source(ctx, userID)
	if err != nil {
		return nil, err
	}
	params.Filter.SearchNumberAndSeries = false
	return runList(source, params), nil
}

// Stats aggregates the collection under filter without paginating.
func (s *CollectionService) Stats(ctx context.Context, userID uuid.UUID, filter pipeline.FilterState) (pipeline.Stats, error) {
	source, err := s.source(ctx, userID)
	if err != nil {
		return pipeline.Stats{}, err
	}
	return pipeline.Aggregate(len(source), pipeline.Filter(source, filter)), nil
}

func (s *CollectionService) Get(ctx context.Context, userID, id uuid.UUID) (*models.CollectionItem, error) {
	var item models.CollectionItem
	if err := s.db.WithContext(ctx).First(&item, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, notFound(err, "collection item")
	}
	return &item, nil
}

func (s *CollectionService) Add(ctx context.Context, userID uuid.UUID, req *AddCollectionRequest) (*models.CollectionItem, error) {
	var item *models.CollectionItem
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		fig, err := resolveFigure(tx, &req.FigureRequest)
		if err != nil {
			return err
		}

		item = &models.CollectionItem{
			UserID:        userID,
			CatalogItemID: fig.CatalogItemID,
			Title:         fig.Title,
			Number:        fig.Number,
			Category:      fig.Category,
			Series:        fig.Series,
			Exclusive:     fig.Exclusive,
			ImageName:     fig.ImageName,
			PurchasePrice: roundedPtr(req.PurchasePrice),
			Notes:         trimmedPtr(req.Notes),
		}
		if err := applyCondition(item, req.Condition); err != nil {
			return err
		}
		if err := applyDate(item, req.PurchaseDate); err != nil {
			return err
		}

		return tx.Create(item).Error
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": userID, "item_id": item.ID}).Debug("Collection item added")
	return item, nil
}

func (s *CollectionService) Update(ctx context.Context, userID, id uuid.UUID, req *UpdateCollectionRequest) (*models.CollectionItem, error) {
	item, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	for _, field := range req.Clear {
		switch field {
		case FieldCondition:
			item.Condition = nil
		case FieldPurchasePrice:
			item.PurchasePrice = nil
		case FieldPurchaseDate:
			item.PurchaseDate = nil
		case FieldNotes:
			item.Notes = nil
		}
	}

	if req.Condition != nil {
		if err := applyCondition(item, req.Condition); err != nil {
			return nil, err
		}
	}
	if req.PurchasePrice != nil {
		item.PurchasePrice = roundedPtr(req.PurchasePrice)
	}
	if req.PurchaseDate != nil {
		if err := applyDate(item, req.PurchaseDate); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		item.Notes = trimmedPtr(req.Notes)
	}

	// Select("*") so cleared fields are written as NULL.
	if err := s.db.WithContext(ctx).Model(item).Select("*").Omit("created_at").Updates(item).Error; err != nil {
		return nil, fmt.Errorf("failed to update collection item: %w", err)
	}
	return item, nil
}

func (s *CollectionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.CollectionItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete collection item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("collection item %s: %w", id, errs.ErrNotFound)
	}
	return nil
}

// SetArtwork records the uploaded image of a collection item.
func (s *CollectionService) SetArtwork(ctx context.Context, userID, id uuid.UUID, imageURL string) (*models.CollectionItem, error) {
	item, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	item.ImageName = &imageURL
	if err := s.db.WithContext(ctx).Model(item).Update("image_name", imageURL).Error; err != nil {
		return nil, fmt.Errorf("failed to save artwork: %w", err)
	}
	return item, nil
}

type figure struct {
	CatalogItemID *string
	Title         string
	Number        string
	Category      string
	Series        pq.StringArray
	Exclusive     bool
	ImageName     *string
}

// resolveFigure copies the catalog entry when an id is given and falls back
// to the free-form fields otherwise.
func resolveFigure(tx *gorm.DB, req *FigureRequest) (*figure, error) {
	if id := trimmedPtr(req.CatalogItemID); id != nil {
		var c models.CatalogItem
		if err := tx.First(&c, "id = ?", *id).Error; err != nil {
			return nil, notFound(err, "catalog item")
		}
		return &figure{
			CatalogItemID: &c.ID,
			Title:         c.Title,
			Number:        c.Number,
			Category:      c.Category,
			Series:        c.Series,
			Exclusive:     c.Exclusive,
			ImageName:     c.ImageName,
		}, nil
	}

	title := strings.TrimSpace(req.Title)
	number := strings.TrimSpace(req.Number)
	if title == "" || number == "" {
		return nil, fmt.Errorf("title and number are required: %w", errs.ErrInvalidInput)
	}
	series := lo.Compact(lo.Map(req.Series, func(s string, _ int) string { return strings.TrimSpace(s) }))
	return &figure{
		Title:     title,
		Number:    number,
		Category:  strings.TrimSpace(req.Category),
		Series:    pq.StringArray(lo.Uniq(series)),
		Exclusive: req.Exclusive,
		ImageName: trimmedPtr(req.ImageName),
	}, nil
}

func applyCondition(item *models.CollectionItem, raw *string) error {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		item.Condition = nil
		return nil
	}
	cond, ok := pipeline.ParseCondition(*raw)
	if !ok {
		return fmt.Errorf("condition %q: %w", *raw, errs.ErrInvalidInput)
	}
	mc := models.Condition(cond)
	item.Condition = &mc
	return nil
}

func applyDate(item *models.CollectionItem, raw *string) error {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		item.PurchaseDate = nil
		return nil
	}
	d, err := time.Parse(models.DateLayout, strings.TrimSpace(*raw))
	if err != nil {
		return fmt.Errorf("purchase date %q: %w", *raw, errs.ErrInvalidInput)
	}
	item.PurchaseDate = &d
	return nil
}
