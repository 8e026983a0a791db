// internal/services/wishlist_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/popgo-backend/internal/database"
	"github.com/javajoker/popgo-backend/internal/errs"
	"github.com/javajoker/popgo-backend/internal/models"
	"github.com/javajoker/popgo-backend/internal/pipeline"
	"github.com/javajoker/popgo-backend/internal/utils"
)

type WishlistService struct {
	db *gorm.DB
}

type AddWishlistRequest struct {
	FigureRequest
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// MoveToCollectionRequest carries the collection-only fields the wishlist
// entry lacks.
type MoveToCollectionRequest struct {
	Condition     *string  `json:"condition,omitempty" validate:"omitempty,condition"`
	PurchasePrice *float64 `json:"purchase_price,omitempty" validate:"omitempty,gte=0"`
	PurchaseDate  *string  `json:"purchase_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes         *string  `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

func NewWishlistService(db *gorm.DB) *WishlistService {
	return &WishlistService{db: db}
}

func (s *WishlistService) List(ctx context.Context, userID uuid.UUID, params utils.ListParams) (*ListResult, error) {
	var items []models.WishlistItem
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}

	params.Filter.SearchNumberAndSeries = false
	// Wishlist entries have no condition.
	params.Filter.Condition = ""
	source := lo.Map(items, func(w models.WishlistItem, _ int) pipeline.Item { return w.ToItem() })
	return runList(source, params), nil
}

func (s *WishlistService) Add(ctx context.Context, userID uuid.UUID, req *AddWishlistRequest) (*models.WishlistItem, error) {
	var item *models.WishlistItem
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		fig, err := resolveFigure(tx, &req.FigureRequest)
		if err != nil {
			return err
		}

		if fig.CatalogItemID != nil {
			var existing models.WishlistItem
			err := tx.Where("user_id = ? AND catalog_item_id = ?", userID, *fig.CatalogItemID).First(&existing).Error
			if err == nil {
				return fmt.Errorf("wishlist entry %s: %w", *fig.CatalogItemID, errs.ErrAlreadyExists)
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("database error: %w", err)
			}
		}

		item = &models.WishlistItem{
			UserID:        userID,
			CatalogItemID: fig.CatalogItemID,
			Title:         fig.Title,
			Number:        fig.Number,
			Category:      fig.Category,
			Series:        fig.Series,
			Exclusive:     fig.Exclusive,
			ImageName:     fig.ImageName,
			Notes:         trimmedPtr(req.Notes),
		}
		return tx.Create(item).Error
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *WishlistService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.WishlistItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete wishlist item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("wishlist item %s: %w", id, errs.ErrNotFound)
	}
	return nil
}

// MoveToCollection turns a wishlist entry into a collection item. Both
// writes happen in one transaction.
func (s *WishlistService) MoveToCollection(ctx context.Context, userID, id uuid.UUID, req *MoveToCollectionRequest) (*models.CollectionItem, error) {
	var item *models.CollectionItem
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		var wish models.WishlistItem
		if err := tx.First(&wish, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return notFound(err, "wishlist item")
		}

		notes := trimmedPtr(req.Notes)
		if notes == nil {
			notes = wish.Notes
		}

		item = &models.CollectionItem{
			UserID:        userID,
			CatalogItemID: wish.CatalogItemID,
			Title:         wish.Title,
			Number:        wish.Number,
			Category:      wish.Category,
			Series:        wish.Series,
			Exclusive:     wish.Exclusive,
			ImageName:     wish.ImageName,
			PurchasePrice: roundedPtr(req.PurchasePrice),
			Notes:         notes,
		}
		if err := applyCondition(item, req.Condition); err != nil {
			return err
		}
		if err := applyDate(item, req.PurchaseDate); err != nil {
			return err
		}

		if err := tx.Create(item).Error; err != nil {
			return fmt.Errorf("failed to create collection item: %w", err)
		}
		if err := tx.Delete(&wish).Error; err != nil {
			return fmt.Errorf("failed to remove wishlist item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": userID, "wishlist_id": id, "item_id": item.ID}).Info("Wishlist item moved to collection")
	return item, nil
}
