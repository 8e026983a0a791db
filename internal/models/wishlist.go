// internal/models/wishlist.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/javajoker/popgo-backend/internal/pipeline"
)

type WishlistItem struct {
	BaseModel
	UserID        uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	CatalogItemID *string        `json:"catalog_item_id,omitempty" gorm:"size:32;index"`
	Title         string         `json:"title" gorm:"size:255;not null"`
	Number        string         `json:"number" gorm:"size:32;not null"`
	Category      string         `json:"category" gorm:"size:100"`
	Series        pq.StringArray `json:"series" gorm:"type:text[]"`
	Exclusive     bool           `json:"exclusive" gorm:"default:false"`
	ImageName     *string        `json:"imageName,omitempty" gorm:"size:512"`
	Notes         *string        `json:"notes,omitempty" gorm:"type:text"`
}

func (w WishlistItem) ToItem() pipeline.Item {
	return pipeline.Item{
		ID:        w.ID.String(),
		Title:     w.Title,
		Number:    w.Number,
		Category:  w.Category,
		Series:    []string(w.Series),
		Exclusive: w.Exclusive,
		ImageName: pipeline.FromPtr(w.ImageName),
		Notes:     pipeline.FromPtr(w.Notes),
	}
}
