// internal/models/collection.go
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/javajoker/popgo-backend/internal/pipeline"
)

// CollectionItem is a figure the user owns. Figure fields are copied from the
// catalog at insert time so free-form entries work the same way.
type CollectionItem struct {
	BaseModel
	UserID        uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	CatalogItemID *string        `json:"catalog_item_id,omitempty" gorm:"size:32;index"`
	Title         string         `json:"title" gorm:"size:255;not null"`
	Number        string         `json:"number" gorm:"size:32;not null"`
	Category      string         `json:"category" gorm:"size:100"`
	Series        pq.StringArray `json:"series" gorm:"type:text[]"`
	Exclusive     bool           `json:"exclusive" gorm:"default:false"`
	ImageName     *string        `json:"imageName,omitempty" gorm:"size:512"`
	Condition     *Condition     `json:"condition,omitempty" gorm:"type:varchar(20)"`
	PurchasePrice *float64       `json:"purchase_price,omitempty" gorm:"type:decimal(10,2)"`
	PurchaseDate  *time.Time     `json:"purchase_date,omitempty" gorm:"type:date"`
	Notes         *string        `json:"notes,omitempty" gorm:"type:text"`
}

func (c *CollectionItem) BeforeSave(tx *gorm.DB) error {
	if c.Condition != nil && !c.Condition.Valid() {
		return fmt.Errorf("invalid condition %q", *c.Condition)
	}
	if c.PurchasePrice != nil && *c.PurchasePrice < 0 {
		return fmt.Errorf("negative purchase price")
	}
	return nil
}

func (c CollectionItem) ToItem() pipeline.Item {
	item := pipeline.Item{
		ID:            c.ID.String(),
		Title:         c.Title,
		Number:        c.Number,
		Category:      c.Category,
		Series:        []string(c.Series),
		Exclusive:     c.Exclusive,
		ImageName:     pipeline.FromPtr(c.ImageName),
		PurchasePrice: pipeline.FromPtr(c.PurchasePrice),
		PurchaseDate:  pipeline.FromPtr(c.PurchaseDate),
		Notes:         pipeline.FromPtr(c.Notes),
	}
	if c.Condition != nil {
		if cond, ok := pipeline.ParseCondition(string(*c.Condition)); ok {
			item.Condition = pipeline.Some(cond)
		}
	}
	return item
}
