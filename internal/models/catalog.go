// internal/models/catalog.go
package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/javajoker/popgo-backend/internal/pipeline"
)

// CatalogItem is an entry of the bundled figure catalog. Its id is derived
// from title and number so reseeding is stable.
type CatalogItem struct {
	ID        string         `json:"id" gorm:"primaryKey;size:32"`
	Title     string         `json:"title" gorm:"size:255;not null"`
	Number    string         `json:"number" gorm:"size:32;not null"`
	Category  string         `json:"category" gorm:"size:100;index"`
	Series    pq.StringArray `json:"series" gorm:"type:text[]"`
	Exclusive bool           `json:"exclusive" gorm:"default:false"`
	ImageName *string        `json:"imageName,omitempty" gorm:"size:512"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (c CatalogItem) ToItem() pipeline.Item {
	return pipeline.Item{
		ID:        c.ID,
		Title:     c.Title,
		Number:    c.Number,
		Category:  c.Category,
		Series:    []string(c.Series),
		Exclusive: c.Exclusive,
		ImageName: pipeline.FromPtr(c.ImageName),
	}
}
