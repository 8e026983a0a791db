// internal/database/seed.go
package database

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/popgo-backend/internal/models"
	"github.com/javajoker/popgo-backend/internal/pipeline"
)

//go:embed seed/catalog.json
var catalogJSON []byte

type seedItem struct {
	Title     string   `json:"title"`
	Number    string   `json:"number"`
	Category  string   `json:"category"`
	Series    []string `json:"series"`
	Exclusive bool     `json:"exclusive"`
	ImageName string   `json:"imageName"`
}

// BundledCatalog decodes the catalog shipped with the binary, deriving ids
// from title and number.
func BundledCatalog() ([]models.CatalogItem, error) {
	var raw []seedItem
	if err := json.Unmarshal(catalogJSON, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode bundled catalog: %w", err)
	}

	items := make([]models.CatalogItem, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, r := range raw {
		id := pipeline.DeriveID(r.Title, r.Number)
		if seen[id] {
			continue
		}
		seen[id] = true

		item := models.CatalogItem{
			ID:        id,
			Title:     r.Title,
			Number:    r.Number,
			Category:  r.Category,
			Series:    pq.StringArray(r.Series),
			Exclusive: r.Exclusive,
		}
		if r.ImageName != "" {
			image := r.ImageName
			item.ImageName = &image
		}
		items = append(items, item)
	}
	return items, nil
}

// SeedCatalog upserts the bundled catalog.
func SeedCatalog(db *gorm.DB) error {
	items, err := BundledCatalog()
	if err != nil {
		return err
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "number", "category", "series", "exclusive", "image_name", "updated_at"}),
	}).CreateInBatches(items, 100).Error
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	logrus.WithField("items", len(items)).Info("Catalog seeded")
	return nil
}
