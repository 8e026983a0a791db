// internal/models/loyalty.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type LoyaltyAccount struct {
	UserID       uuid.UUID      `json:"user_id" gorm:"type:uuid;primaryKey"`
	Points       int64          `json:"points" gorm:"default:0;index"`
	Level        LoyaltyLevel   `json:"level" gorm:"type:varchar(20);default:'bronze'"`
	Badges       pq.StringArray `json:"badges" gorm:"type:text[]"`
	CalculatedAt time.Time      `json:"calculated_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
