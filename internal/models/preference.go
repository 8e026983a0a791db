// internal/models/preference.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// UserPreference is one persisted client setting for a user.
type UserPreference struct {
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey"`
	Key       string    `json:"key" gorm:"primaryKey;size:64"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	UpdatedAt time.Time `json:"updated_at"`
}
