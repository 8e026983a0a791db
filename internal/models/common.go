// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/popgo-backend/internal/pipeline"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Enums
type Condition string

const (
	ConditionMint     Condition = "mint"
	ConditionNearMint Condition = "near_mint"
	ConditionGood     Condition = "good"
	ConditionFair     Condition = "fair"
	ConditionPoor     Condition = "poor"
)

// Valid reports whether c is a known condition in its stored lowercase form.
func (c Condition) Valid() bool {
	parsed, ok := pipeline.ParseCondition(string(c))
	return ok && Condition(parsed) == c
}

type LoyaltyLevel string

const (
	LoyaltyLevelBronze   LoyaltyLevel = "bronze"
	LoyaltyLevelSilver   LoyaltyLevel = "silver"
	LoyaltyLevelGold     LoyaltyLevel = "gold"
	LoyaltyLevelPlatinum LoyaltyLevel = "platinum"
	LoyaltyLevelDiamond  LoyaltyLevel = "diamond"
)

// DateLayout is the wire format of purchase dates.
const DateLayout = "2006-01-02"
