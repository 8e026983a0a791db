// internal/pipeline/item.go
package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

type Condition string

const (
	ConditionMint     Condition = "mint"
	ConditionNearMint Condition = "near_mint"
	ConditionGood     Condition = "good"
	ConditionFair     Condition = "fair"
	ConditionPoor     Condition = "poor"
)

var Conditions = []Condition{ConditionMint, ConditionNearMint, ConditionGood, ConditionFair, ConditionPoor}

func ParseCondition(s string) (Condition, bool) {
	c := Condition(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Conditions {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// Item is one catalog, collection or wishlist entry. Collection-only fields
// are optional so callers must handle their absence.
type Item struct {
	ID        string
	Title     string
	Number    string
	Category  string
	Series    []string
	Exclusive bool
	ImageName Optional[string]

	Condition     Optional[Condition]
	PurchasePrice Optional[float64]
	PurchaseDate  Optional[time.Time]
	Notes         Optional[string]
}

// DeriveID builds a stable identifier from title and number for records
// that were not issued an id by the backend.
func DeriveID(title, number string) string {
	key := strings.ToLower(strings.TrimSpace(title)) + "|" + strings.ToLower(strings.TrimSpace(number))
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])[:16]
}

// EnsureIDs fills in missing ids without touching the input slice.
func EnsureIDs(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		if it.ID == "" {
			it.ID = DeriveID(it.Title, it.Number)
		}
		out[i] = it
	}
	return out
}
