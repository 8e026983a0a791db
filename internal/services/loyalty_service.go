// internal/services/loyalty_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/popgo-backend/internal/models"
	"github.com/javajoker/popgo-backend/internal/pipeline"
)

const (
	pointsPerItem      = 10
	pointsPerExclusive = 5
	pointsPerWish      = 2
	pointsPerSeries    = 1

	DefaultLeaderboardSize = 10
	MaxLeaderboardSize     = 100
)

type levelThreshold struct {
	Level  models.LoyaltyLevel
	Points int64
}

// Ascending; the first entry must start at zero.
var levelThresholds = []levelThreshold{
	{models.LoyaltyLevelBronze, 0},
	{models.LoyaltyLevelSilver, 100},
	{models.LoyaltyLevelGold, 250},
	{models.LoyaltyLevelPlatinum, 500},
	{models.LoyaltyLevelDiamond, 1000},
}

type badgeRule struct {
	Name string
	Earn func(Score) bool
}

var badgeRules = []badgeRule{
	{"first_pop", func(s Score) bool { return s.CollectionCount >= 1 }},
	{"collector_10", func(s Score) bool { return s.CollectionCount >= 10 }},
	{"collector_50", func(s Score) bool { return s.CollectionCount >= 50 }},
	{"exclusive_hunter", func(s Score) bool { return s.ExclusiveCount >= 5 }},
	{"series_explorer", func(s Score) bool { return s.SeriesCount >= 10 }},
	{"dreamer", func(s Score) bool { return s.WishlistCount >= 10 }},
}

// Score is the loyalty breakdown of one user.
type Score struct {
	CollectionCount int                 `json:"collection_count"`
	ExclusiveCount  int                 `json:"exclusive_count"`
	WishlistCount   int                 `json:"wishlist_count"`
	SeriesCount     int                 `json:"series_count"`
	Points          int64               `json:"points"`
	Level           models.LoyaltyLevel `json:"level"`
	Badges          []string            `json:"badges"`
}

// ComputeScore applies the points rule to a collection and wishlist size.
func ComputeScore(collection []pipeline.Item, wishlistCount int) Score {
	stats := pipeline.Aggregate(len(collection), collection)
	s := Score{
		CollectionCount: len(collection),
		ExclusiveCount:  lo.CountBy(collection, func(it pipeline.Item) bool { return it.Exclusive }),
		WishlistCount:   wishlistCount,
		SeriesCount:     stats.UniqueSeriesCount,
	}
	s.Points = int64(s.CollectionCount*pointsPerItem +
		s.ExclusiveCount*pointsPerExclusive +
		s.WishlistCount*pointsPerWish +
		s.SeriesCount*pointsPerSeries)
	s.Level = LevelFor(s.Points)
	s.Badges = lo.FilterMap(badgeRules, func(r badgeRule, _ int) (string, bool) { return r.Name, r.Earn(s) })
	return s
}

func LevelFor(points int64) models.LoyaltyLevel {
	level := levelThresholds[0].Level
	for _, t := range levelThresholds {
		if points >= t.Points {
			level = t.Level
		}
	}
	return level
}

// NextLevel returns the level after current and the points it needs; ok is
// false at the top level.
func NextLevel(current models.LoyaltyLevel) (models.LoyaltyLevel, int64, bool) {
	for i, t := range levelThresholds {
		if t.Level == current && i+1 < len(levelThresholds) {
			next := levelThresholds[i+1]
			return next.Level, next.Points, true
		}
	}
	return "", 0, false
}

type Dashboard struct {
	Account        *models.LoyaltyAccount `json:"account"`
	NextLevel      models.LoyaltyLevel    `json:"next_level,omitempty"`
	PointsToNext   int64                  `json:"points_to_next"`
	ProgressToNext float64                `json:"progress_to_next"` // 0-100
	Rank           int64                  `json:"rank"`
}

type LeaderboardEntry struct {
	Rank     int                 `json:"rank"`
	UserID   uuid.UUID           `json:"user_id"`
	Username string              `json:"username"`
	Points   int64               `json:"points"`
	Level    models.LoyaltyLevel `json:"level"`
}

type LoyaltyService struct {
	db *gorm.DB
}

func NewLoyaltyService(db *gorm.DB) *LoyaltyService {
	return &LoyaltyService{db: db}
}

// Calculate recomputes and stores the user's loyalty account.
func (s *LoyaltyService) Calculate(ctx context.Context, userID uuid.UUID) (*models.LoyaltyAccount, *Score, error) {
	db := s.db.WithContext(ctx)

	var collection []models.CollectionItem
	if err := db.Where("user_id = ?", userID).Find(&collection).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load collection: %w", err)
	}

	var wishlistCount int64
	if err := db.Model(&models.WishlistItem{}).Where("user_id = ?", userID).Count(&wishlistCount).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to count wishlist: %w", err)
	}

	items := lo.Map(collection, func(c models.CollectionItem, _ int) pipeline.Item { return c.ToItem() })
	score := ComputeScore(items, int(wishlistCount))

	account := &models.LoyaltyAccount{
		UserID:       userID,
		Points:       score.Points,
		Level:        score.Level,
		Badges:       pq.StringArray(score.Badges),
		CalculatedAt: time.Now(),
	}
	err := db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"points", "level", "badges", "calculated_at"}),
	}).Create(account).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to save loyalty account: %w", err)
	}

	return account, &score, nil
}

func (s *LoyaltyService) Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	db := s.db.WithContext(ctx)

	var account models.LoyaltyAccount
	err := db.First(&account, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		calculated, _, calcErr := s.Calculate(ctx, userID)
		if calcErr != nil {
			return nil, calcErr
		}
		account = *calculated
	} else if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var ahead int64
	if err := db.Model(&models.LoyaltyAccount{}).Where("points > ?", account.Points).Count(&ahead).Error; err != nil {
		return nil, fmt.Errorf("failed to rank account: %w", err)
	}

	d := &Dashboard{Account: &account, Rank: ahead + 1, ProgressToNext: 100}
	if next, need, ok := NextLevel(account.Level); ok {
		d.NextLevel = next
		d.PointsToNext, d.ProgressToNext = progress(account.Level, account.Points, need)
	}
	return d, nil
}

func progress(level models.LoyaltyLevel, points, next int64) (int64, float64) {
	floor := int64(0)
	for _, t := range levelThresholds {
		if t.Level == level {
			floor = t.Points
		}
	}
	if points >= next {
		return 0, 100
	}
	span := next - floor
	done := points - floor
	return next - points, pipeline.Round2(float64(done) / float64(span) * 100)
}

func (s *LoyaltyService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}
	if limit > MaxLeaderboardSize {
		limit = MaxLeaderboardSize
	}

	var entries []LeaderboardEntry
	err := s.db.WithContext(ctx).
		Table("loyalty_accounts").
		Select("loyalty_accounts.user_id, users.username, loyalty_accounts.points, loyalty_accounts.level").
		Joins("JOIN users ON users.id = loyalty_accounts.user_id AND users.deleted_at IS NULL").
		Order("loyalty_accounts.points DESC, users.username ASC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
