// internal/services/preference_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/popgo-backend/internal/errs"
	"github.com/javajoker/popgo-backend/internal/models"
	"github.com/javajoker/popgo-backend/internal/prefs"
)

// PreferenceStore is a prefs.Store over one user's user_preferences rows.
type PreferenceStore struct {
	db     *gorm.DB
	userID uuid.UUID
}

func NewPreferenceStore(db *gorm.DB, userID uuid.UUID) *PreferenceStore {
	return &PreferenceStore{db: db, userID: userID}
}

func (s *PreferenceStore) Get(key string) (string, error) {
	var row models.UserPreference
	err := s.db.Where("user_id = ? AND key = ?", s.userID, key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", prefs.ErrNotSet
	}
	if err != nil {
		return "", fmt.Errorf("database error: %w", err)
	}
	return row.Value, nil
}

func (s *PreferenceStore) Set(key, value string) error {
	row := models.UserPreference{UserID: s.userID, Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}

func (s *PreferenceStore) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.db.Where("user_id = ? AND key IN ?", s.userID, keys).Delete(&models.UserPreference{}).Error
}

type PreferencesView struct {
	Theme                prefs.Theme    `json:"theme"`
	Language             prefs.Language `json:"language"`
	TranslationLanguage  prefs.Language `json:"translation_language"`
	HasSeenLanguagePopup bool           `json:"hasSeenLanguagePopup"`
	VisitCounts          map[string]int `json:"visitCounts"`
}

type UpdatePreferencesRequest struct {
	Theme                *string `json:"theme,omitempty" validate:"omitempty,theme"`
	Language             *string `json:"language,omitempty" validate:"omitempty,language"`
	HasSeenLanguagePopup *bool   `json:"hasSeenLanguagePopup,omitempty"`
}

type PreferenceService struct {
	db *gorm.DB
}

func NewPreferenceService(db *gorm.DB) *PreferenceService {
	return &PreferenceService{db: db}
}

// For returns the typed preferences of one user.
func (s *PreferenceService) For(ctx context.Context, userID uuid.UUID) *prefs.Preferences {
	log := logrus.WithField("user_id", userID)
	return prefs.New(NewPreferenceStore(s.db.WithContext(ctx), userID), log)
}

func (s *PreferenceService) Get(ctx context.Context, userID uuid.UUID) *PreferencesView {
	return snapshot(s.For(ctx, userID))
}

func (s *PreferenceService) Update(ctx context.Context, userID uuid.UUID, req *UpdatePreferencesRequest) (*PreferencesView, error) {
	p := s.For(ctx, userID)

	if req.Theme != nil {
		theme, ok := prefs.ParseTheme(*req.Theme)
		if !ok {
			return nil, fmt.Errorf("theme %q: %w", *req.Theme, errs.ErrInvalidInput)
		}
		if err := p.SetTheme(theme); err != nil {
			return nil, err
		}
	}
	if req.Language != nil {
		lang, ok := prefs.ParseLanguage(*req.Language)
		if !ok {
			return nil, fmt.Errorf("language %q: %w", *req.Language, errs.ErrInvalidInput)
		}
		if err := p.SetLanguage(lang); err != nil {
			return nil, err
		}
	}
	if req.HasSeenLanguagePopup != nil && *req.HasSeenLanguagePopup {
		if err := p.MarkLanguagePopupSeen(); err != nil {
			return nil, err
		}
	}

	return snapshot(p), nil
}

// RecordVisit bumps the visit counter of a figure detail page.
func (s *PreferenceService) RecordVisit(ctx context.Context, userID uuid.UUID, itemID string) (int, error) {
	return s.For(ctx, userID).RecordVisit(itemID)
}

func snapshot(p *prefs.Preferences) *PreferencesView {
	lang := p.Language()
	return &PreferencesView{
		Theme:                p.Theme(),
		Language:             lang,
		TranslationLanguage:  lang.Translation(),
		HasSeenLanguagePopup: p.HasSeenLanguagePopup(),
		VisitCounts:          p.VisitCounts(),
	}
}
