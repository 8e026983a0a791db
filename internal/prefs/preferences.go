// internal/prefs/preferences.go
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

// Storage keys shared with the web client.
const (
	KeyToken                = "token"
	KeyUser                 = "user"
	KeyTheme                = "preferredTheme"
	KeyLanguage             = "preferredLanguage"
	KeyHasSeenLanguagePopup = "hasSeenLanguagePopup"
	KeyVisitCounts          = "funkoVisitCount"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

const DefaultTheme = ThemeDark

func ParseTheme(s string) (Theme, bool) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeDark, ThemeLight:
		return t, true
	}
	return "", false
}

type Language string

const (
	LanguageEN Language = "EN"
	LanguagePL Language = "PL"
	LanguageRU Language = "RU"
	LanguageFR Language = "FR"
	LanguageDE Language = "DE"
	LanguageES Language = "ES"
	// US and CA are offered in the picker but use the English tables.
	LanguageUS Language = "US"
	LanguageCA Language = "CA"
)

const DefaultLanguage = LanguageEN

var Languages = []Language{
	LanguageEN, LanguagePL, LanguageRU, LanguageFR, LanguageDE, LanguageES, LanguageUS, LanguageCA,
}

func ParseLanguage(s string) (Language, bool) {
	l := Language(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Languages {
		if l == known {
			return l, true
		}
	}
	return "", false
}

// Translation returns the code of the translation table for l.
func (l Language) Translation() Language {
	switch l {
	case LanguageUS, LanguageCA:
		return LanguageEN
	}
	return l
}

// Session is the persisted auth state. The user payload is opaque here.
type Session struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user,omitempty"`
}

// Preferences reads and writes typed user settings over a Store. Reads never
// fail: a missing, unreadable or malformed value yields the default.
type Preferences struct {
	store Store
	log   logrus.FieldLogger
}

func New(store Store, log logrus.FieldLogger) *Preferences {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Preferences{store: store, log: log}
}

func (p *Preferences) read(key string) (string, bool) {
	v, err := p.safeGet(key)
	if err != nil {
		if !errors.Is(err, ErrNotSet) {
			p.log.WithError(err).WithField("key", key).Debug("preference read failed, using default")
		}
		return "", false
	}
	return v, true
}

// safeGet shields callers from stores that panic.
func (p *Preferences) safeGet(key string) (v string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("store panic: %v", r)
		}
	}()
	return p.store.Get(key)
}

// Load returns the raw value for key, or fallback.
func (p *Preferences) Load(key, fallback string) string {
	if v, ok := p.read(key); ok {
		return v
	}
	return fallback
}

func (p *Preferences) Save(key, value string) error {
	if err := p.store.Set(key, value); err != nil {
		return fmt.Errorf("failed to save preference %s: %w", key, err)
	}
	return nil
}

func (p *Preferences) Theme() Theme {
	if v, ok := p.read(KeyTheme); ok {
		if t, ok := ParseTheme(v); ok {
			return t
		}
	}
	return DefaultTheme
}

func (p *Preferences) SetTheme(t Theme) error {
	if _, ok := ParseTheme(string(t)); !ok {
		return fmt.Errorf("unknown theme %q", t)
	}
	return p.Save(KeyTheme, string(t))
}

func (p *Preferences) Language() Language {
	if v, ok := p.read(KeyLanguage); ok {
		if l, ok := ParseLanguage(v); ok {
			return l
		}
	}
	return DefaultLanguage
}

func (p *Preferences) SetLanguage(l Language) error {
	parsed, ok := ParseLanguage(string(l))
	if !ok {
		return fmt.Errorf("unknown language %q", l)
	}
	return p.Save(KeyLanguage, string(parsed))
}

func (p *Preferences) HasSeenLanguagePopup() bool {
	v, ok := p.read(KeyHasSeenLanguagePopup)
	if !ok {
		return false
	}
	seen, err := strconv.ParseBool(v)
	return err == nil && seen
}

func (p *Preferences) MarkLanguagePopupSeen() error {
	return p.Save(KeyHasSeenLanguagePopup, "true")
}

// VisitCounts returns how often each item detail page was opened.
func (p *Preferences) VisitCounts() map[string]int {
	counts := map[string]int{}
	v, ok := p.read(KeyVisitCounts)
	if !ok {
		return counts
	}
	if err := json.Unmarshal([]byte(v), &counts); err != nil {
		p.log.WithError(err).Debug("malformed visit counts, resetting")
		return map[string]int{}
	}
	return counts
}

func (p *Preferences) RecordVisit(itemID string) (int, error) {
	counts := p.VisitCounts()
	counts[itemID]++
	data, err := json.Marshal(counts)
	if err != nil {
		return 0, fmt.Errorf("failed to encode visit counts: %w", err)
	}
	if err := p.Save(KeyVisitCounts, string(data)); err != nil {
		return 0, err
	}
	return counts[itemID], nil
}

func (p *Preferences) Session() (Session, bool) {
	token, ok := p.read(KeyToken)
	if !ok || token == "" {
		return Session{}, false
	}
	s := Session{Token: token}
	if raw, ok := p.read(KeyUser); ok && json.Valid([]byte(raw)) {
		s.User = json.RawMessage(raw)
	}
	return s, true
}

func (p *Preferences) SaveSession(s Session) error {
	if err := p.Save(KeyToken, s.Token); err != nil {
		return err
	}
	if len(s.User) == 0 {
		// Drop the previous session's user so it is not paired with the new token.
		if err := p.store.Delete(KeyUser); err != nil {
			return fmt.Errorf("failed to clear session user: %w", err)
		}
		return nil
	}
	return p.Save(KeyUser, string(s.User))
}

// ClearSession removes the auth entries and leaves other settings alone.
func (p *Preferences) ClearSession() error {
	if err := p.store.Delete(KeyToken, KeyUser); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Tag is the collation language for sorting titles in this language.
func (l Language) Tag() language.Tag {
	switch l {
	case LanguagePL:
		return language.Polish
	case LanguageRU:
		return language.Russian
	case LanguageFR:
		return language.French
	case LanguageDE:
		return language.German
	case LanguageES:
		return language.Spanish
	case LanguageUS:
		return language.AmericanEnglish
	case LanguageCA:
		return language.MustParse("en-CA")
	default:
		return language.English
	}
}
