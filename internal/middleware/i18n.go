// internal/middleware/i18n.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/javajoker/popgo-backend/internal/prefs"
)

var (
	catalan = language.Catalan.String()

	// Matches against the collation tags of every offered language, in
	// prefs.Languages order, so index i is prefs.Languages[i].
	langMatcher = language.NewMatcher(supportedTags())
)

func supportedTags() []language.Tag {
	tags := make([]language.Tag, len(prefs.Languages))
	for i, l := range prefs.Languages {
		tags[i] = l.Tag()
	}
	return tags
}

// I18nMiddleware picks the message language from the lang query parameter,
// then Accept-Language, then defaultLang. The context gets the translation
// code, so US and CA resolve to EN.
func I18nMiddleware(defaultLang string) gin.HandlerFunc {
	fallback, ok := prefs.ParseLanguage(defaultLang)
	if !ok {
		fallback = prefs.DefaultLanguage
	}

	return func(c *gin.Context) {
		lang, ok := prefs.ParseLanguage(c.Query("lang"))
		if !ok {
			lang, ok = fromAcceptLanguage(c.GetHeader("Accept-Language"))
		}
		if !ok {
			lang = fallback
		}

		c.Set("lang", string(lang.Translation()))
		c.Next()
	}
}

// fromAcceptLanguage returns the offered language that best fits a header
// such as "pl-PL,pl;q=0.9,en;q=0.8", honouring q-weights. A malformed header
// matches nothing.
func fromAcceptLanguage(header string) (prefs.Language, bool) {
	if header == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return "", false
	}

	// Tags come back sorted by weight. Matching them one at a time keeps
	// that order; a single Match call lets a low-weight exact match beat a
	// high-weight regional one.
	for _, t := range tags {
		// "ca" is Catalan, not Canada.
		if base, _ := t.Base(); base.String() == catalan {
			continue
		}
		// Low confidence pairs such as uk/ru are not close enough to swap.
		if _, index, conf := langMatcher.Match(t); conf >= language.High {
			return prefs.Languages[index], true
		}
	}
	return "", false
}
