// Package i18n holds the display languages the catalog is maintained in
// and the localized value types stored in JSON columns.  Content rows
// keep every translation; resolution picks one string per request and
// always produces something renderable, falling back to English and
// finally to an empty value rather than failing.
package i18n

import "golang.org/x/text/language"

// Locale identifies one display language by its lowercase ISO 639-1 code.
type Locale string

// Languages the catalog is maintained in.
const (
    LocaleEN Locale = "en"
    LocaleRU Locale = "ru"
)

// DefaultLocale is the fallback for unknown or missing languages.
const DefaultLocale = LocaleEN

// supported lists the locales in matcher priority order; the first entry
// is what an undecidable request gets.
var supported = []Locale{LocaleEN, LocaleRU}

var tags = []language.Tag{language.English, language.Russian}

var matcher = language.NewMatcher(tags)

// Match resolves the display language for a request.  An explicit
// queryLang value wins when it names a supported locale (matching is
// lenient, so "en-GB" or "RU" work); otherwise the Accept-Language
// header is negotiated; otherwise the default applies.
func Match(queryLang, acceptLanguage string) Locale {
    if queryLang != "" {
        if tag, err := language.Parse(queryLang); err == nil {
            if _, idx, conf := matcher.Match(tag); conf > language.No {
                return supported[idx]
            }
        }
    }
    if acceptLanguage != "" {
        if prefs, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
            if _, idx, conf := matcher.Match(prefs...); conf > language.No {
                return supported[idx]
            }
        }
    }
    return DefaultLocale
}
