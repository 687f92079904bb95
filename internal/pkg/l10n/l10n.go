package l10n

import "strings"

// Locale is the UI language. Every localized entity carries parallel
// *_en / *_np fields; Pick selects one with English fallback.
type Locale string

const (
	English Locale = "en"
	Nepali  Locale = "ne"
)

const Default = English

// Parse normalizes a raw language value (query param, header, cookie).
// Unknown values fall back to English.
func Parse(raw string) Locale {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "ne", "np", "nep":
		return Nepali
	default:
		return English
	}
}

// Pick returns the Nepali variant for the Nepali locale when it is
// non-empty, the English variant otherwise.
func Pick(loc Locale, en, np string) string {
	if loc == Nepali && np != "" {
		return np
	}
	return en
}
