package models

import "time"

// Locales is the fixed set of translation columns, in table order.
var Locales = []string{"en", "es", "fr", "de", "ja", "zh"}

// IsLocale reports whether code is one of Locales.
func IsLocale(code string) bool {
	for _, l := range Locales {
		if l == code {
			return true
		}
	}
	return false
}

type LocalizationEntry struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	EN        string    `json:"en"`
	ES        string    `json:"es"`
	FR        string    `json:"fr"`
	DE        string    `json:"de"`
	JA        string    `json:"ja"`
	ZH        string    `json:"zh"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Text returns the value stored for locale, or "" for an unknown locale.
func (e LocalizationEntry) Text(locale string) string {
	switch locale {
	case "en":
		return e.EN
	case "es":
		return e.ES
	case "fr":
		return e.FR
	case "de":
		return e.DE
	case "ja":
		return e.JA
	case "zh":
		return e.ZH
	}
	return ""
}

// Uniform returns an entry carrying text in every locale, the state a
// freshly extracted literal starts in before anyone translates it.
func Uniform(id, key, text string) LocalizationEntry {
	return LocalizationEntry{
		ID:  id,
		Key: key,
		EN:  text,
		ES:  text,
		FR:  text,
		DE:  text,
		JA:  text,
		ZH:  text,
	}
}
