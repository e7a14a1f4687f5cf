package translations

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"uiforge/pkg/models"
)

type Locale struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Flag string `json:"flag"`
}

// Locales lists the supported locales, each named in its own language and
// flagged with the most likely region.
func Locales() []Locale {
	out := make([]Locale, 0, len(models.Locales))
	for _, code := range models.Locales {
		tag := language.Make(code)
		region, _ := tag.Region()
		out = append(out, Locale{
			Code: code,
			Name: cases.Title(tag).String(display.Self.Name(tag)),
			Flag: flag(region.String()),
		})
	}
	return out
}

// flag turns a two-letter region code into its regional indicator pair.
func flag(region string) string {
	if len(region) != 2 {
		return ""
	}
	runes := make([]rune, 0, 2)
	for _, c := range region {
		if c < 'A' || c > 'Z' {
			return ""
		}
		runes = append(runes, 0x1F1E6+(c-'A'))
	}
	return string(runes)
}
