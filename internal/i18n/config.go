package i18n

import (
	"github.com/goliatone/go-bilingual-cms/content"
)

// Config lists the site languages. The first supported language matching
// the request wins; DefaultLang is used when nothing matches.
type Config struct {
	DefaultLang content.Lang
	Languages   []content.Lang
}

// FromModuleConfig builds a Config from runtime settings. Unknown codes are
// dropped and an empty list means both site languages.
func FromModuleConfig(defaultLang string, languages []string) Config {
	cfg := Config{DefaultLang: content.NormalizeLang(defaultLang)}
	for _, code := range languages {
		if lang, ok := content.ParseLang(code); ok {
			cfg.Languages = append(cfg.Languages, lang)
		}
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = append([]content.Lang(nil), content.Langs...)
	}
	return cfg
}
