package content

import "strings"

// Lang identifies one of the two site languages.
type Lang string

const (
	LangEN Lang = "en"
	LangUR Lang = "ur"
)

// Langs lists the supported languages in display order.
var Langs = []Lang{LangEN, LangUR}

// Valid reports whether l is a supported language.
func (l Lang) Valid() bool {
	return l == LangEN || l == LangUR
}

// Opposite returns the other site language. Unknown values are treated as
// English, so their opposite is Urdu.
func (l Lang) Opposite() Lang {
	if l == LangUR {
		return LangEN
	}
	return LangUR
}

func (l Lang) String() string { return string(l) }

// ParseLang normalises value ("UR", " en ") and reports whether it names a
// supported language.
func ParseLang(value string) (Lang, bool) {
	lang := Lang(strings.ToLower(strings.TrimSpace(value)))
	return lang, lang.Valid()
}

// NormalizeLang is ParseLang with an English fallback.
func NormalizeLang(value string) Lang {
	if lang, ok := ParseLang(value); ok {
		return lang
	}
	return LangEN
}
