package content

import "strings"

// LocalizedText holds one value per site language.
type LocalizedText struct {
	EN string `json:"en" yaml:"en"`
	UR string `json:"ur" yaml:"ur"`
}

// Get returns the value for lang; unknown languages read the English value.
func (t LocalizedText) Get(lang Lang) string {
	if lang == LangUR {
		return t.UR
	}
	return t.EN
}

// Set writes the value for lang.
func (t *LocalizedText) Set(lang Lang, value string) {
	if lang == LangUR {
		t.UR = value
		return
	}
	t.EN = value
}

// Complete reports whether both languages hold a non-blank value.
func (t LocalizedText) Complete() bool {
	return strings.TrimSpace(t.EN) != "" && strings.TrimSpace(t.UR) != ""
}

// SocialShare is the link preview block attached to records. The image is
// shared, title and description are per language.
type SocialShare struct {
	Image       string        `json:"image"`
	Title       LocalizedText `json:"title"`
	Description LocalizedText `json:"description"`
}
