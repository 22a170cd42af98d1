package content

import (
	"strings"

	"github.com/goliatone/go-slug"
)

// Slugify derives a URL slug from an English title using the default
// go-slug rules. Titles that normalise to nothing yield "".
func Slugify(title string) string {
	normalized, err := slug.Normalize(title)
	if err != nil {
		return ""
	}
	return normalized
}

// NormalizeSlug cleans a slug supplied by an editor.
func NormalizeSlug(value string) string {
	return Slugify(value)
}

// IsValidSlug reports whether value already satisfies the slug rules.
func IsValidSlug(value string) bool {
	return value != "" && slug.IsValid(value)
}

// SlugChange describes the outcome of SyncSlug.
type SlugChange struct {
	Slug     string
	Changed  bool
	Replaced bool // a slug that did not match the previous title was overwritten
}

// SyncSlug regenerates the slug whenever the English title changes. A slug
// edited by hand is overwritten too; Replaced reports that case so callers
// can log it.
func SyncSlug(previousTitle, currentTitle, currentSlug string) SlugChange {
	if strings.TrimSpace(previousTitle) == strings.TrimSpace(currentTitle) {
		if currentSlug == "" {
			next := Slugify(currentTitle)
			return SlugChange{Slug: next, Changed: next != ""}
		}
		return SlugChange{Slug: currentSlug}
	}
	next := Slugify(currentTitle)
	manual := currentSlug != "" && currentSlug != Slugify(previousTitle)
	return SlugChange{
		Slug:     next,
		Changed:  next != currentSlug,
		Replaced: manual && next != currentSlug,
	}
}
