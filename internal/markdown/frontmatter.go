package markdown

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-bilingual-cms/content"
)

// FrontMatter is the metadata block at the top of a post file. Shared
// values (image, date, category, show_on_home) are read from the English
// file first and fall back to the Urdu one.
type FrontMatter struct {
	Title      string
	Slug       string
	Summary    string
	Category   string
	Image      string
	Author     string
	Date       time.Time
	ShowOnHome bool
	Custom     map[string]any
}

// Document is one parsed language file.
type Document struct {
	FilePath     string
	Slug         string
	Lang         content.Lang
	FrontMatter  FrontMatter
	Body         []byte
	Checksum     []byte
	LastModified time.Time
}

// ParseFrontMatter extracts the metadata and the markdown body without
// delimiters.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta frontMatterEnvelope
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta.toFrontMatter(), body, nil
}

// ParseFilename splits "annual-report.ur.md" into its slug and language.
func ParseFilename(name string) (string, content.Lang, bool) {
	base := path.Base(name)
	if !strings.EqualFold(path.Ext(base), ".md") {
		return "", "", false
	}
	stem := strings.TrimSuffix(base, path.Ext(base))
	idx := strings.LastIndex(stem, ".")
	if idx <= 0 {
		return "", "", false
	}
	lang, ok := content.ParseLang(stem[idx+1:])
	if !ok {
		return "", "", false
	}
	return stem[:idx], lang, true
}

// BuildDocument parses a language file. The file name decides slug and
// language.
func BuildDocument(filePath string, source []byte, modified time.Time) (*Document, error) {
	slug, lang, ok := ParseFilename(filePath)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFilenameInvalid, filePath)
	}
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return &Document{
		FilePath:     filePath,
		Slug:         slug,
		Lang:         lang,
		FrontMatter:  meta,
		Body:         body,
		LastModified: modified,
	}, nil
}

type frontMatterEnvelope struct {
	Title      string         `yaml:"title"`
	Slug       string         `yaml:"slug"`
	Summary    string         `yaml:"summary"`
	Category   string         `yaml:"category"`
	Image      string         `yaml:"image"`
	Author     string         `yaml:"author"`
	Date       time.Time      `yaml:"date"`
	ShowOnHome bool           `yaml:"show_on_home"`
	Custom     map[string]any `yaml:",inline"`
}

func (env frontMatterEnvelope) toFrontMatter() FrontMatter {
	custom := make(map[string]any, len(env.Custom))
	for key, value := range env.Custom {
		custom[key] = value
	}
	return FrontMatter{
		Title:      strings.TrimSpace(env.Title),
		Slug:       strings.TrimSpace(env.Slug),
		Summary:    strings.TrimSpace(env.Summary),
		Category:   strings.TrimSpace(env.Category),
		Image:      strings.TrimSpace(env.Image),
		Author:     strings.TrimSpace(env.Author),
		Date:       env.Date,
		ShowOnHome: env.ShowOnHome,
		Custom:     custom,
	}
}
