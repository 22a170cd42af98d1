// Package i18n picks the language of a public request and shapes documents
// for it.
package i18n

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/goliatone/go-bilingual-cms/content"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "site_lang"
)

// Resolver matches requests against the configured languages.
type Resolver struct {
	cfg     Config
	tags    []language.Tag
	matcher language.Matcher
}

// NewResolver builds a Resolver for cfg.
func NewResolver(cfg Config) *Resolver {
	if len(cfg.Languages) == 0 {
		cfg.Languages = append([]content.Lang(nil), content.Langs...)
	}
	if !cfg.DefaultLang.Valid() {
		cfg.DefaultLang = content.LangEN
	}
	// The matcher falls back to its first tag.
	ordered := []content.Lang{cfg.DefaultLang}
	for _, lang := range cfg.Languages {
		if lang != cfg.DefaultLang {
			ordered = append(ordered, lang)
		}
	}
	tags := make([]language.Tag, len(ordered))
	for i, lang := range ordered {
		tags[i] = language.Make(lang.String())
	}
	return &Resolver{cfg: cfg, tags: tags, matcher: language.NewMatcher(tags)}
}

var defaultResolver = NewResolver(Config{DefaultLang: content.LangEN})

// ResolveLang determines the language of r using the default site setup.
func ResolveLang(r *http.Request) content.Lang {
	lang, _ := defaultResolver.Resolve(r)
	return lang
}

// Default returns the fallback language.
func (res *Resolver) Default() content.Lang { return res.cfg.DefaultLang }

// Supported reports whether lang is served.
func (res *Resolver) Supported(lang content.Lang) bool {
	for _, candidate := range res.cfg.Languages {
		if candidate == lang {
			return true
		}
	}
	return false
}

// Resolve reads the lang query parameter, then the language cookie, then
// Accept-Language. The bool reports whether the query parameter chose the
// language, so callers can persist it as a cookie.
func (res *Resolver) Resolve(r *http.Request) (content.Lang, bool) {
	if r == nil {
		return res.cfg.DefaultLang, false
	}
	if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
		if lang, ok := res.parse(value); ok {
			return lang, true
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if lang, ok := res.parse(cookie.Value); ok {
			return lang, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			return res.match(tags...), false
		}
	}
	return res.cfg.DefaultLang, false
}

func (res *Resolver) parse(value string) (content.Lang, bool) {
	if lang, ok := content.ParseLang(value); ok && res.Supported(lang) {
		return lang, true
	}
	tag, err := language.Parse(value)
	if err != nil {
		return "", false
	}
	_, _, confidence := res.matcher.Match(tag)
	if confidence == language.No {
		return "", false
	}
	return res.match(tag), true
}

func (res *Resolver) match(tags ...language.Tag) content.Lang {
	_, index, _ := res.matcher.Match(tags...)
	if index < 0 || index >= len(res.tags) {
		return res.cfg.DefaultLang
	}
	base, _ := res.tags[index].Base()
	return content.NormalizeLang(base.String())
}

// SetLangCookie persists the selected language on the response.
func SetLangCookie(w http.ResponseWriter, lang content.Lang) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    lang.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// Direction returns the text direction for lang.
func Direction(lang content.Lang) string {
	if lang == content.LangUR {
		return "rtl"
	}
	return "ltr"
}
