// Package richtext sanitises editor HTML and renders markdown bodies.
package richtext

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	ugcOnce   sync.Once
	ugcPolicy *bluemonday.Policy

	stripOnce   sync.Once
	stripPolicy *bluemonday.Policy

	engine = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)
)

func ugc() *bluemonday.Policy {
	ugcOnce.Do(func() {
		ugcPolicy = bluemonday.UGCPolicy()
		// The editor sets dir and lang on blocks that mix English and Urdu.
		ugcPolicy.AllowAttrs("dir").Matching(bluemonday.Direction).Globally()
		ugcPolicy.AllowAttrs("lang").Globally()
	})
	return ugcPolicy
}

func strip() *bluemonday.Policy {
	stripOnce.Do(func() {
		stripPolicy = bluemonday.StripTagsPolicy()
	})
	return stripPolicy
}

// Sanitize removes scripts, event handlers and other unsafe markup from
// editor HTML.
func Sanitize(value string) string {
	if value == "" {
		return ""
	}
	return ugc().Sanitize(value)
}

// PlainText returns the visible text of an HTML fragment with entities
// decoded and surrounding whitespace trimmed.
func PlainText(value string) string {
	if value == "" {
		return ""
	}
	text := html.UnescapeString(strip().Sanitize(value))
	return strings.TrimSpace(text)
}

// IsBlank reports whether an HTML fragment has no visible content, as with
// the "<p><br></p>" an empty editor leaves behind. An image with a safe
// source counts as content even when the fragment holds no text.
func IsBlank(value string) bool {
	if PlainText(value) != "" {
		return false
	}
	return !strings.Contains(Sanitize(value), "<img")
}

// RenderMarkdown converts markdown to sanitised HTML.
func RenderMarkdown(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := engine.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("richtext: render markdown: %w", err)
	}
	return Sanitize(buf.String()), nil
}
