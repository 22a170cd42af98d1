package i18n

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/goliatone/go-bilingual-cms/content"
)

func TestResolveOrder(t *testing.T) {
	res := NewResolver(FromModuleConfig("en", []string{"en", "ur"}))

	cases := []struct {
		name    string
		target  string
		cookie  string
		accept  string
		want    content.Lang
		persist bool
	}{
		{name: "default", target: "/api/blogs", want: content.LangEN},
		{name: "query wins", target: "/api/blogs?lang=ur", cookie: "en", accept: "en", want: content.LangUR, persist: true},
		{name: "cookie", target: "/api/blogs", cookie: "ur", accept: "en-US", want: content.LangUR},
		{name: "accept language", target: "/api/blogs", accept: "ur-PK,en;q=0.5", want: content.LangUR},
		{name: "accept language fallback", target: "/api/blogs", accept: "fr-FR", want: content.LangEN},
		{name: "bad query ignored", target: "/api/blogs?lang=de", cookie: "ur", want: content.LangUR},
		{name: "regional query", target: "/api/blogs?lang=ur-IN", want: content.LangUR, persist: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tc.cookie})
			}
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			got, persist := res.Resolve(req)
			if got != tc.want || persist != tc.persist {
				t.Fatalf("expected (%s, %v), got (%s, %v)", tc.want, tc.persist, got, persist)
			}
		})
	}
}

func TestResolveLangDefaultsToEnglish(t *testing.T) {
	if got := ResolveLang(nil); got != content.LangEN {
		t.Fatalf("expected en, got %s", got)
	}
}

func TestSetLangCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetLangCookie(rec, content.LangUR)
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != LangCookieName || cookies[0].Value != "ur" {
		t.Fatalf("unexpected cookies %v", cookies)
	}
}

func TestDirection(t *testing.T) {
	if Direction(content.LangUR) != "rtl" || Direction(content.LangEN) != "ltr" {
		t.Fatal("unexpected direction")
	}
}

func TestLocalizePartitionedDocument(t *testing.T) {
	doc := map[string]any{
		"slug":  "clean-water",
		"image": "/w.jpg",
		"en":    map[string]any{"title": "Clean Water", "keyFeatures": []any{map[string]any{"id": "a", "title": "Pumps"}}},
		"ur":    map[string]any{"title": "صاف پانی", "keyFeatures": []any{map[string]any{"id": "a", "title": "پمپ"}}},
		"socialShare": map[string]any{
			"image": "/s.jpg",
			"title": map[string]any{"en": "Water", "ur": "پانی"},
		},
	}
	got := Localize(doc, content.LangUR)
	want := map[string]any{
		"slug":        "clean-water",
		"image":       "/w.jpg",
		"title":       "صاف پانی",
		"keyFeatures": []any{map[string]any{"id": "a", "title": "پمپ"}},
		"socialShare": map[string]any{"image": "/s.jpg", "title": "پانی"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected localized doc:\n%#v", got)
	}
	if _, ok := doc["en"]; !ok {
		t.Fatal("source document must not change")
	}
}

func TestLocalizeLocalizedLists(t *testing.T) {
	doc := map[string]any{
		"logo": "/logo.svg",
		"items": []any{
			map[string]any{"id": "home", "route": "home", "label": map[string]any{"en": "Home", "ur": "ہوم"}},
		},
	}
	got := Localize(doc, content.LangEN)
	items := got["items"].([]any)
	if items[0].(map[string]any)["label"] != "Home" {
		t.Fatalf("expected english label, got %v", items[0])
	}
}
