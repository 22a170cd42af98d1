package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/i18n"
	"github.com/goliatone/go-bilingual-cms/internal/logging"
	"github.com/goliatone/go-bilingual-cms/internal/navigation"
	"github.com/goliatone/go-bilingual-cms/internal/records"
	"github.com/goliatone/go-bilingual-cms/pkg/interfaces"
)

// PublicRecords is the read side of records.Service used by the site.
type PublicRecords interface {
	List(ctx context.Context, kind content.Kind) ([]*records.Record, error)
	ListOnHome(ctx context.Context, kind content.Kind) ([]*records.Record, error)
	GetBySlug(ctx context.Context, kind content.Kind, slug string) (*records.Record, error)
	GetSingleton(ctx context.Context, kind content.Kind, key string) (*records.Record, error)
}

var (
	_ PublicRecords = (*records.Service)(nil)
	_ AdminRecords  = (*records.Service)(nil)
)

// PublicAPI serves content localized to the visitor's language.
type PublicAPI struct {
	basePath string
	records  PublicRecords
	langs    *i18n.Resolver
	nav      *navigation.Resolver
	logger   interfaces.Logger
}

// PublicOption mutates the PublicAPI configuration.
type PublicOption func(*PublicAPI)

// NewPublicAPI constructs the public API. Without a language resolver it
// falls back to English-first defaults.
func NewPublicAPI(opts ...PublicOption) *PublicAPI {
	api := &PublicAPI{
		basePath: defaultPublicBasePath,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	if api.langs == nil {
		api.langs = i18n.NewResolver(i18n.Config{})
	}
	return api
}

// WithPublicBasePath overrides the base path (defaults to "/api").
func WithPublicBasePath(path string) PublicOption {
	return func(api *PublicAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

func WithPublicRecordService(service PublicRecords) PublicOption {
	return func(api *PublicAPI) {
		api.records = service
	}
}

func WithLanguageResolver(resolver *i18n.Resolver) PublicOption {
	return func(api *PublicAPI) {
		api.langs = resolver
	}
}

// WithNavigation enables URL resolution for navbar items. Without it the
// navbar endpoint returns labels only.
func WithNavigation(resolver *navigation.Resolver) PublicOption {
	return func(api *PublicAPI) {
		api.nav = resolver
	}
}

func WithPublicLogger(logger interfaces.Logger) PublicOption {
	return func(api *PublicAPI) {
		api.logger = logging.Ensure(logger)
	}
}

// Register attaches the public endpoints to r under the base path.
func (api *PublicAPI) Register(r chi.Router) error {
	if r == nil {
		return fmt.Errorf("http: router is required")
	}
	if api == nil {
		return fmt.Errorf("http: public api is nil")
	}
	if api.records == nil {
		return fmt.Errorf("http: public api requires a record service")
	}
	r.Route(joinPath(api.basePath, ""), api.routes)
	return nil
}

type langKey struct{}

func requestLang(r *http.Request) content.Lang {
	if lang, ok := r.Context().Value(langKey{}).(content.Lang); ok {
		return lang
	}
	return content.LangEN
}

// withLang resolves the visitor's language once per request and persists
// an explicit ?lang= choice in the language cookie.
func (api *PublicAPI) withLang(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang, chosen := api.langs.Resolve(r)
		if chosen {
			i18n.SetLangCookie(w, lang)
		}
		w.Header().Set("Content-Language", lang.String())
		w.Header().Add("Vary", "Accept-Language, Cookie")
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), langKey{}, lang)))
	})
}

func (api *PublicAPI) routes(r chi.Router) {
	r.Use(api.withLang)
	r.Get("/home", api.home)
	r.Get("/navbar", api.navbar)
	r.Get("/contact", api.singleton(content.KindContact))
	r.Get("/pages/{page}", api.singleton(content.KindPages))
	r.Get("/{kind}", api.list)
	r.Get("/{kind}/{slug}", api.get)
}

func (api *PublicAPI) respond(w http.ResponseWriter, r *http.Request, data any) {
	lang := requestLang(r)
	writeJSON(w, http.StatusOK, envelope{Lang: lang.String(), Dir: i18n.Direction(lang), Data: data})
}

func (api *PublicAPI) localized(r *http.Request, recs []*records.Record) []map[string]any {
	return i18n.LocalizeAll(documents(recs), requestLang(r))
}

func (api *PublicAPI) list(w http.ResponseWriter, r *http.Request) {
	kind, err := collectionParam(r)
	if err != nil {
		writeError(w, r, api.logger, err)
		return
	}
	recs, err := api.records.List(r.Context(), kind)
	if err != nil {
		writeError(w, r, api.logger, err)
		return
	}
	api.respond(w, r, api.localized(r, recs))
}

func (api *PublicAPI) get(w http.ResponseWriter, r *http.Request) {
	kind, err := collectionParam(r)
	if err != nil {
		writeError(w, r, api.logger, err)
		return
	}
	rec, err := api.records.GetBySlug(r.Context(), kind, chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, api.logger, err)
		return
	}
	api.respond(w, r, i18n.Localize(rec.Document(), requestLang(r)))
}

func (api *PublicAPI) home(w http.ResponseWriter, r *http.Request) {
	out := make(map[string]any, len(content.CollectionKinds))
	for _, kind := range content.CollectionKinds {
		recs, err := api.records.ListOnHome(r.Context(), kind)
		if err != nil {
			writeError(w, r, api.logger, err)
			return
		}
		out[kind.String()] = api.localized(r, recs)
	}
	api.respond(w, r, out)
}

type navbarView struct {
	Logo  string            `json:"logo"`
	Items []navigation.Link `json:"items"`
}

func (api *PublicAPI) navbar(w http.ResponseWriter, r *http.Request) {
	rec, err := api.records.GetSingleton(r.Context(), content.KindNavbar, "")
	if err != nil {
		writeError(w, r, api.logger, err)
		return
	}
	navbar := content.NewNavbar()
	if err := content.FromDocument(rec.Payload, navbar); err != nil {
		writeError(w, r, api.logger, err)
		return
	}
	lang := requestLang(r)
	var links []navigation.Link
	if api.nav != nil {
		// Items that fail to resolve keep an empty URL and are already logged.
		links, _ = api.nav.ResolveNavbar(r.Context(), navbar, lang)
	} else {
		links = make([]navigation.Link, 0, len(navbar.Items))
		for _, item := range navbar.Items {
			links = append(links, navigation.Link{ID: item.ID, Label: item.Label.Get(lang)})
		}
	}
	api.respond(w, r, navbarView{Logo: navbar.Logo, Items: links})
}

func (api *PublicAPI) singleton(kind content.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := api.records.GetSingleton(r.Context(), kind, chi.URLParam(r, "page"))
		if err != nil {
			writeError(w, r, api.logger, err)
			return
		}
		api.respond(w, r, i18n.Localize(rec.Document(), requestLang(r)))
	}
}
