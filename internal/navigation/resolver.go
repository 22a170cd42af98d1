// Package navigation builds the public URLs of navbar items per language
// with go-urlkit route groups.
package navigation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/logging"
	"github.com/goliatone/go-bilingual-cms/pkg/interfaces"
)

var (
	ErrManagerRequired = errors.New("navigation: route manager not configured")
	ErrRouteRequired   = errors.New("navigation: item has no route")
)

// Options configures a Resolver.
type Options struct {
	Manager *urlkit.RouteManager
	// DefaultGroup is the dotted group path used when a language has no
	// entry in LocaleGroups.
	DefaultGroup string
	// LocaleGroups maps a language code to a dotted group path, e.g.
	// "ur" -> "public.ur".
	LocaleGroups map[string]string
	SlugParam    string
	Logger       interfaces.Logger
}

// Resolver resolves navbar item routes to URLs.
type Resolver struct {
	manager      *urlkit.RouteManager
	defaultGroup string
	localeGroups map[string]string
	slugParam    string
	logger       interfaces.Logger

	groupCache map[string]*urlkit.Group
	mu         sync.RWMutex
}

// NewResolver constructs a resolver backed by go-urlkit.
func NewResolver(opts Options) *Resolver {
	if opts.SlugParam == "" {
		opts.SlugParam = "slug"
	}
	groups := make(map[string]string, len(opts.LocaleGroups))
	for lang, path := range opts.LocaleGroups {
		groups[strings.ToLower(strings.TrimSpace(lang))] = strings.TrimSpace(path)
	}
	return &Resolver{
		manager:      opts.Manager,
		defaultGroup: strings.TrimSpace(opts.DefaultGroup),
		localeGroups: groups,
		slugParam:    opts.SlugParam,
		logger:       logging.Ensure(opts.Logger),
		groupCache:   make(map[string]*urlkit.Group),
	}
}

// Link is a navbar item as a visitor reading one language sees it.
type Link struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Resolve builds the URL of item for lang.
func (r *Resolver) Resolve(_ context.Context, item content.NavItem, lang content.Lang) (string, error) {
	if r == nil || r.manager == nil {
		return "", ErrManagerRequired
	}
	route := strings.TrimSpace(item.Route)
	if route == "" {
		return "", fmt.Errorf("%w: %s", ErrRouteRequired, item.ID)
	}
	groupPath := r.defaultGroup
	if path, ok := r.localeGroups[lang.String()]; ok && path != "" {
		groupPath = path
	}
	if groupPath == "" {
		return "", fmt.Errorf("navigation: no route group for %q", lang)
	}
	group, err := r.groupForPath(groupPath)
	if err != nil {
		return "", err
	}
	builder, err := safeBuilder(group, route)
	if err != nil {
		return "", err
	}
	if slug := strings.TrimSpace(item.Slug); slug != "" {
		builder.WithParam(r.slugParam, slug)
	}
	return builder.Build()
}

// ResolveNavbar localizes every item of navbar. Items whose route cannot
// be built keep an empty URL; their errors are joined into the result.
func (r *Resolver) ResolveNavbar(ctx context.Context, navbar *content.Navbar, lang content.Lang) ([]Link, error) {
	if navbar == nil {
		return []Link{}, nil
	}
	links := make([]Link, 0, len(navbar.Items))
	var errs []error
	for _, item := range navbar.Items {
		url, err := r.Resolve(ctx, item, lang)
		if err != nil {
			r.logger.Warn("navigation.resolve.failed", "item", item.ID, "route", item.Route, "lang", lang.String(), "error", err)
			errs = append(errs, err)
		}
		links = append(links, Link{ID: item.ID, Label: item.Label.Get(lang), URL: url})
	}
	return links, errors.Join(errs...)
}

func (r *Resolver) groupForPath(path string) (*urlkit.Group, error) {
	r.mu.RLock()
	group, ok := r.groupCache[path]
	r.mu.RUnlock()
	if ok {
		return group, nil
	}

	parts := strings.Split(path, ".")
	current, err := lookupGroup(r.manager, parts[0])
	if err != nil {
		return nil, err
	}
	for _, part := range parts[1:] {
		current, err = lookupChildGroup(current, part)
		if err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	r.groupCache[path] = current
	r.mu.Unlock()
	return current, nil
}

// urlkit panics on unknown names; the helpers below turn that into errors.

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("navigation: route %q not found: %v", route, rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("navigation: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("navigation: child group %q not found", name)
		}
	}()
	group = parent.Group(name)
	return group, err
}
