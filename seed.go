package cms

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/records"
	"gopkg.in/yaml.v3"
)

var (
	ErrSeedRecordsRequired = errors.New("cms: record service is required")
	ErrSeedPageKindInvalid = errors.New("cms: seed page settings must name a collection kind")
)

// SeedSingletonStore is the subset of the record service used by seeding.
type SeedSingletonStore interface {
	GetSingleton(ctx context.Context, kind content.Kind, key string) (*records.Record, error)
	PutSingleton(ctx context.Context, kind content.Kind, key string, doc map[string]any) (*records.Record, error)
}

// SeedDocument is the YAML layout accepted by SeedFromYAML.
type SeedDocument struct {
	Navbar  *content.Navbar        `yaml:"navbar"`
	Contact *content.ContactInfo   `yaml:"contact"`
	Pages   []content.PageSettings `yaml:"pages"`
}

type SeedOptions struct {
	Records SeedSingletonStore
	Data    []byte
	// Ensure overwrites singletons that were already stored. Without it only
	// missing singletons are written.
	Ensure bool
}

// SeedReport lists the singletons written and left untouched, as
// "kind" or "kind/key".
type SeedReport struct {
	Applied []string
	Skipped []string
}

// SeedFromYAML writes the navbar, contact and page settings singletons
// described by opts.Data.
func SeedFromYAML(ctx context.Context, opts SeedOptions) (*SeedReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Records == nil {
		return nil, ErrSeedRecordsRequired
	}

	var doc SeedDocument
	if err := yaml.Unmarshal(opts.Data, &doc); err != nil {
		return nil, fmt.Errorf("cms: decode seed: %w", err)
	}

	type entry struct {
		kind  content.Kind
		key   string
		value any
	}
	var entries []entry
	if doc.Navbar != nil {
		entries = append(entries, entry{kind: content.KindNavbar, value: doc.Navbar})
	}
	if doc.Contact != nil {
		entries = append(entries, entry{kind: content.KindContact, value: doc.Contact})
	}

	pages := append([]content.PageSettings(nil), doc.Pages...)
	sort.SliceStable(pages, func(i, j int) bool { return pages[i].Kind < pages[j].Kind })
	for i := range pages {
		page := pages[i]
		page.Kind = content.Kind(strings.ToLower(strings.TrimSpace(page.Kind.String())))
		if !isCollectionKind(page.Kind) {
			return nil, fmt.Errorf("%w: %q", ErrSeedPageKindInvalid, page.Kind)
		}
		entries = append(entries, entry{kind: content.KindPages, key: page.Kind.String(), value: &page})
	}

	report := &SeedReport{}
	for _, e := range entries {
		label := e.kind.String()
		if e.key != "" {
			label += "/" + e.key
		}
		if !opts.Ensure {
			current, err := opts.Records.GetSingleton(ctx, e.kind, e.key)
			if err != nil {
				return report, err
			}
			if !current.CreatedAt.IsZero() {
				report.Skipped = append(report.Skipped, label)
				continue
			}
		}
		payload, err := content.ToDocument(e.value)
		if err != nil {
			return report, err
		}
		if _, err := opts.Records.PutSingleton(ctx, e.kind, e.key, payload); err != nil {
			return report, fmt.Errorf("cms: seed %s: %w", label, err)
		}
		report.Applied = append(report.Applied, label)
	}
	return report, nil
}

func isCollectionKind(kind content.Kind) bool {
	for _, candidate := range content.CollectionKinds {
		if kind == candidate {
			return true
		}
	}
	return false
}
