package markdown

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/identity"
	"github.com/goliatone/go-bilingual-cms/internal/logging"
	"github.com/goliatone/go-bilingual-cms/internal/records"
	"github.com/goliatone/go-bilingual-cms/internal/richtext"
	"github.com/goliatone/go-bilingual-cms/pkg/interfaces"
)

var (
	ErrStoreRequired   = errors.New("markdown importer: record store is required")
	ErrFilenameInvalid = errors.New("markdown importer: file name must be <slug>.<en|ur>.md")
)

// Store is the part of the records service the importer writes through.
type Store interface {
	Get(ctx context.Context, kind content.Kind, id uuid.UUID) (*records.Record, error)
	GetBySlug(ctx context.Context, kind content.Kind, slug string) (*records.Record, error)
	Create(ctx context.Context, kind content.Kind, doc map[string]any) (*records.Record, error)
	Update(ctx context.Context, kind content.Kind, id uuid.UUID, doc map[string]any) (*records.Record, error)
}

// Outcome is what happened to one post.
type Outcome string

const (
	OutcomeCreated    Outcome = "created"
	OutcomeUpdated    Outcome = "updated"
	OutcomeDryRun     Outcome = "dry_run"
	OutcomeIncomplete Outcome = "incomplete"
	OutcomeFailed     Outcome = "failed"
)

// Entry reports one post. Missing lists absent language files or empty
// required fields.
type Entry struct {
	Slug     string    `json:"slug"`
	Outcome  Outcome   `json:"outcome"`
	RecordID uuid.UUID `json:"recordId,omitempty"`
	Missing  []string  `json:"missing,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Report summarises an import run.
type Report struct {
	Entries []Entry  `json:"entries"`
	Ignored []string `json:"ignored,omitempty"`
}

// Count returns how many entries ended with outcome.
func (r *Report) Count(outcome Outcome) int {
	n := 0
	for _, entry := range r.Entries {
		if entry.Outcome == outcome {
			n++
		}
	}
	return n
}

// Options tune an import run.
type Options struct {
	// DryRun builds and validates every post without writing.
	DryRun bool
}

// ImporterConfig encapsulates the importer dependencies.
type ImporterConfig struct {
	Store  Store
	Logger interfaces.Logger
}

// Importer turns post pairs into blog records. Records get an id derived
// from the slug so re-importing updates them.
type Importer struct {
	store  Store
	logger interfaces.Logger
}

// NewImporter builds an Importer from cfg.
func NewImporter(cfg ImporterConfig) *Importer {
	return &Importer{store: cfg.Store, logger: logging.Ensure(cfg.Logger)}
}

// ImportDirectory loads dir through loader and imports every pair found.
func (i *Importer) ImportDirectory(ctx context.Context, loader *Loader, dir string, opts Options) (*Report, error) {
	docs, ignored, err := loader.LoadDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}
	report, err := i.ImportDocuments(ctx, docs, opts)
	if report != nil {
		report.Ignored = ignored
	}
	return report, err
}

// ImportDocuments pairs docs by slug and imports each pair. Failures are
// reported per post; the returned error is only set when the run itself
// could not proceed.
func (i *Importer) ImportDocuments(ctx context.Context, docs []*Document, opts Options) (*Report, error) {
	if i.store == nil {
		return nil, ErrStoreRequired
	}
	report := &Report{Entries: []Entry{}}
	for _, pair := range PairDocuments(docs) {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		entry := i.importPair(ctx, pair, opts)
		i.logEntry(entry)
		report.Entries = append(report.Entries, entry)
	}
	return report, nil
}

func (i *Importer) importPair(ctx context.Context, pair Pair, opts Options) Entry {
	entry := Entry{Slug: pair.Slug}
	if !pair.Complete() {
		entry.Outcome = OutcomeIncomplete
		for _, lang := range pair.Missing() {
			entry.Missing = append(entry.Missing, pair.Slug+"."+lang.String()+".md")
		}
		return entry
	}

	post, err := BuildBlogPost(pair)
	if err != nil {
		return failed(entry, err)
	}
	entry.RecordID = post.ID
	doc, err := content.ToDocument(post)
	if err != nil {
		return failed(entry, err)
	}

	existing, err := i.lookup(ctx, post)
	if err != nil {
		return failed(entry, err)
	}
	if opts.DryRun {
		entry.Outcome = OutcomeDryRun
		return entry
	}

	var rec *records.Record
	if existing != nil {
		entry.RecordID = existing.ID
		rec, err = i.store.Update(ctx, content.KindBlogs, existing.ID, doc)
		entry.Outcome = OutcomeUpdated
	} else {
		rec, err = i.store.Create(ctx, content.KindBlogs, doc)
		entry.Outcome = OutcomeCreated
	}
	if err != nil {
		var incomplete *records.IncompleteError
		if errors.As(err, &incomplete) {
			entry.Outcome = OutcomeIncomplete
			entry.Missing = append([]string(nil), incomplete.Missing...)
			entry.Error = err.Error()
			return entry
		}
		return failed(entry, err)
	}
	entry.RecordID = rec.ID
	return entry
}

// lookup finds the record a pair was imported into before, by derived id
// and then by slug.
func (i *Importer) lookup(ctx context.Context, post *content.BlogPost) (*records.Record, error) {
	rec, err := i.store.Get(ctx, content.KindBlogs, post.ID)
	if err == nil {
		return rec, nil
	}
	if !isNotFound(err) {
		return nil, err
	}
	rec, err = i.store.GetBySlug(ctx, content.KindBlogs, post.Slug)
	if err == nil {
		return rec, nil
	}
	if !isNotFound(err) {
		return nil, err
	}
	return nil, nil
}

func isNotFound(err error) bool {
	var notFound *records.NotFoundError
	return errors.As(err, &notFound)
}

func failed(entry Entry, err error) Entry {
	entry.Outcome = OutcomeFailed
	entry.Error = err.Error()
	return entry
}

func (i *Importer) logEntry(entry Entry) {
	logger := logging.WithFields(i.logger, map[string]any{
		"slug":    entry.Slug,
		"outcome": string(entry.Outcome),
	})
	switch entry.Outcome {
	case OutcomeFailed:
		logger.Error("markdown.import.failed", "error", entry.Error)
	case OutcomeIncomplete:
		logger.Warn("markdown.import.incomplete", "missing", strings.Join(entry.Missing, ","))
	default:
		logger.Info("markdown.import.applied", "record_id", entry.RecordID.String())
	}
}

// BuildBlogPost renders a complete pair into a blog post. The slug comes
// from the English front matter, falling back to the file name.
func BuildBlogPost(pair Pair) (*content.BlogPost, error) {
	if !pair.Complete() {
		return nil, fmt.Errorf("markdown importer: %s is missing a language file", pair.Slug)
	}
	en, ur := pair.EN.FrontMatter, pair.UR.FrontMatter

	slug := content.NormalizeSlug(firstNonEmpty(en.Slug, pair.Slug))
	if slug == "" {
		return nil, fmt.Errorf("%w: %s", ErrFilenameInvalid, pair.EN.FilePath)
	}
	enBody, err := richtext.RenderMarkdown(pair.EN.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pair.EN.FilePath, err)
	}
	urBody, err := richtext.RenderMarkdown(pair.UR.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pair.UR.FilePath, err)
	}

	post := content.NewBlogPost()
	post.ID = identity.ImportUUID(content.KindBlogs.String(), slug)
	post.Slug = slug
	post.Image = firstNonEmpty(en.Image, ur.Image)
	post.Category = firstNonEmpty(en.Category, ur.Category)
	post.ShowOnHome = en.ShowOnHome || ur.ShowOnHome
	if date := firstDate(en, ur); !date.IsZero() {
		post.Date = date.Format("2006-01-02")
	}
	post.EN = content.BlogLocale{Title: en.Title, ShortDescription: en.Summary, Content: enBody, Author: en.Author}
	post.UR = content.BlogLocale{Title: ur.Title, ShortDescription: ur.Summary, Content: urBody, Author: ur.Author}
	post.SocialShare.Image = post.Image
	post.SocialShare.Title = content.LocalizedText{EN: en.Title, UR: ur.Title}
	post.SocialShare.Description = content.LocalizedText{EN: en.Summary, UR: ur.Summary}
	return post, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func firstDate(metas ...FrontMatter) time.Time {
	for _, meta := range metas {
		if !meta.Date.IsZero() {
			return meta.Date
		}
	}
	return time.Time{}
}
