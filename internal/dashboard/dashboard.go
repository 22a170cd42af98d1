// Package dashboard summarises how complete the site's content is in both
// languages.
package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/bilingual"
	"github.com/goliatone/go-bilingual-cms/internal/kinds"
	"github.com/goliatone/go-bilingual-cms/internal/logging"
	"github.com/goliatone/go-bilingual-cms/internal/records"
	"github.com/goliatone/go-bilingual-cms/pkg/interfaces"
)

// ErrSourceRequired is returned when no record source is configured.
var ErrSourceRequired = errors.New("dashboard: record source is required")

// RecordSource is the read side of records.Service.
type RecordSource interface {
	List(ctx context.Context, kind content.Kind) ([]*records.Record, error)
	GetSingleton(ctx context.Context, kind content.Kind, key string) (*records.Record, error)
}

var _ RecordSource = (*records.Service)(nil)

// RecordGaps lists what one record lacks.
type RecordGaps struct {
	ID      uuid.UUID           `json:"id"`
	Slug    string              `json:"slug"`
	Missing []string            `json:"missing,omitempty"`
	Items   []bilingual.ItemGap `json:"items,omitempty"`
}

// CollectionSummary reports counts for one collection kind.
type CollectionSummary struct {
	Kind       content.Kind `json:"kind"`
	Total      int          `json:"total"`
	Complete   int          `json:"complete"`
	Incomplete int          `json:"incomplete"`
	OnHome     int          `json:"onHome"`
	Gaps       []RecordGaps `json:"gaps,omitempty"`
}

// SingletonSummary reports the state of a navbar, contact or page settings
// document.
type SingletonSummary struct {
	Kind     content.Kind        `json:"kind"`
	Key      string              `json:"key"`
	Stored   bool                `json:"stored"`
	Complete bool                `json:"complete"`
	Missing  []string            `json:"missing,omitempty"`
	Items    []bilingual.ItemGap `json:"items,omitempty"`
}

// Overview is the dashboard payload.
type Overview struct {
	Collections []CollectionSummary `json:"collections"`
	Singletons  []SingletonSummary  `json:"singletons"`
	GeneratedAt time.Time           `json:"generatedAt"`
}

// Incomplete returns the number of records and singletons with gaps.
func (o *Overview) Incomplete() int {
	total := 0
	for _, c := range o.Collections {
		total += c.Incomplete
	}
	for _, s := range o.Singletons {
		if !s.Complete {
			total++
		}
	}
	return total
}

// Service builds overviews.
type Service struct {
	source RecordSource
	logger interfaces.Logger
	now    func() time.Time
}

// Option configures Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		s.logger = logging.Ensure(logger)
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs a dashboard over source.
func NewService(source RecordSource, opts ...Option) (*Service, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	s := &Service{source: source, logger: logging.NoOp(), now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Overview checks every stored record in both languages.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	out := &Overview{GeneratedAt: s.now().UTC()}

	for _, def := range kinds.Collections() {
		summary, err := s.collection(ctx, def.Kind)
		if err != nil {
			return nil, err
		}
		out.Collections = append(out.Collections, summary)
	}

	singletons := []struct {
		kind content.Kind
		key  string
	}{
		{content.KindNavbar, ""},
		{content.KindContact, ""},
	}
	for _, kind := range content.CollectionKinds {
		singletons = append(singletons, struct {
			kind content.Kind
			key  string
		}{content.KindPages, kind.String()})
	}
	for _, entry := range singletons {
		summary, err := s.singleton(ctx, entry.kind, entry.key)
		if err != nil {
			return nil, err
		}
		out.Singletons = append(out.Singletons, summary)
	}

	s.logger.Debug("dashboard.overview.built", "incomplete", out.Incomplete())
	return out, nil
}

func (s *Service) collection(ctx context.Context, kind content.Kind) (CollectionSummary, error) {
	recs, err := s.source.List(ctx, kind)
	if err != nil {
		return CollectionSummary{}, err
	}
	summary := CollectionSummary{Kind: kind, Total: len(recs)}
	for _, rec := range recs {
		if rec.ShowOnHome {
			summary.OnHome++
		}
		gaps, err := records.Gaps(kind, rec.Payload)
		if err != nil {
			return CollectionSummary{}, err
		}
		if gaps == nil {
			summary.Complete++
			continue
		}
		summary.Incomplete++
		summary.Gaps = append(summary.Gaps, RecordGaps{
			ID:      rec.ID,
			Slug:    rec.Slug,
			Missing: gaps.Missing,
			Items:   gaps.Items,
		})
		logging.WithRecordContext(s.logger, kind.String(), rec.ID.String(), "").
			Debug("dashboard.record.incomplete", "missing", len(gaps.Missing), "items", len(gaps.Items))
	}
	return summary, nil
}

func (s *Service) singleton(ctx context.Context, kind content.Kind, key string) (SingletonSummary, error) {
	rec, err := s.source.GetSingleton(ctx, kind, key)
	if err != nil {
		return SingletonSummary{}, err
	}
	summary := SingletonSummary{Kind: kind, Key: rec.Slug, Stored: !rec.CreatedAt.IsZero()}
	gaps, err := records.Gaps(kind, rec.Payload)
	if err != nil {
		return SingletonSummary{}, err
	}
	if gaps == nil {
		summary.Complete = true
		return summary, nil
	}
	summary.Missing = gaps.Missing
	summary.Items = gaps.Items
	return summary, nil
}
