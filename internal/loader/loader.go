// Package loader tracks the load/refresh lifecycle of one remote resource.
package loader

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/goliatone/go-bilingual-cms/internal/logging"
	"github.com/goliatone/go-bilingual-cms/pkg/interfaces"
)

// Status is the lifecycle state of a Resource.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// ErrNoFetch is returned by Load when the resource has no fetch function.
var ErrNoFetch = errors.New("loader: fetch function required")

// FetchFunc retrieves the resource.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Snapshot is a consistent view of a Resource.
type Snapshot[T any] struct {
	Status   Status
	Data     T
	Err      error
	LoadedAt time.Time
}

// Resource runs fetch on demand and records the outcome. Data from the
// last successful load stays available while a reload is in flight or
// after it fails. When loads overlap, only the most recent one is kept.
type Resource[T any] struct {
	name   string
	fetch  FetchFunc[T]
	logger interfaces.Logger
	now    func() time.Time

	mu         sync.RWMutex
	status     Status
	data       T
	err        error
	loadedAt   time.Time
	generation uint64
}

// Option configures a Resource.
type Option func(*options)

type options struct {
	logger interfaces.Logger
	now    func() time.Time
}

// WithLogger sets the logger used to report failures.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// New returns an idle resource.
func New[T any](name string, fetch FetchFunc[T], opts ...Option) *Resource[T] {
	cfg := options{logger: logging.NoOp(), now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Resource[T]{
		name:   name,
		fetch:  fetch,
		logger: logging.WithFields(cfg.logger, map[string]any{"resource": name}),
		now:    cfg.now,
		status: StatusIdle,
	}
}

// Load fetches the resource, moving it to Loading and then Ready or Error.
func (r *Resource[T]) Load(ctx context.Context) error {
	if r.fetch == nil {
		return ErrNoFetch
	}
	if ctx == nil {
		ctx = context.Background()
	}

	r.mu.Lock()
	r.generation++
	gen := r.generation
	r.status = StatusLoading
	r.err = nil
	r.mu.Unlock()

	data, err := r.fetch(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.generation {
		return err
	}
	if err != nil {
		r.status = StatusError
		r.err = err
		r.logger.Error("loader.fetch.failed", "error", err)
		return err
	}
	r.status = StatusReady
	r.data = data
	r.loadedAt = r.now()
	r.logger.Debug("loader.fetch.ready")
	return nil
}

// Retry reloads after a failure. It is Load under another name so callers
// can bind it to a retry control.
func (r *Resource[T]) Retry(ctx context.Context) error {
	r.logger.Info("loader.retry", "previous_status", r.Status())
	return r.Load(ctx)
}

// Status returns the current lifecycle state.
func (r *Resource[T]) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// Data returns the last successfully loaded value.
func (r *Resource[T]) Data() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data
}

// Err returns the error of the last load, if it failed.
func (r *Resource[T]) Err() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.err
}

// Snapshot returns status, data and error together.
func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Snapshot[T]{Status: r.status, Data: r.data, Err: r.err, LoadedAt: r.loadedAt}
}

// Name identifies the resource in logs.
func (r *Resource[T]) Name() string { return r.name }
