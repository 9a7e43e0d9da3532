// Package store binds an observable state container, its persistence adapter
// and a set of domain actions into one Handle.
//
//	h := store.Create("task-store", task.Initial(), newTaskActions, storage,
//	    store.WithVersion(1),
//	)
//	h.Actions().AddTask("Write docs", "")
//
// Hydration is deferred by default: the host calls Rehydrate once at startup.
package store

import (
	"log/slog"
	"time"

	"github.com/jsamuelsen11/boardstate/internal/persist"
	"github.com/jsamuelsen11/boardstate/internal/platform/telemetry"
	"github.com/jsamuelsen11/boardstate/internal/ports"
	"github.com/jsamuelsen11/boardstate/internal/state"
)

// ActionsBuilder constructs the action set of a store. Actions may only change
// state through set.
type ActionsBuilder[S, A any] func(set state.Setter[S]) A

// Handle is a persisted store with its actions.
type Handle[S, A any] struct {
	*persist.Persisted[S]
	actions A
}

// Actions returns the store's action set.
func (h *Handle[S, A]) Actions() A {
	return h.actions
}

// Option configures Create.
type Option func(*options)

type options struct {
	version       int
	migrate       persist.MigrateFunc
	skipHydration bool
	writeTimeout  time.Duration
	logger        *slog.Logger
	metrics       *telemetry.Metrics
}

// WithVersion sets the envelope version.
func WithVersion(v int) Option {
	return func(o *options) { o.version = v }
}

// WithMigrate sets the function that upgrades documents stored by an older
// version.
func WithMigrate(fn persist.MigrateFunc) Option {
	return func(o *options) { o.migrate = fn }
}

// WithSkipHydration controls whether Create leaves hydration to an explicit
// Rehydrate call. Defaults to true.
func WithSkipHydration(skip bool) Option {
	return func(o *options) { o.skipHydration = skip }
}

// WithWriteTimeout bounds each write-through call.
func WithWriteTimeout(d time.Duration) Option {
	return func(o *options) { o.writeTimeout = d }
}

// WithLogger sets the logger used for persistence warnings.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics enables persistence metrics.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// Create builds a store named name holding initial, persisted to storage.
func Create[S, A any](name string, initial S, build ActionsBuilder[S, A], storage ports.DurableStorage, opts ...Option) *Handle[S, A] {
	o := options{skipHydration: true}
	for _, opt := range opts {
		opt(&o)
	}

	st := state.New(initial)
	p := persist.Wrap(st, storage, persist.Options[S]{
		Name:          name,
		Version:       o.version,
		SkipHydration: o.skipHydration,
		Migrate:       o.migrate,
		WriteTimeout:  o.writeTimeout,
		Logger:        o.logger,
		Metrics:       o.metrics,
	})

	return &Handle[S, A]{
		Persisted: p,
		actions:   build(st.Setter()),
	}
}
