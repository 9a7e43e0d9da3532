// Package persist mirrors a state.Store into a durable storage slot and
// restores it on demand.
//
// Every committed change is serialised into an Envelope and written to the
// slot named by Options.Name. Restoring a previous session is a separate,
// explicit step (Rehydrate) so that the host controls when I/O happens:
//
//	st := state.New(task.Initial())
//	p := persist.Wrap(st, storage, persist.Options[task.BoardState]{
//	    Name:          "task-store",
//	    SkipHydration: true,
//	})
//	outcome := p.Rehydrate(ctx)
//
// Write failures never reach the code that changed the state; they are logged
// at WARN and counted. Hydration never fails: a corrupt, absent or outdated
// slot leaves the in-memory state as it was and is reported via Outcome.
package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/boardstate/internal/domain"
	"github.com/jsamuelsen11/boardstate/internal/platform/telemetry"
	"github.com/jsamuelsen11/boardstate/internal/ports"
	"github.com/jsamuelsen11/boardstate/internal/state"
)

// DefaultWriteTimeout bounds a single write-through mirror.
const DefaultWriteTimeout = 2 * time.Second

// Envelope is the document stored in a slot.
type Envelope struct {
	State   json.RawMessage `json:"state"`
	Version int             `json:"version"`
}

// Outcome reports the result of a hydration attempt.
type Outcome int

const (
	// Restored means the slot held a usable document that was merged into
	// the current state.
	Restored Outcome = iota + 1
	// Empty means the slot did not exist.
	Empty
	// Discarded means the slot existed but was unreadable, undecodable, or
	// written by an incompatible version. The current state was kept.
	Discarded
)

func (o Outcome) String() string {
	switch o {
	case Restored:
		return "restored"
	case Empty:
		return "empty"
	case Discarded:
		return "discarded"
	default:
		return "unknown"
	}
}

// MigrateFunc upgrades a stored state document written at fromVersion to the
// current version.
type MigrateFunc func(raw json.RawMessage, fromVersion int) (json.RawMessage, error)

// Options configures Wrap.
type Options[S any] struct {
	// Name is the slot key. Required.
	Name string

	// Version is written into every envelope. A stored envelope with a
	// different version is passed to Migrate, or discarded when Migrate is nil.
	Version int

	// SkipHydration defers restoring to an explicit Rehydrate call. When false,
	// Wrap hydrates synchronously before returning.
	SkipHydration bool

	// Partialize selects what is stored. Nil stores the whole state.
	Partialize func(S) any

	Migrate MigrateFunc

	// WriteTimeout bounds each write-through call. Zero means DefaultWriteTimeout.
	WriteTimeout time.Duration

	Logger  *slog.Logger
	Metrics *telemetry.Metrics
}

// Persisted couples a store with its durable slot.
type Persisted[S any] struct {
	store   *state.Store[S]
	storage ports.DurableStorage
	opts    Options[S]
	logger  *slog.Logger

	mu         sync.Mutex
	hydrated   bool
	nextHookID uint64
	onHydrate  []hook[S]
	onFinish   []hook[S]
}

type hook[S any] struct {
	id uint64
	fn func(S)
}

// Wrap attaches write-through persistence to st. It panics if opts.Name is
// empty, since every persisted store must own a slot.
func Wrap[S any](st *state.Store[S], storage ports.DurableStorage, opts Options[S]) *Persisted[S] {
	if opts.Name == "" {
		panic("persist: Options.Name is required")
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = DefaultWriteTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p := &Persisted[S]{
		store:   st,
		storage: storage,
		opts:    opts,
		logger:  logger.With(slog.String("store", opts.Name)),
	}

	st.Subscribe(func(next, _ S) {
		p.write(next)
	})

	if !opts.SkipHydration {
		p.Rehydrate(context.Background())
	}
	return p
}

// State returns the current state of the wrapped store.
func (p *Persisted[S]) State() S {
	return p.store.State()
}

// Subscribe registers a listener on the wrapped store.
func (p *Persisted[S]) Subscribe(fn state.Listener[S]) (unsubscribe func()) {
	return p.store.Subscribe(fn)
}

// Name returns the slot key.
func (p *Persisted[S]) Name() string {
	return p.opts.Name
}

// HasHydrated reports whether a hydration attempt has completed, whatever its
// outcome.
func (p *Persisted[S]) HasHydrated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hydrated
}

// OnHydrate registers fn to run at the start of every hydration attempt with
// the state as it was before hydrating.
func (p *Persisted[S]) OnHydrate(fn func(S)) (unsubscribe func()) {
	return p.addHook(&p.onHydrate, fn)
}

// OnFinishHydration registers fn to run after a successful restore with the
// restored state.
func (p *Persisted[S]) OnFinishHydration(fn func(S)) (unsubscribe func()) {
	return p.addHook(&p.onFinish, fn)
}

// ClearStorage removes the slot. The in-memory state is left as it is, so the
// next change writes the slot again.
func (p *Persisted[S]) ClearStorage(ctx context.Context) error {
	if err := p.storage.RemoveItem(ctx, p.opts.Name); err != nil {
		return fmt.Errorf("clearing slot %s: %w", p.opts.Name, err)
	}
	return nil
}

// Rehydrate reads the slot and merges the stored data fields onto the current
// state. Fields absent from the stored document keep their current values.
// Calling it again re-reads the slot.
func (p *Persisted[S]) Rehydrate(ctx context.Context) Outcome {
	ctx, span := otel.GetTracerProvider().Tracer("persist").Start(ctx, "persist.Rehydrate",
		trace.WithAttributes(attribute.String("store", p.opts.Name)),
	)
	defer span.End()

	p.runHooks(&p.onHydrate, p.store.State())

	outcome, err := p.hydrate(ctx)
	switch outcome {
	case Restored, Empty:
		p.logger.DebugContext(ctx, "hydration finished",
			slog.String("operation", "persist.Rehydrate"),
			slog.String("outcome", outcome.String()),
		)
	default:
		p.logger.WarnContext(ctx, "discarded persisted state",
			slog.String("operation", "persist.Rehydrate"),
			slog.Any("error", err),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(attribute.String("outcome", outcome.String()))
	p.opts.Metrics.RecordHydrate(ctx, p.opts.Name, outcome.String())

	p.mu.Lock()
	p.hydrated = true
	p.mu.Unlock()

	if outcome == Restored {
		p.runHooks(&p.onFinish, p.store.State())
	}
	return outcome
}

func (p *Persisted[S]) hydrate(ctx context.Context) (Outcome, error) {
	raw, err := p.storage.GetItem(ctx, p.opts.Name)
	if errors.Is(err, domain.ErrNotFound) {
		return Empty, nil
	}
	if err != nil {
		return Discarded, fmt.Errorf("reading slot: %w", err)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Discarded, fmt.Errorf("decoding envelope: %w", err)
	}
	if len(env.State) == 0 || bytes.Equal(env.State, []byte("null")) {
		return Discarded, errors.New("envelope has no state")
	}

	data := env.State
	if env.Version != p.opts.Version {
		if p.opts.Migrate == nil {
			return Discarded, fmt.Errorf("stored version %d does not match %d and no migration is configured",
				env.Version, p.opts.Version)
		}
		data, err = p.opts.Migrate(env.State, env.Version)
		if err != nil {
			return Discarded, fmt.Errorf("migrating from version %d: %w", env.Version, err)
		}
	}

	var decoded S
	if err := json.Unmarshal(data, &decoded); err != nil {
		return Discarded, fmt.Errorf("decoding stored state: %w", err)
	}

	var merged S
	var mergeErr error
	p.store.Set(func(current S) S {
		merged, mergeErr = merge(current, data)
		if mergeErr != nil {
			return current
		}
		return merged
	})
	if mergeErr != nil {
		return Discarded, fmt.Errorf("merging stored state: %w", mergeErr)
	}
	return Restored, nil
}

// merge overlays the top-level fields of data onto current and decodes the
// result into a fresh S. Fields present in data replace the current value
// whole; collections are never merged element-wise.
func merge[S any](current S, data json.RawMessage) (S, error) {
	base, err := json.Marshal(current)
	if err != nil {
		return current, fmt.Errorf("encoding current state: %w", err)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &fields); err != nil {
		return current, fmt.Errorf("splitting current state: %w", err)
	}
	var stored map[string]json.RawMessage
	if err := json.Unmarshal(data, &stored); err != nil {
		return current, fmt.Errorf("stored state is not an object: %w", err)
	}
	maps.Copy(fields, stored)

	joined, err := json.Marshal(fields)
	if err != nil {
		return current, fmt.Errorf("encoding merged state: %w", err)
	}
	var out S
	if err := json.Unmarshal(joined, &out); err != nil {
		return current, fmt.Errorf("decoding merged state: %w", err)
	}
	return out, nil
}

func (p *Persisted[S]) write(next S) {
	ctx, cancel := context.WithTimeout(context.Background(), p.opts.WriteTimeout)
	defer cancel()

	start := time.Now()
	err := p.writeSlot(ctx, next)
	p.opts.Metrics.RecordPersist(ctx, p.opts.Name, start, err)
	if err != nil {
		p.logger.WarnContext(ctx, "failed to mirror store state",
			slog.String("operation", "persist.write"),
			slog.Any("error", err),
		)
	}
}

func (p *Persisted[S]) writeSlot(ctx context.Context, next S) error {
	value, err := p.Encode(next)
	if err != nil {
		return err
	}
	if err := p.storage.SetItem(ctx, p.opts.Name, value); err != nil {
		return fmt.Errorf("writing slot: %w", err)
	}
	return nil
}

// Encode returns the envelope bytes that would be stored for s.
func (p *Persisted[S]) Encode(s S) ([]byte, error) {
	var data any = s
	if p.opts.Partialize != nil {
		data = p.opts.Partialize(s)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	value, err := json.Marshal(Envelope{State: raw, Version: p.opts.Version})
	if err != nil {
		return nil, fmt.Errorf("encoding envelope: %w", err)
	}
	return value, nil
}

func (p *Persisted[S]) addHook(list *[]hook[S], fn func(S)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextHookID++
	id := p.nextHookID
	*list = append(*list, hook[S]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			*list = slices.DeleteFunc(*list, func(h hook[S]) bool { return h.id == id })
		})
	}
}

func (p *Persisted[S]) runHooks(list *[]hook[S], s S) {
	p.mu.Lock()
	hooks := slices.Clone(*list)
	p.mu.Unlock()

	for _, h := range hooks {
		h.fn(s)
	}
}
