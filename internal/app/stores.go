package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen11/boardstate/internal/persist"
	"github.com/jsamuelsen11/boardstate/internal/ports"
)

var _ ports.HealthChecker = (*Stores)(nil)

// Stores bundles the three domain stores that share one storage backend.
type Stores struct {
	Tasks    *TaskStore
	Users    *UserStore
	Products *ProductStore

	logger *slog.Logger

	hydrateOnce sync.Once
	outcomes    map[string]persist.Outcome
	hydrateErr  error
}

// hydrator is the persistence surface Hydrate needs from each store.
type hydrator interface {
	Name() string
	Rehydrate(ctx context.Context) persist.Outcome
}

// NewStores builds every store with its default state. No storage I/O
// happens until Hydrate.
func NewStores(storage ports.DurableStorage, logger *slog.Logger, opts ...Option) *Stores {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Stores{
		Tasks:    NewTaskStore(storage, opts...),
		Users:    NewUserStore(storage, opts...),
		Products: NewProductStore(storage, opts...),
		logger:   logger,
	}
}

// Hydrate restores every store from its slot, concurrently. Only the first
// call does any work; later calls return the first call's outcomes keyed by
// store name. The error is non-nil only if ctx ended before hydration could
// start.
func (s *Stores) Hydrate(ctx context.Context) (map[string]persist.Outcome, error) {
	s.hydrateOnce.Do(func() {
		s.outcomes, s.hydrateErr = s.hydrateAll(ctx)
	})
	return s.outcomes, s.hydrateErr
}

func (s *Stores) hydrateAll(ctx context.Context) (map[string]persist.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	targets := []hydrator{s.Tasks, s.Users, s.Products}
	results := make([]persist.Outcome, len(targets))

	// A discarded slot never stops the other stores from loading.
	var g errgroup.Group
	for i, h := range targets {
		g.Go(func() error {
			results[i] = h.Rehydrate(ctx)
			return nil
		})
	}
	_ = g.Wait()

	outcomes := make(map[string]persist.Outcome, len(targets))
	for i, h := range targets {
		outcomes[h.Name()] = results[i]
		s.logger.InfoContext(ctx, "store hydrated",
			slog.String("store", h.Name()),
			slog.String("outcome", results[i].String()),
		)
	}
	return outcomes, nil
}

// Hydrated reports whether every store has finished a hydration attempt.
func (s *Stores) Hydrated() bool {
	return s.Tasks.HasHydrated() && s.Users.HasHydrated() && s.Products.HasHydrated()
}

// Name implements ports.HealthChecker.
func (s *Stores) Name() string {
	return "stores"
}

// HealthCheck reports the stores as not ready until they have been hydrated.
func (s *Stores) HealthCheck(_ context.Context) error {
	if !s.Hydrated() {
		return errors.New("stores: not hydrated")
	}
	return nil
}
