package state_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/boardstate/internal/state"
)

type counter struct {
	N     int
	Label string
	Items []string
}

func TestStore_StateReturnsInitial(t *testing.T) {
	t.Parallel()

	st := state.New(counter{N: 1, Label: "start"})

	assert.Equal(t, counter{N: 1, Label: "start"}, st.State())
}

func TestStore_SetPartialKeepsOtherFields(t *testing.T) {
	t.Parallel()

	st := state.New(counter{N: 1, Label: "keep"})

	st.Set(func(c counter) counter {
		c.N = 5
		return c
	})

	got := st.State()
	assert.Equal(t, 5, got.N)
	assert.Equal(t, "keep", got.Label)
}

func TestStore_Replace(t *testing.T) {
	t.Parallel()

	st := state.New(counter{N: 1, Label: "old"})

	st.Set(state.Replace(counter{N: 9}))

	assert.Equal(t, counter{N: 9}, st.State())
}

func TestStore_NilUpdateIsIgnored(t *testing.T) {
	t.Parallel()

	st := state.New(counter{N: 3})
	calls := 0
	st.Subscribe(func(_, _ counter) { calls++ })

	st.Set(nil)

	assert.Equal(t, 3, st.State().N)
	assert.Zero(t, calls)
}

func TestStore_SubscribeReceivesNextAndPrev(t *testing.T) {
	t.Parallel()

	st := state.New(counter{N: 1})

	var gotNext, gotPrev counter
	st.Subscribe(func(next, prev counter) {
		gotNext, gotPrev = next, prev
	})

	st.Set(func(c counter) counter { c.N++; return c })

	assert.Equal(t, 2, gotNext.N)
	assert.Equal(t, 1, gotPrev.N)
}

func TestStore_ListenersRunInRegistrationOrder(t *testing.T) {
	t.Parallel()

	st := state.New(counter{})
	var order []string
	st.Subscribe(func(_, _ counter) { order = append(order, "a") })
	st.Subscribe(func(_, _ counter) { order = append(order, "b") })
	st.Subscribe(func(_, _ counter) { order = append(order, "c") })

	st.Set(func(c counter) counter { return c })

	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestStore_Unsubscribe(t *testing.T) {
	t.Parallel()

	st := state.New(counter{})
	calls := 0
	unsubscribe := st.Subscribe(func(_, _ counter) { calls++ })

	st.Set(func(c counter) counter { c.N++; return c })
	unsubscribe()
	unsubscribe()
	st.Set(func(c counter) counter { c.N++; return c })

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, st.State().N)
}

func TestStore_ReentrantSetIsDeliveredAfterCurrent(t *testing.T) {
	t.Parallel()

	st := state.New(counter{})
	var seen []int

	st.Subscribe(func(next, _ counter) {
		seen = append(seen, next.N)
		if next.N == 1 {
			st.Set(func(c counter) counter { c.N = 2; return c })
			// The nested commit is visible immediately.
			assert.Equal(t, 2, st.State().N)
		}
	})

	st.Set(func(c counter) counter { c.N = 1; return c })

	assert.Equal(t, []int{1, 2}, seen)
	assert.Equal(t, 2, st.State().N)
}

func TestStore_ListenerPanicDoesNotWedgeStore(t *testing.T) {
	t.Parallel()

	st := state.New(counter{})
	explode := true
	st.Subscribe(func(_, _ counter) {
		if explode {
			panic("boom")
		}
	})

	require.Panics(t, func() {
		st.Set(func(c counter) counter { c.N = 1; return c })
	})

	explode = false
	calls := 0
	st.Subscribe(func(_, _ counter) { calls++ })
	st.Set(func(c counter) counter { c.N = 2; return c })

	assert.Equal(t, 2, st.State().N)
	assert.Equal(t, 1, calls)
}

func TestStore_PriorSnapshotsAreNotMutated(t *testing.T) {
	t.Parallel()

	st := state.New(counter{Items: []string{"a"}})
	before := st.State()

	st.Set(func(c counter) counter {
		c.Items = append(append(make([]string, 0, len(c.Items)+1), c.Items...), "b")
		return c
	})

	assert.Equal(t, []string{"a"}, before.Items)
	assert.Equal(t, []string{"a", "b"}, st.State().Items)
}

func TestStore_ConcurrentSetsAreAtomic(t *testing.T) {
	t.Parallel()

	st := state.New(counter{})

	var mu sync.Mutex
	notified := 0
	st.Subscribe(func(_, _ counter) {
		mu.Lock()
		notified++
		mu.Unlock()
	})

	const writers = 50
	var wg sync.WaitGroup
	for range writers {
		wg.Go(func() {
			st.Set(func(c counter) counter { c.N++; return c })
		})
	}
	wg.Wait()

	assert.Equal(t, writers, st.State().N)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, writers, notified)
}

func TestStore_QueuedSetReturnsBeforeDelivery(t *testing.T) {
	t.Parallel()

	st := state.New(counter{})

	entered := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	var seen []int
	st.Subscribe(func(next, _ counter) {
		mu.Lock()
		seen = append(seen, next.N)
		mu.Unlock()
		if next.N == 1 {
			close(entered)
			<-release
		}
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		st.Set(func(c counter) counter { c.N++; return c })
	}()
	<-entered

	st.Set(func(c counter) counter { c.N++; return c })

	assert.Equal(t, 2, st.State().N, "the commit is visible immediately")
	mu.Lock()
	assert.Equal(t, []int{1}, seen, "the queued change waits for the dispatcher")
	mu.Unlock()

	close(release)
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2}, seen)
}

func TestStore_ConcurrentSetsDeliverInCommitOrder(t *testing.T) {
	t.Parallel()

	st := state.New(counter{})

	var mu sync.Mutex
	var seen []int
	st.Subscribe(func(next, prev counter) {
		mu.Lock()
		defer mu.Unlock()
		if next.N != prev.N+1 {
			t.Errorf("change %d delivered with prev %d", next.N, prev.N)
		}
		seen = append(seen, next.N)
	})

	const writers = 50
	var wg sync.WaitGroup
	for range writers {
		wg.Go(func() {
			st.Set(func(c counter) counter { c.N++; return c })
		})
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, writers)
	for i, n := range seen {
		assert.Equal(t, i+1, n)
	}
}
