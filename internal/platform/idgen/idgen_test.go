package idgen_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/boardstate/internal/platform/idgen"
)

func TestNew_IsUUIDv4(t *testing.T) {
	t.Parallel()

	id := idgen.New()

	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("uuid.Parse(%q) error = %v", id, err)
	}
	if parsed.Version() != 4 {
		t.Errorf("Version() = %d, want 4", parsed.Version())
	}
}

func TestNew_PairwiseDistinct(t *testing.T) {
	t.Parallel()

	const n = 1000
	seen := make(map[string]struct{}, n)
	for range n {
		id := idgen.New()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q after %d calls", id, len(seen))
		}
		seen[id] = struct{}{}
	}
}

func TestSequence(t *testing.T) {
	t.Parallel()

	next := idgen.Sequence("t")

	for _, want := range []string{"t-1", "t-2", "t-3"} {
		if got := next(); got != want {
			t.Errorf("next() = %q, want %q", got, want)
		}
	}
}
