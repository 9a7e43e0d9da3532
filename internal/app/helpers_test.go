package app_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/boardstate/internal/adapters/storage/memory"
	"github.com/jsamuelsen11/boardstate/internal/persist"
)

func strPtr(s string) *string { return &s }

func float64Ptr(f float64) *float64 { return &f }

// slotState decodes the state part of the envelope stored under key.
func slotState(t *testing.T, storage *memory.Storage, key string, into any) {
	t.Helper()
	raw, err := storage.GetItem(context.Background(), key)
	require.NoError(t, err)

	var env persist.Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	require.NoError(t, json.Unmarshal(env.State, into))
}
