// Package storagetest holds the behavioural contract every DurableStorage
// backend must satisfy. Backend packages call Run from their own tests.
package storagetest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/boardstate/internal/domain"
	"github.com/jsamuelsen11/boardstate/internal/ports"
)

// Run exercises newStorage against the slot contract. newStorage must return
// a fresh, empty backend on every call.
func Run(t *testing.T, newStorage func(t *testing.T) ports.DurableStorage) {
	t.Helper()

	t.Run("absent slot is not found", func(t *testing.T) {
		s := newStorage(t)

		_, err := s.GetItem(context.Background(), "task-store")

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound), "GetItem error = %v, want ErrNotFound", err)
	})

	t.Run("set then get", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()
		want := []byte(`{"state":{"tasks":[]},"version":0}`)

		require.NoError(t, s.SetItem(ctx, "task-store", want))

		got, err := s.GetItem(ctx, "task-store")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("set overwrites", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		require.NoError(t, s.SetItem(ctx, "user-store", []byte(`{"v":1}`)))
		require.NoError(t, s.SetItem(ctx, "user-store", []byte(`{"v":2}`)))

		got, err := s.GetItem(ctx, "user-store")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"v":2}`), got)
	})

	t.Run("slots are independent", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		require.NoError(t, s.SetItem(ctx, "task-store", []byte(`"a"`)))
		require.NoError(t, s.SetItem(ctx, "product-store", []byte(`"b"`)))
		require.NoError(t, s.RemoveItem(ctx, "task-store"))

		got, err := s.GetItem(ctx, "product-store")
		require.NoError(t, err)
		assert.Equal(t, []byte(`"b"`), got)
	})

	t.Run("remove then get is not found", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		require.NoError(t, s.SetItem(ctx, "product-store", []byte(`{}`)))
		require.NoError(t, s.RemoveItem(ctx, "product-store"))

		_, err := s.GetItem(ctx, "product-store")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("remove absent slot is not an error", func(t *testing.T) {
		s := newStorage(t)

		assert.NoError(t, s.RemoveItem(context.Background(), "missing"))
	})

	t.Run("returned bytes are not shared", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()
		value := []byte(`{"n":1}`)

		require.NoError(t, s.SetItem(ctx, "task-store", value))
		value[2] = 'X'

		got, err := s.GetItem(ctx, "task-store")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"n":1}`), got)
	})

	t.Run("concurrent writers", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		var wg sync.WaitGroup
		for range 20 {
			wg.Go(func() {
				assert.NoError(t, s.SetItem(ctx, "task-store", []byte(`{}`)))
				_, _ = s.GetItem(ctx, "task-store")
			})
		}
		wg.Wait()

		got, err := s.GetItem(ctx, "task-store")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{}`), got)
	})
}
