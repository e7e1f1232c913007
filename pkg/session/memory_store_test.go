package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httpkit/pkg/session"
)

func TestMemoryStore_Lock(t *testing.T) {
	t.Parallel()

	t.Run("second holder waits for release", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0, 0)
		t.Cleanup(func() { _ = store.Close() })
		ctx := context.Background()

		require.NoError(t, store.Acquire(ctx, "id"))

		acquired := make(chan struct{})
		go func() {
			if err := store.Acquire(ctx, "id"); err == nil {
				close(acquired)
			}
		}()

		select {
		case <-acquired:
			t.Fatal("lock granted while held")
		case <-time.After(50 * time.Millisecond):
		}

		store.Release("id")
		select {
		case <-acquired:
		case <-time.After(time.Second):
			t.Fatal("lock not granted after release")
		}
		assert.True(t, store.Locked("id"))
	})

	t.Run("context bounds the wait", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0, 0)
		t.Cleanup(func() { _ = store.Close() })

		require.NoError(t, store.Acquire(context.Background(), "id"))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		err := store.Acquire(ctx, "id")
		assert.ErrorIs(t, err, session.ErrLocked)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("different ids do not block", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0, 0)
		t.Cleanup(func() { _ = store.Close() })

		require.NoError(t, store.Acquire(context.Background(), "a"))
		require.NoError(t, store.Acquire(context.Background(), "b"))
	})

	t.Run("release of unlocked id is a no-op", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0, 0)
		t.Cleanup(func() { _ = store.Close() })

		store.Release("nope")
		assert.False(t, store.Locked("nope"))
	})
}

func TestMemoryStore_CopiesData(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(0, 0)
	t.Cleanup(func() { _ = store.Close() })

	data := session.NewData()
	data.Put("k", "v")
	store.Store("id", data)

	data.Put("k", "changed")
	loaded, ok := store.Load("id")
	require.True(t, ok)
	v, _ := loaded.Get("k")
	assert.Equal(t, "v", v)

	loaded.Put("k", "changed again")
	again, _ := store.Load("id")
	v, _ = again.Get("k")
	assert.Equal(t, "v", v)
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(20*time.Millisecond, 0)
	t.Cleanup(func() { _ = store.Close() })

	store.Store("id", session.NewData())
	assert.True(t, store.Exists("id"))

	time.Sleep(40 * time.Millisecond)
	assert.False(t, store.Exists("id"))
	_, ok := store.Load("id")
	assert.False(t, ok)
}

func TestMemoryStore_DeleteExpired(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(20*time.Millisecond, 0)
	t.Cleanup(func() { _ = store.Close() })

	store.Store("a", session.NewData())
	store.Store("b", session.NewData())
	assert.Equal(t, 2, store.Len())

	time.Sleep(40 * time.Millisecond)
	store.DeleteExpired()
	assert.Zero(t, store.Len())
}

func TestMemoryStore_Janitor(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(10*time.Millisecond, 10*time.Millisecond)
	t.Cleanup(func() { _ = store.Close() })

	store.Store("id", session.NewData())
	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 10*time.Millisecond)

	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}

func TestMemoryStore_Destroy(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(0, 0)
	t.Cleanup(func() { _ = store.Close() })

	store.Store("id", session.NewData())
	store.Destroy("id")
	assert.False(t, store.Exists("id"))
}

func TestDefaultStore(t *testing.T) {
	t.Parallel()

	assert.Same(t, session.DefaultStore(), session.DefaultStore())
}
