package session_test

import (
	"context"
	"errors"
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httpkit/pkg/errkind"
	"github.com/dmitrymomot/httpkit/pkg/session"
)

func newSession(t *testing.T) (*session.Session, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore(0, 0)
	t.Cleanup(func() { _ = store.Close() })
	return session.New(session.NewNativeStorage(store)), store
}

func TestSession_Lifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, store := newSession(t)

	assert.False(t, s.IsStarted())
	assert.Empty(t, s.ID())
	assert.Equal(t, session.DefaultName, s.Name())

	require.True(t, s.Start(ctx))
	assert.True(t, s.IsStarted())
	assert.NotEmpty(t, s.ID())
	assert.True(t, store.Locked(s.ID()))

	require.NoError(t, s.Put("user", "alice"))
	require.NoError(t, s.Save(ctx))
	assert.False(t, s.IsStarted())
	assert.False(t, store.Locked(s.ID()))

	id := s.ID()
	again := session.New(session.NewNativeStorage(store))
	require.NoError(t, again.SetID(id))
	require.True(t, again.Start(ctx))
	t.Cleanup(func() { _ = again.Close() })

	v, err := again.Get("user")
	require.NoError(t, err)
	assert.Equal(t, "alice", v)
}

func TestSession_Inactive(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)

	_, err := s.Get("a")
	assert.ErrorIs(t, err, session.ErrInactive)
	assert.True(t, errkind.Is(err, errkind.ErrRuntime))

	assert.ErrorIs(t, s.Put("a", 1), session.ErrInactive)
	assert.ErrorIs(t, s.Forget("a"), session.ErrInactive)

	_, err = s.Has("a")
	assert.ErrorIs(t, err, session.ErrInactive)
	_, err = s.All()
	assert.ErrorIs(t, err, session.ErrInactive)
	_, err = s.Count()
	assert.ErrorIs(t, err, session.ErrInactive)
	_, err = s.IsEmpty()
	assert.ErrorIs(t, err, session.ErrInactive)
	_, err = s.Iter()
	assert.ErrorIs(t, err, session.ErrInactive)
	_, err = s.Pull("a")
	assert.ErrorIs(t, err, session.ErrInactive)

	// Save and Clear are no-ops while inactive.
	assert.NoError(t, s.Save(context.Background()))
	s.Clear()
	assert.NoError(t, s.Close())
}

func TestSession_ActiveIdentity(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	require.NoError(t, s.SetName("custom"))
	require.NoError(t, s.SetID("preset"))
	assert.Equal(t, "custom", s.Name())
	assert.Equal(t, "preset", s.ID())

	require.True(t, s.Start(context.Background()))
	t.Cleanup(func() { _ = s.Close() })

	err := s.SetID("other")
	assert.ErrorIs(t, err, session.ErrActive)
	assert.True(t, errkind.Is(err, errkind.ErrLogic))
	assert.ErrorIs(t, s.SetName("other"), session.ErrActive)
	assert.Equal(t, "preset", s.ID())
	assert.Equal(t, "custom", s.Name())
}

func TestSession_DataAccess(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	require.True(t, s.Start(context.Background()))
	t.Cleanup(func() { _ = s.Close() })

	empty, err := s.IsEmpty()
	require.NoError(t, err)
	assert.True(t, empty)

	require.NoError(t, s.Put("b", 2))
	require.NoError(t, s.Put("a", 1))
	require.NoError(t, s.Put("c", nil))

	t.Run("get missing is nil", func(t *testing.T) {
		v, err := s.Get("missing")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("lookup distinguishes nil values", func(t *testing.T) {
		v, ok, err := s.Lookup("c")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Nil(t, v)
	})

	t.Run("defaults", func(t *testing.T) {
		v, err := s.GetOr("missing", "def")
		require.NoError(t, err)
		assert.Equal(t, "def", v)

		v, err = s.GetOrElse("missing", func(k string) any { return k + "!" })
		require.NoError(t, err)
		assert.Equal(t, "missing!", v)

		v, err = s.GetOr("a", "def")
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	})

	t.Run("has requires all keys", func(t *testing.T) {
		ok, err := s.Has("a", "b")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.Has("a", "missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("iteration keeps insertion order", func(t *testing.T) {
		seq, err := s.Iter()
		require.NoError(t, err)

		var keys []string
		for k := range seq {
			keys = append(keys, k)
		}
		assert.Equal(t, []string{"b", "a", "c"}, keys)
	})

	t.Run("all returns a copy", func(t *testing.T) {
		all, err := s.All()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, slices.Sorted(maps.Keys(all)))

		all["x"] = 1
		ok, err := s.Has("x")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestSession_PullForgetClear(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	require.True(t, s.Start(context.Background()))
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Put("flash", "saved"))
	require.NoError(t, s.Put("a", 1))
	require.NoError(t, s.Put("b", 2))

	v, err := s.Pull("flash")
	require.NoError(t, err)
	assert.Equal(t, "saved", v)

	ok, err := s.Has("flash")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Forget("a"))
	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	s.Clear()
	assert.True(t, s.IsStarted())
	n, err = s.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestValue(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)

	_, err := session.Value[int](s, "n")
	assert.ErrorIs(t, err, session.ErrInactive)

	require.True(t, s.Start(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Put("n", 42))

	n, err := session.Value[int](s, "n")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	missing, err := session.Value[string](s, "missing")
	require.NoError(t, err)
	assert.Empty(t, missing)

	_, err = session.Value[string](s, "n")
	assert.ErrorIs(t, err, session.ErrTypeMismatch)
}

func TestSession_Close(t *testing.T) {
	t.Parallel()

	s, store := newSession(t)
	require.True(t, s.Start(context.Background()))
	require.NoError(t, s.Put("k", "v"))

	require.NoError(t, s.Close())
	assert.False(t, s.IsStarted())
	assert.False(t, store.Locked(s.ID()))

	data, ok := store.Load(s.ID())
	require.True(t, ok)
	v, _ := data.Get("k")
	assert.Equal(t, "v", v)
}

func TestSession_CloseReportsSaveError(t *testing.T) {
	t.Parallel()

	storage := &failingStorage{}
	s := session.New(storage)
	require.True(t, s.Start(context.Background()))

	err := s.Close()
	assert.ErrorIs(t, err, errSaveFailed)
}

func TestSession_Cookie(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	require.NoError(t, s.SetID("abc"))

	c, err := s.Cookie()
	require.NoError(t, err)
	assert.Equal(t, session.DefaultName, c.Name())
	v, ok := c.Value()
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
	assert.Equal(t, "sid=abc; path=/; httponly; samesite=lax", c.String())
}

func TestNew_NilStorage(t *testing.T) {
	t.Parallel()

	s := session.New(nil)
	_, ok := s.Storage().(*session.NativeStorage)
	assert.True(t, ok)
}

var errSaveFailed = errors.New("save failed")

type failingStorage struct {
	started bool
	data    *session.Data
}

func (f *failingStorage) Start(context.Context) bool {
	f.started = true
	return true
}

func (f *failingStorage) IsStarted() bool { return f.started }
func (f *failingStorage) ID() string      { return "id" }
func (f *failingStorage) SetID(string)    {}
func (f *failingStorage) Name() string    { return "name" }
func (f *failingStorage) SetName(string)  {}

func (f *failingStorage) Save(context.Context) error {
	f.started = false
	return errSaveFailed
}

func (f *failingStorage) Clear() {}

func (f *failingStorage) Collection() *session.Data {
	if f.data == nil {
		f.data = session.NewData()
	}
	return f.data
}
