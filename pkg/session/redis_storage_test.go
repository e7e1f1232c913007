package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httpkit/pkg/session"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, redis.UniversalClient) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStorage_RoundTrip(t *testing.T) {
	t.Parallel()

	mr, client := newRedis(t)
	ctx := context.Background()
	cfg := session.RedisConfig{Prefix: "s:", TTL: time.Hour}

	s := session.New(session.NewRedisStorage(client, cfg))
	require.True(t, s.Start(ctx))
	id := s.ID()
	require.NotEmpty(t, id)
	assert.True(t, mr.Exists("s:"+id+":lock"))

	require.NoError(t, s.Put("name", "alice"))
	require.NoError(t, s.Put("n", 3))
	require.NoError(t, s.Save(ctx))

	assert.False(t, mr.Exists("s:"+id+":lock"))
	assert.True(t, mr.Exists("s:"+id))
	assert.Equal(t, time.Hour, mr.TTL("s:"+id))

	again := session.New(session.NewRedisStorage(client, cfg))
	require.NoError(t, again.SetID(id))
	require.True(t, again.Start(ctx))
	t.Cleanup(func() { _ = again.Close() })

	name, err := session.Value[string](again, "name")
	require.NoError(t, err)
	assert.Equal(t, "alice", name)

	n, err := session.Value[float64](again, "n")
	require.NoError(t, err)
	assert.Equal(t, float64(3), n)

	seq, err := again.Iter()
	require.NoError(t, err)
	var keys []string
	for k := range seq {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"name", "n"}, keys)
}

func TestRedisStorage_Lock(t *testing.T) {
	t.Parallel()

	_, client := newRedis(t)
	cfg := session.RedisConfig{LockRetry: 5 * time.Millisecond}

	first := session.NewRedisStorage(client, cfg)
	first.SetID("shared")
	require.True(t, first.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	second := session.NewRedisStorage(client, cfg)
	second.SetID("shared")
	assert.False(t, second.Start(ctx))

	require.NoError(t, first.Save(context.Background()))
	require.True(t, second.Start(context.Background()))
	require.NoError(t, second.Save(context.Background()))
}

func TestRedisStorage_StrictIDs(t *testing.T) {
	t.Parallel()

	mr, client := newRedis(t)
	ctx := context.Background()

	s := session.NewRedisStorage(client, session.RedisConfig{}, session.WithStrictIDs(true))
	s.SetID("forged")
	require.True(t, s.Start(ctx))
	assert.NotEqual(t, "forged", s.ID())
	require.NoError(t, s.Save(ctx))
	assert.False(t, mr.Exists("session:forged"))
}

func TestRedisStorage_CorruptData(t *testing.T) {
	t.Parallel()

	mr, client := newRedis(t)
	require.NoError(t, mr.Set("session:bad", "not json"))

	s := session.New(session.NewRedisStorage(client, session.RedisConfig{}))
	require.NoError(t, s.SetID("bad"))
	require.True(t, s.Start(context.Background()))
	t.Cleanup(func() { _ = s.Close() })

	empty, err := s.IsEmpty()
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestRedisStorage_Unavailable(t *testing.T) {
	t.Parallel()

	mr, client := newRedis(t)
	mr.Close()

	s := session.NewRedisStorage(client, session.RedisConfig{})
	assert.False(t, s.Start(context.Background()))
	assert.False(t, s.IsStarted())
}

func TestRedisStorage_Destroy(t *testing.T) {
	t.Parallel()

	mr, client := newRedis(t)
	ctx := context.Background()

	s := session.NewRedisStorage(client, session.RedisConfig{})
	require.True(t, s.Start(ctx))
	require.NoError(t, s.Save(ctx))
	require.True(t, mr.Exists("session:"+s.ID()))

	require.NoError(t, s.Destroy(ctx))
	assert.False(t, mr.Exists("session:"+s.ID()))
}
