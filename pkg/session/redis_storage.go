package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/httpkit/pkg/logger"
)

// RedisConfig configures RedisStorage.
type RedisConfig struct {
	// Prefix is prepended to session ids to build data keys.
	Prefix string
	// TTL is the expiry of saved data. Zero keeps data forever.
	TTL time.Duration
	// LockTTL bounds how long a crashed holder can keep a session locked.
	LockTTL time.Duration
	// LockRetry is the polling interval while waiting for a lock.
	LockRetry time.Duration
}

// DefaultRedisConfig returns the settings used for zero fields.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Prefix:    "session:",
		TTL:       24 * time.Hour,
		LockTTL:   30 * time.Second,
		LockRetry: 10 * time.Millisecond,
	}
}

var releaseLockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisStorage is a Storage keeping session data in Redis. Holders of one id
// are serialized with a lock key set via SET NX, released on Save.
type RedisStorage struct {
	client    redis.UniversalClient
	cfg       RedisConfig
	opts      storageOptions
	id        string
	name      string
	started   bool
	data      *Data
	lockToken string
}

// NewRedisStorage creates a storage using client.
func NewRedisStorage(client redis.UniversalClient, cfg RedisConfig, opts ...StorageOption) *RedisStorage {
	def := DefaultRedisConfig()
	if cfg.Prefix == "" {
		cfg.Prefix = def.Prefix
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = def.LockTTL
	}
	if cfg.LockRetry <= 0 {
		cfg.LockRetry = def.LockRetry
	}
	o := newStorageOptions(opts)
	return &RedisStorage{client: client, cfg: cfg, opts: o, name: o.name}
}

func (s *RedisStorage) dataKey() string { return s.cfg.Prefix + s.id }

func (s *RedisStorage) lockKey() string { return s.cfg.Prefix + s.id + ":lock" }

// Start locks the id and loads its data. It returns false when Redis fails
// or ctx is done before the lock is granted. Undecodable data is dropped.
func (s *RedisStorage) Start(ctx context.Context) bool {
	if s.started {
		return true
	}
	if s.id != "" && s.opts.strict {
		n, err := s.client.Exists(ctx, s.dataKey()).Result()
		if err != nil {
			s.logFailure(ctx, "session start failed", err)
			return false
		}
		if n == 0 {
			s.id = ""
		}
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}

	if err := s.lock(ctx); err != nil {
		s.logFailure(ctx, "session start failed", err)
		return false
	}

	data := NewData()
	raw, err := s.client.Get(ctx, s.dataKey()).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		s.unlock(ctx)
		s.logFailure(ctx, "session start failed", err)
		return false
	default:
		decoded, derr := decodeData(raw)
		if derr != nil {
			s.logFailure(ctx, "session data dropped", derr)
		} else {
			data = decoded
		}
	}

	s.data = data
	s.started = true
	return true
}

func (s *RedisStorage) lock(ctx context.Context) error {
	token := uuid.NewString()
	for {
		ok, err := s.client.SetNX(ctx, s.lockKey(), token, s.cfg.LockTTL).Result()
		if err != nil {
			return errors.Join(ErrStoreUnavailable, err)
		}
		if ok {
			s.lockToken = token
			return nil
		}

		timer := time.NewTimer(s.cfg.LockRetry)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return errors.Join(ErrLocked, ctx.Err())
		}
	}
}

func (s *RedisStorage) unlock(ctx context.Context) {
	if s.lockToken == "" {
		return
	}
	if err := releaseLockScript.Run(context.WithoutCancel(ctx), s.client, []string{s.lockKey()}, s.lockToken).Err(); err != nil {
		s.logFailure(ctx, "session unlock failed", err)
	}
	s.lockToken = ""
}

func (s *RedisStorage) IsStarted() bool { return s.started }

func (s *RedisStorage) ID() string { return s.id }

func (s *RedisStorage) SetID(id string) { s.id = id }

func (s *RedisStorage) Name() string { return s.name }

func (s *RedisStorage) SetName(name string) { s.name = name }

// Save writes the data, releases the lock and closes the session. The
// session is closed even when the write fails.
func (s *RedisStorage) Save(ctx context.Context) error {
	if !s.started {
		return nil
	}
	defer func() {
		s.unlock(ctx)
		s.started = false
	}()

	payload, err := encodeData(s.data)
	if err != nil {
		return errors.Join(ErrInvalidPayload, err)
	}
	if err := s.client.Set(ctx, s.dataKey(), payload, s.cfg.TTL).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStorage) Clear() {
	s.Collection().Clear()
}

func (s *RedisStorage) Collection() *Data {
	if s.data == nil {
		s.data = NewData()
	}
	return s.data
}

// Destroy deletes the stored data of the current id.
func (s *RedisStorage) Destroy(ctx context.Context) error {
	if s.id == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.dataKey()).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStorage) logFailure(ctx context.Context, msg string, err error) {
	s.opts.logger.WarnContext(ctx, msg,
		logger.Backend("redis"),
		logger.SessionID(s.id),
		logger.Error(err),
	)
}
