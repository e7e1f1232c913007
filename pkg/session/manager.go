package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/httpkit/pkg/cookie"
	"github.com/dmitrymomot/httpkit/pkg/logger"
)

// StorageFactory returns a fresh Storage for one request.
type StorageFactory func() Storage

// Manager opens one session per request and issues its cookie.
type Manager struct {
	cfg        Config
	factory    StorageFactory
	logger     *slog.Logger
	cookieOpts []cookie.Option
	closers    []io.Closer
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithManagerLogger sets the logger for the manager and the sessions it opens.
func WithManagerLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithCookieOptions adds options applied to every session cookie after the
// ones derived from the config.
func WithCookieOptions(opts ...cookie.Option) ManagerOption {
	return func(m *Manager) {
		m.cookieOpts = append(m.cookieOpts, opts...)
	}
}

// WithConfig replaces the manager config.
func WithConfig(cfg Config) ManagerOption {
	return func(m *Manager) {
		m.cfg = cfg
	}
}

// NewManager creates a manager building storages with factory.
func NewManager(factory StorageFactory, opts ...ManagerOption) *Manager {
	m := &Manager{
		cfg:     DefaultConfig(),
		factory: factory,
		logger:  logger.NewNope(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewFromConfig creates a manager for cfg.Backend. The redis backend needs
// client; the other backends ignore it.
func NewFromConfig(cfg Config, client redis.UniversalClient, opts ...ManagerOption) (*Manager, error) {
	m := NewManager(nil, append([]ManagerOption{WithConfig(cfg)}, opts...)...)

	storageOpts := []StorageOption{
		WithName(cfg.Name),
		WithStrictIDs(cfg.StrictIDs),
		WithStorageLogger(m.logger),
	}

	switch cfg.Backend {
	case BackendMemory, "":
		store := NewMemoryStore(cfg.TTL, cfg.CleanupInterval)
		m.closers = append(m.closers, store)
		m.factory = func() Storage {
			return NewNativeStorage(store, storageOpts...)
		}
	case BackendRedis:
		if client == nil {
			return nil, errors.Join(ErrUnknownBackend, errors.New("redis backend requires a client"))
		}
		rc := RedisConfig{Prefix: cfg.RedisPrefix, TTL: cfg.TTL, LockTTL: cfg.LockTTL}
		m.factory = func() Storage {
			return NewRedisStorage(client, rc, storageOpts...)
		}
	case BackendCookie:
		if _, err := NewCookieStorage(cfg.Secret, cfg.TTL); err != nil {
			return nil, err
		}
		m.factory = func() Storage {
			s, _ := NewCookieStorage(cfg.Secret, cfg.TTL, storageOpts...)
			return s
		}
	default:
		return nil, ErrUnknownBackend
	}
	return m, nil
}

// Config returns the manager config.
func (m *Manager) Config() Config { return m.cfg }

// Open starts the session identified by the request cookie, or a new one.
// Waiting for a locked session is bounded by Config.LockTimeout.
func (m *Manager) Open(ctx context.Context, r *http.Request) (*Session, error) {
	s := New(m.factory(), WithLogger(m.logger))
	if name := m.cfg.Name; name != "" {
		if err := s.SetName(name); err != nil {
			return nil, err
		}
	}
	if c, err := r.Cookie(s.Name()); err == nil && c.Value != "" {
		if err := s.SetID(c.Value); err != nil {
			return nil, err
		}
	}

	if m.cfg.LockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.LockTimeout)
		defer cancel()
	}
	if !s.Start(ctx) {
		return nil, ErrStartFailed
	}
	return s, nil
}

// Cookie builds the cookie carrying the session id.
func (m *Manager) Cookie(s *Session) (*cookie.Cookie, error) {
	opts := []cookie.Option{
		cookie.WithPath(m.cfg.CookiePath),
		cookie.WithDomain(m.cfg.CookieDomain),
		cookie.WithSecure(m.cfg.CookieSecure),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(m.cfg.CookieSameSite),
	}
	if m.cfg.TTL > 0 {
		opts = append(opts, cookie.WithDuration(int64(m.cfg.TTL.Seconds())))
	}
	return s.Cookie(append(opts, m.cookieOpts...)...)
}

// Close releases resources owned by the manager, such as the janitor of
// the in-memory store.
func (m *Manager) Close() error {
	var errs []error
	for _, c := range m.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
