package session

import (
	"context"
	"iter"
	"log/slog"

	"github.com/dmitrymomot/httpkit/pkg/collection"
	"github.com/dmitrymomot/httpkit/pkg/cookie"
	"github.com/dmitrymomot/httpkit/pkg/logger"
)

// Session is a facade over a Storage with an explicit lifecycle: inactive
// until Start succeeds, active until Save. Data access requires an active
// session and is checked on every call.
//
// There is no implicit flush. Call Close (usually deferred) to save a
// session that is still active; data put into a session that is neither
// saved nor closed is lost.
type Session struct {
	storage Storage
	logger  *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used to report failures in Close.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// New wraps storage. A nil storage selects a native storage bound to DefaultStore.
func New(storage Storage, opts ...Option) *Session {
	if storage == nil {
		storage = NewNativeStorage(DefaultStore())
	}
	s := &Session{storage: storage, logger: logger.NewNope()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Storage returns the wrapped backend.
func (s *Session) Storage() Storage { return s.storage }

// Start opens the session and reports whether the backend succeeded.
func (s *Session) Start(ctx context.Context) bool {
	return s.storage.Start(ctx)
}

func (s *Session) IsStarted() bool { return s.storage.IsStarted() }

// SetID presets the session id. Fails with ErrActive while started.
func (s *Session) SetID(id string) error {
	if s.storage.IsStarted() {
		return ErrActive
	}
	s.storage.SetID(id)
	return nil
}

func (s *Session) ID() string { return s.storage.ID() }

// SetName sets the session name. Fails with ErrActive while started.
func (s *Session) SetName(name string) error {
	if s.storage.IsStarted() {
		return ErrActive
	}
	s.storage.SetName(name)
	return nil
}

func (s *Session) Name() string { return s.storage.Name() }

// Save persists and closes an active session. It does nothing when inactive.
func (s *Session) Save(ctx context.Context) error {
	if !s.storage.IsStarted() {
		return nil
	}
	return s.storage.Save(ctx)
}

// Clear empties an active session. It does nothing when inactive.
func (s *Session) Clear() {
	if s.storage.IsStarted() {
		s.storage.Clear()
	}
}

// Close saves the session if it is still active. Errors are logged and returned.
func (s *Session) Close() error {
	if !s.storage.IsStarted() {
		return nil
	}
	if err := s.storage.Save(context.Background()); err != nil {
		s.logger.Error("failed to save session on close",
			logger.SessionName(s.storage.Name()),
			logger.Error(err),
		)
		return err
	}
	return nil
}

func (s *Session) data() (*collection.Collection[string, any], error) {
	if !s.storage.IsStarted() {
		return nil, ErrInactive
	}
	return s.storage.Collection(), nil
}

// Get returns the value stored under key, or nil when it is missing.
func (s *Session) Get(key string) (any, error) {
	d, err := s.data()
	if err != nil {
		return nil, err
	}
	v, _ := d.Get(key)
	return v, nil
}

// Lookup returns the value stored under key and whether it exists.
func (s *Session) Lookup(key string) (any, bool, error) {
	d, err := s.data()
	if err != nil {
		return nil, false, err
	}
	v, ok := d.Get(key)
	return v, ok, nil
}

// GetOr returns the value stored under key or def.
func (s *Session) GetOr(key string, def any) (any, error) {
	d, err := s.data()
	if err != nil {
		return nil, err
	}
	return d.GetOr(key, def), nil
}

// GetOrElse returns the value stored under key or the result of factory.
func (s *Session) GetOrElse(key string, factory func(string) any) (any, error) {
	d, err := s.data()
	if err != nil {
		return nil, err
	}
	return d.GetOrElse(key, factory), nil
}

func (s *Session) Put(key string, value any) error {
	d, err := s.data()
	if err != nil {
		return err
	}
	d.Put(key, value)
	return nil
}

// Has reports whether all keys are present.
func (s *Session) Has(keys ...string) (bool, error) {
	d, err := s.data()
	if err != nil {
		return false, err
	}
	return d.Has(keys...), nil
}

func (s *Session) Forget(keys ...string) error {
	d, err := s.data()
	if err != nil {
		return err
	}
	d.Forget(keys...)
	return nil
}

// All returns a copy of the session data.
func (s *Session) All() (map[string]any, error) {
	d, err := s.data()
	if err != nil {
		return nil, err
	}
	return d.Map(), nil
}

func (s *Session) Count() (int, error) {
	d, err := s.data()
	if err != nil {
		return 0, err
	}
	return d.Count(), nil
}

func (s *Session) IsEmpty() (bool, error) {
	d, err := s.data()
	if err != nil {
		return false, err
	}
	return d.IsEmpty(), nil
}

// Iter iterates over a snapshot of the data in insertion order.
func (s *Session) Iter() (iter.Seq2[string, any], error) {
	d, err := s.data()
	if err != nil {
		return nil, err
	}
	return d.Clone().All(), nil
}

// Pull returns the value stored under key and removes it.
func (s *Session) Pull(key string) (any, error) {
	d, err := s.data()
	if err != nil {
		return nil, err
	}
	v, _ := d.Get(key)
	d.Forget(key)
	return v, nil
}

// Cookie returns a cookie named after the session carrying its id.
// Options are applied after the name and value.
func (s *Session) Cookie(opts ...cookie.Option) (*cookie.Cookie, error) {
	return cookie.New(s.storage.Name(), append([]cookie.Option{cookie.WithValue(s.storage.ID())}, opts...)...)
}

// Value returns the value stored under key converted to T. A missing key
// yields the zero value of T.
func Value[T any](s *Session, key string) (T, error) {
	var zero T
	v, ok, err := s.Lookup(key)
	if err != nil || !ok {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, ErrTypeMismatch
	}
	return typed, nil
}
