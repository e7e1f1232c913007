package session

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/httpkit/pkg/logger"
)

// DefaultName is the session name used when none is set.
const DefaultName = "sid"

// StorageOption configures the storages shipped with this package.
type StorageOption func(*storageOptions)

type storageOptions struct {
	name   string
	strict bool
	logger *slog.Logger
}

func newStorageOptions(opts []StorageOption) storageOptions {
	o := storageOptions{name: DefaultName, logger: logger.NewNope()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithName sets the initial session name.
func WithName(name string) StorageOption {
	return func(o *storageOptions) {
		if name != "" {
			o.name = name
		}
	}
}

// WithStrictIDs makes Start replace a preset id that is unknown to the store
// with a fresh one, so clients cannot choose their own session ids.
func WithStrictIDs(strict bool) StorageOption {
	return func(o *storageOptions) {
		o.strict = strict
	}
}

// WithStorageLogger sets the logger used to report backend failures.
func WithStorageLogger(l *slog.Logger) StorageOption {
	return func(o *storageOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NativeStorage is a Storage backed by a MemoryStore. While started it holds
// the lock of its id, so concurrent sessions with one id run one at a time.
type NativeStorage struct {
	store   *MemoryStore
	opts    storageOptions
	id      string
	name    string
	started bool
	data    *Data
}

// NewNativeStorage creates a storage bound to store, or DefaultStore when nil.
func NewNativeStorage(store *MemoryStore, opts ...StorageOption) *NativeStorage {
	if store == nil {
		store = DefaultStore()
	}
	o := newStorageOptions(opts)
	return &NativeStorage{store: store, opts: o, name: o.name}
}

// Start locks the id and loads its data. It returns false when ctx is done
// before the lock is granted.
func (s *NativeStorage) Start(ctx context.Context) bool {
	if s.started {
		return true
	}
	if s.id == "" || (s.opts.strict && !s.store.Exists(s.id)) {
		s.id = uuid.NewString()
	}
	if err := s.store.Acquire(ctx, s.id); err != nil {
		s.opts.logger.WarnContext(ctx, "session start failed",
			logger.Backend("memory"),
			logger.SessionID(s.id),
			logger.Error(err),
		)
		return false
	}

	data, ok := s.store.Load(s.id)
	if !ok {
		data = NewData()
	}
	s.data = data
	s.started = true
	return true
}

func (s *NativeStorage) IsStarted() bool { return s.started }

func (s *NativeStorage) ID() string { return s.id }

func (s *NativeStorage) SetID(id string) { s.id = id }

func (s *NativeStorage) Name() string { return s.name }

func (s *NativeStorage) SetName(name string) { s.name = name }

// Save writes the data back and releases the lock.
func (s *NativeStorage) Save(context.Context) error {
	if !s.started {
		return nil
	}
	s.store.Store(s.id, s.data)
	s.store.Release(s.id)
	s.started = false
	return nil
}

// Destroy deletes the stored data of the current id.
func (s *NativeStorage) Destroy(context.Context) error {
	if s.id != "" {
		s.store.Destroy(s.id)
	}
	return nil
}

func (s *NativeStorage) Clear() {
	s.Collection().Clear()
}

func (s *NativeStorage) Collection() *Data {
	if s.data == nil {
		s.data = NewData()
	}
	return s.data
}
