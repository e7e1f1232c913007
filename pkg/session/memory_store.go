package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrymomot/httpkit/pkg/collection"
)

type memoryEntry struct {
	data      *Data
	expiresAt time.Time
}

// MemoryStore keeps session data in process memory and grants one holder
// per session id at a time. Stored data is copied on load and on save.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	locks   map[string]chan struct{}
	ttl     time.Duration
	ticker  *time.Ticker
	done    chan struct{}
	closed  sync.Once
}

// NewMemoryStore creates a store. Entries idle for longer than ttl expire;
// zero ttl keeps them forever. A positive cleanupInterval starts a janitor
// that drops expired entries; stop it with Close.
func NewMemoryStore(ttl, cleanupInterval time.Duration) *MemoryStore {
	m := &MemoryStore{
		entries: make(map[string]memoryEntry),
		locks:   make(map[string]chan struct{}),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	if cleanupInterval > 0 {
		m.ticker = time.NewTicker(cleanupInterval)
		go m.cleanupLoop()
	}
	return m
}

var (
	defaultStore     *MemoryStore
	defaultStoreOnce sync.Once
)

// DefaultStore returns the process-wide store used by native storage.
// Entries expire after 24 idle hours.
func DefaultStore() *MemoryStore {
	defaultStoreOnce.Do(func() {
		defaultStore = NewMemoryStore(24*time.Hour, 10*time.Minute)
	})
	return defaultStore
}

// Acquire takes the lock of id, waiting for the current holder to release it.
func (m *MemoryStore) Acquire(ctx context.Context, id string) error {
	for {
		m.mu.Lock()
		held, busy := m.locks[id]
		if !busy {
			m.locks[id] = make(chan struct{})
			m.mu.Unlock()
			return nil
		}
		m.mu.Unlock()

		select {
		case <-held:
		case <-ctx.Done():
			return errors.Join(ErrLocked, ctx.Err())
		}
	}
}

// Release frees the lock of id. Releasing an unlocked id does nothing.
func (m *MemoryStore) Release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ch, ok := m.locks[id]; ok {
		delete(m.locks, id)
		close(ch)
	}
}

// Locked reports whether id is held.
func (m *MemoryStore) Locked(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.locks[id]
	return ok
}

// Load returns a copy of the data stored under id.
func (m *MemoryStore) Load(id string) (*Data, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, false
	}
	if m.expired(e, time.Now()) {
		delete(m.entries, id)
		return nil, false
	}
	return e.data.Clone(), true
}

// Exists reports whether unexpired data is stored under id.
func (m *MemoryStore) Exists(id string) bool {
	_, ok := m.Load(id)
	return ok
}

// Store saves a copy of data under id and renews its expiry.
func (m *MemoryStore) Store(id string, data *Data) {
	e := memoryEntry{data: data.Clone()}
	if m.ttl > 0 {
		e.expiresAt = time.Now().Add(m.ttl)
	}

	m.mu.Lock()
	m.entries[id] = e
	m.mu.Unlock()
}

// Destroy removes the data stored under id.
func (m *MemoryStore) Destroy(id string) {
	m.mu.Lock()
	delete(m.entries, id)
	m.mu.Unlock()
}

// DeleteExpired drops every expired entry.
func (m *MemoryStore) DeleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for id, e := range m.entries {
		if m.expired(e, now) {
			delete(m.entries, id)
		}
	}
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Close stops the janitor.
func (m *MemoryStore) Close() error {
	m.closed.Do(func() {
		if m.ticker != nil {
			m.ticker.Stop()
		}
		close(m.done)
	})
	return nil
}

func (m *MemoryStore) expired(e memoryEntry, now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

func (m *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			m.DeleteExpired()
		case <-m.done:
			return
		}
	}
}

// NewData returns an empty session data collection.
func NewData() *Data {
	return collection.New[string, any]()
}
