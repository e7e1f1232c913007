// Package session implements server-side sessions as a facade over a
// swappable storage backend.
//
// # Lifecycle
//
// A Session is inactive until Start succeeds and active until Save:
//
//	inactive --Start--> active --Save--> inactive
//	                      |
//	                    Clear (stays active)
//
// Data access (Get, Put, Has, Forget, All, Count, IsEmpty, Iter) fails with
// ErrInactive unless the session is active; the check runs on every call.
// The id and name can only change while inactive, otherwise ErrActive is
// returned. ErrInactive is a runtime error and ErrActive a logic error in
// terms of package errkind.
//
// Nothing is saved implicitly. Defer Close right after a successful Start:
//
//	s := session.New(session.NewNativeStorage(nil))
//	if !s.Start(ctx) {
//		return session.ErrStartFailed
//	}
//	defer s.Close()
//
//	_ = s.Put("cart", 3)
//
// # Backends
//
//	┌─────────┐        ┌─────────────────┐
//	│ Session │ ─────► │ Storage         │
//	└─────────┘        ├─────────────────┤
//	                   │ NativeStorage   │ ─► MemoryStore (process wide)
//	                   │ RedisStorage    │ ─► Redis, SET NX lock per id
//	                   │ CookieStorage   │ ─► sealed into the cookie value
//	                   └─────────────────┘
//
// NativeStorage and RedisStorage hold an exclusive lock on the session id
// between Start and Save, so concurrent requests carrying the same id are
// served one after another. CookieStorage keeps no server state.
//
// Values read back from RedisStorage and CookieStorage went through JSON:
// numbers are float64 and structs become map[string]any.
//
// # HTTP
//
// Manager.Middleware opens a session per request from the session cookie,
// exposes it through FromContext, then saves it and sets the cookie right
// before the response is written. Manager and its backend are configured
// from Config:
//
//	SESSION_NAME=sid
//	SESSION_BACKEND=memory         # memory | redis | cookie
//	SESSION_TTL=24h
//	SESSION_CLEANUP_INTERVAL=10m
//	SESSION_STRICT_IDS=true
//	SESSION_LOCK_TIMEOUT=5s
//	SESSION_LOCK_TTL=30s
//	SESSION_REDIS_PREFIX=session:
//	SESSION_SECRET=                # cookie backend, 32+ bytes
//	SESSION_COOKIE_PATH=/
//	SESSION_COOKIE_DOMAIN=
//	SESSION_COOKIE_SECURE=false
//	SESSION_COOKIE_SAME_SITE=lax
package session
