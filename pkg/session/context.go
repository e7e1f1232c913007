package session

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/httpkit/pkg/logger"
)

type sessionContextKey struct{}

// WithSession adds a session to the context.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// FromContext retrieves a session from the context.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(*Session)
	return s, ok
}

// MustFromContext retrieves a session from the context or panics.
func MustFromContext(ctx context.Context) *Session {
	s, ok := FromContext(ctx)
	if !ok {
		panic("session: not found in context")
	}
	return s
}

// LoggerExtractor adds the id of the active session found in the context to
// log records. Cookie-carried sessions are skipped since their id is the
// sealed payload.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		s, ok := FromContext(ctx)
		if !ok || s.ID() == "" || !s.IsStarted() {
			return slog.Attr{}, false
		}
		if _, sealed := s.Storage().(*CookieStorage); sealed {
			return slog.Attr{}, false
		}
		return logger.SessionID(s.ID()), true
	}
}
