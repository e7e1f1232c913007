package session

import (
	"context"
	"net/http"
	"sync"

	"github.com/dmitrymomot/httpkit/pkg/logger"
)

// Middleware opens a session for every request and stores it in the request
// context. Right before the first byte of the response is written the
// session is saved and its cookie is added to the response headers. Handlers
// that never write get the same treatment when they return. Data put into
// the session after the response has started is not persisted.
//
// When the session cannot be opened the request proceeds without one.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := m.Open(r.Context(), r)
		if err != nil {
			m.logger.WarnContext(r.Context(), "session unavailable",
				logger.Path(r.URL.Path),
				logger.Error(err),
			)
			next.ServeHTTP(w, r)
			return
		}

		ctx := WithSession(r.Context(), s)
		hw := &hookWriter{ResponseWriter: w}
		hw.before = func() { m.commit(ctx, w.Header(), s) }
		defer hw.fire()

		next.ServeHTTP(hw, r.WithContext(ctx))
	})
}

// commit saves s and appends its cookie to h.
func (m *Manager) commit(ctx context.Context, h http.Header, s *Session) {
	if err := s.Save(ctx); err != nil {
		m.logger.ErrorContext(ctx, "failed to save session",
			logger.SessionName(s.Name()),
			logger.Error(err),
		)
	}
	c, err := m.Cookie(s)
	if err != nil {
		m.logger.ErrorContext(ctx, "failed to build session cookie", logger.Error(err))
		return
	}
	h.Add("Set-Cookie", c.String())
}

// hookWriter runs before once, ahead of the first WriteHeader or Write.
type hookWriter struct {
	http.ResponseWriter
	before func()
	once   sync.Once
}

func (w *hookWriter) fire() {
	w.once.Do(w.before)
}

func (w *hookWriter) WriteHeader(code int) {
	w.fire()
	w.ResponseWriter.WriteHeader(code)
}

func (w *hookWriter) Write(b []byte) (int, error) {
	w.fire()
	return w.ResponseWriter.Write(b)
}

func (w *hookWriter) Flush() {
	w.fire()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *hookWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
