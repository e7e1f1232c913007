package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httpkit/pkg/cookie"
	"github.com/dmitrymomot/httpkit/pkg/logger"
	"github.com/dmitrymomot/httpkit/pkg/session"
)

func newTestRouter(t *testing.T, backend string) (http.Handler, *miniredis.Miniredis) {
	t.Helper()

	cfg := session.DefaultConfig()
	cfg.CleanupInterval = 0
	cfg.Backend = backend

	var (
		mr     *miniredis.Miniredis
		client goredis.UniversalClient
	)
	if backend == session.BackendRedis {
		mr = miniredis.RunT(t)
		c := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = c.Close() })
		client = c
	}

	sessions, err := session.NewFromConfig(cfg, client)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sessions.Close() })

	return newRouter(routerDeps{
		log:      logger.NewNope(),
		sessions: sessions,
		cookies:  cookie.DefaultConfig(),
		redis:    client,
	}), mr
}

func get(t *testing.T, h http.Handler, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRoutes_Home(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t, session.BackendMemory)
	rec := get(t, h, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=UTF-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Hello, 192.0.2.1.")
	assert.NotEmpty(t, rec.Header().Get("Cache-Control"))
}

func TestRoutes_JSON(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t, session.BackendMemory)
	rec := get(t, h, "/json?b=2&a=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=UTF-8", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "GET", body["method"])
	assert.Equal(t, "/json", body["path"])
	assert.Equal(t, map[string]any{"a": "1", "b": "2"}, body["query"])
}

func TestRoutes_Redirect(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t, session.BackendMemory)

	tests := []struct {
		name string
		to   string
		want string
	}{
		{name: "local path", to: "/json", want: "/json"},
		{name: "local path with query", to: "/json%3Fa%3D1", want: "/json?a=1"},
		{name: "absolute url", to: "https://evil.example", want: "/"},
		{name: "protocol relative", to: "//evil.example", want: "/"},
		{name: "backslash host", to: "/%5Cevil.example", want: "/"},
		{name: "relative path", to: "json", want: "/"},
		{name: "empty", to: "", want: "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, "/redirect?to="+tt.to)
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Location"))
		})
	}
}

func TestRoutes_CounterAndLogout(t *testing.T) {
	t.Parallel()

	for _, backend := range []string{session.BackendMemory, session.BackendRedis} {
		t.Run(backend, func(t *testing.T) {
			t.Parallel()

			h, _ := newTestRouter(t, backend)

			rec := get(t, h, "/counter")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "visits: 1", rec.Body.String())
			sid := findCookie(rec, session.DefaultName)
			require.NotNil(t, sid)
			last := findCookie(rec, lastVisitCookie)
			require.NotNil(t, last)
			assert.NotEmpty(t, last.Value)

			rec = get(t, h, "/counter", sid)
			assert.Equal(t, "visits: 2", rec.Body.String())

			rec = get(t, h, "/logout", sid)
			assert.Equal(t, http.StatusFound, rec.Code)
			expired := findCookie(rec, lastVisitCookie)
			require.NotNil(t, expired)
			assert.Equal(t, cookie.DeletedValue, expired.Value)
			assert.Negative(t, expired.MaxAge)
			assert.True(t, slices.ContainsFunc(rec.Header().Values("Set-Cookie"), func(v string) bool {
				return strings.HasPrefix(v, lastVisitCookie+"=") && strings.Contains(v, "Max-Age=0")
			}))

			rec = get(t, h, "/counter", sid)
			assert.Equal(t, "visits: 1", rec.Body.String())
		})
	}
}

func TestRoutes_Stats(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t, session.BackendRedis)
	get(t, h, "/counter")
	get(t, h, "/counter")

	rec := get(t, h, "/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "redis", body["backend"])
	assert.Equal(t, float64(2), body["sessions"])
}

func TestRoutes_Health(t *testing.T) {
	t.Parallel()

	h, mr := newTestRouter(t, session.BackendRedis)
	assert.Equal(t, "ALIVE", get(t, h, "/healthz").Body.String())
	assert.Equal(t, "READY", get(t, h, "/readyz").Body.String())

	mr.Close()
	rec := get(t, h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
