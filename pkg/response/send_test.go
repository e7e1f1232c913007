package response_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httpkit/pkg/cookie"
	"github.com/dmitrymomot/httpkit/pkg/response"
)

func TestResponse_Send(t *testing.T) {
	t.Parallel()

	r, err := response.New("<p>hi</p>", http.StatusNotFound, response.WithHeader("X-Trace", "abc"))
	require.NoError(t, err)
	r.Headers().SetCookie(cookie.MustNew("a", cookie.WithValue("1")))
	r.Headers().SetCookie(cookie.MustNew("b"))

	var buf bytes.Buffer
	require.NoError(t, r.Send(&buf))

	head, body, found := strings.Cut(buf.String(), "\r\n\r\n")
	require.True(t, found)
	assert.Equal(t, "<p>hi</p>", body)

	lines := strings.Split(head, "\r\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "HTTP/1.1 404 Not Found", lines[0])
	assert.Equal(t, "X-Trace: abc", lines[1])
	assert.Equal(t, "Content-Type: text/html; charset=UTF-8", lines[2])
	assert.Equal(t, "Cache-Control: no-cache, must-revalidate", lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "Expires: "))
	assert.Equal(t, "Set-Cookie: a=1; path=/; httponly; samesite=lax", lines[5])
	assert.True(t, strings.HasPrefix(lines[6], "Set-Cookie: b=deleted; expires="))
}

func TestResponse_SendCustomStatusLine(t *testing.T) {
	t.Parallel()

	r, err := response.New("", 200, response.WithProtocolVersion("1.0"))
	require.NoError(t, err)
	require.NoError(t, r.SetStatusCode(299))

	var buf bytes.Buffer
	require.NoError(t, r.SendHeaders(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "HTTP/1.0 299 unknown status\r\n"))
}

func TestResponse_SendJSON(t *testing.T) {
	t.Parallel()

	r, err := response.NewJSON(map[string]any{"a": "b"}, 200)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.SendContent(&buf))
	assert.Equal(t, `{"a":"b"}`, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestResponse_SendWriteError(t *testing.T) {
	t.Parallel()

	r, err := response.New("x", 200)
	require.NoError(t, err)
	assert.ErrorIs(t, r.Send(failingWriter{}), response.ErrWriteFailed)
}

func TestResponse_Render(t *testing.T) {
	t.Parallel()

	r, err := response.NewRedirect("/next", http.StatusSeeOther, response.WithHeader("X-A", "1"))
	require.NoError(t, err)
	r.Headers().SetCookie(cookie.MustNew("a", cookie.WithValue("1")))
	r.Headers().SetCookie(cookie.MustNew("a", cookie.WithValue("2")))

	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

	res := rec.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/next", res.Header.Get("Location"))
	assert.Equal(t, "1", res.Header.Get("X-A"))
	assert.Equal(t, []string{
		"a=1; path=/; httponly; samesite=lax",
		"a=2; path=/; httponly; samesite=lax",
	}, res.Header.Values("Set-Cookie"))
	assert.Empty(t, rec.Body.String())
}

func TestResponse_RenderInformational(t *testing.T) {
	t.Parallel()

	for _, code := range []int{http.StatusContinue, http.StatusSwitchingProtocols, http.StatusEarlyHints, 199} {
		r, err := response.New("body", code)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		err = r.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, err, response.ErrInterimStatus)
		assert.False(t, rec.Flushed)
		assert.Empty(t, rec.Header())
		assert.Empty(t, rec.Body.String())
	}

	// Send has no interim semantics and writes the status line as is.
	r, err := response.New("", http.StatusContinue)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.SendHeaders(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "HTTP/1.1 100 Continue\r\n"))
}

func TestHandle(t *testing.T) {
	t.Parallel()

	t.Run("renders response", func(t *testing.T) {
		h := response.Handle(func(*http.Request) (response.Renderer, error) {
			return response.NewJSON(map[string]any{"ok": true}, http.StatusAccepted)
		}, nil)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	})

	t.Run("error uses error handler", func(t *testing.T) {
		var got error
		boom := errors.New("boom")
		h := response.Handle(func(*http.Request) (response.Renderer, error) {
			return nil, boom
		}, func(w http.ResponseWriter, r *http.Request, err error) {
			got = err
			response.DefaultErrorHandler(w, r, err)
		})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, got, boom)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal Server Error", rec.Body.String())
		assert.Equal(t, "text/plain; charset=UTF-8", rec.Header().Get("Content-Type"))
	})

	t.Run("informational status falls back to error handler", func(t *testing.T) {
		h := response.Handle(func(*http.Request) (response.Renderer, error) {
			return response.New("", http.StatusContinue)
		}, nil)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("nil response", func(t *testing.T) {
		h := response.Handle(func(*http.Request) (response.Renderer, error) {
			return nil, nil
		}, nil)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
