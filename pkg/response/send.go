package response

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Renderer writes itself to an http.ResponseWriter.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

var _ Renderer = (*Response)(nil)

// Send writes the status line, headers, cookies and body to w.
func (r *Response) Send(w io.Writer) error {
	if err := r.SendHeaders(w); err != nil {
		return err
	}
	return r.SendContent(w)
}

// SendHeaders writes the status line, every header in insertion order, one
// Set-Cookie line per attached cookie and the terminating blank line.
func (r *Response) SendHeaders(w io.Writer) error {
	now := time.Now()

	var b strings.Builder
	b.WriteString("HTTP/")
	b.WriteString(r.version)
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(r.statusCode))
	b.WriteByte(' ')
	b.WriteString(r.statusText)
	b.WriteString("\r\n")

	for name, value := range r.headers.All() {
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\r\n")
	}
	for _, c := range r.headers.cookies {
		b.WriteString("Set-Cookie: ")
		b.WriteString(c.Serialize(now))
		b.WriteString("\r\n")
	}
	b.WriteString("\r\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

// SendContent writes the body to w.
func (r *Response) SendContent(w io.Writer) error {
	body, err := r.Body()
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	if _, err := w.Write(body); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

// Render writes the response through net/http. Headers keep their order of
// insertion, cookies are added as Set-Cookie values in attachment order.
// net/http always uses its own reason phrase and protocol version.
// Informational 1xx statuses are refused with ErrInterimStatus because
// net/http treats them as interim and would still send a final 200.
func (r *Response) Render(w http.ResponseWriter, _ *http.Request) error {
	if r.IsInformational() {
		return ErrInterimStatus
	}
	body, err := r.Body()
	if err != nil {
		return err
	}

	now := time.Now()
	h := w.Header()
	for name, value := range r.headers.All() {
		h.Set(name, value)
	}
	for _, c := range r.headers.cookies {
		h.Add("Set-Cookie", c.Serialize(now))
	}

	w.WriteHeader(r.statusCode)
	if len(body) == 0 {
		return nil
	}
	if _, err := w.Write(body); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

// HandlerFunc is an http.Handler built from a function returning a response.
type HandlerFunc func(r *http.Request) (Renderer, error)

// ErrorHandler renders errors returned by a HandlerFunc.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// DefaultErrorHandler answers with a plain 500 response.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, _ error) {
	resp, _ := New(StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	resp.Headers().Put("Content-Type", "text/plain; charset="+DefaultCharset)
	_ = resp.Render(w, r)
}

// Handle adapts fn to http.Handler. Errors returned by fn or by rendering are
// passed to onError, which defaults to DefaultErrorHandler.
func Handle(fn HandlerFunc, onError ErrorHandler) http.Handler {
	if onError == nil {
		onError = DefaultErrorHandler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp, err := fn(r)
		if err == nil && resp == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err == nil {
			err = resp.Render(w, r)
		}
		if err != nil {
			onError(w, r, err)
		}
	})
}
