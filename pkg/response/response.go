package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"time"

	"golang.org/x/text/encoding/htmlindex"
)

const (
	DefaultProtocolVersion = "1.1"
	DefaultCharset         = "UTF-8"
)

// Flavor selects how the body of a response is produced.
type Flavor uint8

const (
	FlavorPlain Flavor = iota
	FlavorJSON
	FlavorRedirect
)

func (f Flavor) String() string {
	switch f {
	case FlavorJSON:
		return "json"
	case FlavorRedirect:
		return "redirect"
	default:
		return "plain"
	}
}

var redirectCodes = []int{201, 301, 302, 303, 307, 308}

// Response is an HTTP response value. It is not safe for concurrent use.
type Response struct {
	content    string
	statusCode int
	statusText string
	version    string
	charset    string
	headers    *HeaderMap
	flavor     Flavor
	data       map[string]any
}

// New creates a plain response. Fails with ErrInvalidStatusCode when status
// is outside [100, 600) and with ErrInvalidCharset for an unknown charset.
func New(content string, status int, opts ...Option) (*Response, error) {
	o := &options{
		version: DefaultProtocolVersion,
		charset: DefaultCharset,
	}
	for _, opt := range opts {
		opt(o)
	}

	r := &Response{
		content: content,
		version: o.version,
		headers: NewHeaderMap(),
	}
	if err := r.SetStatusCode(status); err != nil {
		return nil, err
	}
	if err := r.SetCharset(o.charset); err != nil {
		return nil, err
	}

	for _, h := range o.headers {
		r.headers.Put(h.name, h.value)
	}
	// Defaults win over caller headers of the same name; use Headers().Put
	// after construction to change them.
	r.headers.Put("Content-Type", "text/html; charset="+r.charset)
	r.headers.Put("Cache-Control", "no-cache, must-revalidate")
	r.headers.Put("Expires", time.Now().UTC().Format(http.TimeFormat))
	for _, c := range o.cookies {
		r.headers.SetCookie(c)
	}

	return r, nil
}

// NewJSON creates a response whose body is the JSON encoding of data.
// A nil map encodes as an empty object.
func NewJSON(data map[string]any, status int, opts ...Option) (*Response, error) {
	r, err := New("", status, opts...)
	if err != nil {
		return nil, err
	}
	r.flavor = FlavorJSON
	r.SetData(data)
	r.headers.Put("Content-Type", "application/json; charset="+r.charset)
	return r, nil
}

// NewRedirect creates a redirect to url. The url is stored as given, an
// empty url yields an empty Location header. Fails with ErrNotRedirect unless status is in [300, 400).
func NewRedirect(url string, status int, opts ...Option) (*Response, error) {
	r, err := New("", status, opts...)
	if err != nil {
		return nil, err
	}
	if !r.IsRedirection() {
		return nil, ErrNotRedirect
	}
	r.flavor = FlavorRedirect
	r.SetURL(url)
	return r, nil
}

// Redirect creates a 302 Found redirect to url.
func Redirect(url string, opts ...Option) (*Response, error) {
	return NewRedirect(url, http.StatusFound, opts...)
}

// SetContent sets the raw body of a plain response.
func (r *Response) SetContent(content string) { r.content = content }

func (r *Response) Content() string { return r.content }

// SetStatusCode sets the status code and its reason phrase. Without text the
// phrase comes from the status table. The response is unchanged on error.
func (r *Response) SetStatusCode(code int, text ...string) error {
	if !ValidStatusCode(code) {
		return ErrInvalidStatusCode
	}
	r.statusCode = code
	if len(text) > 0 {
		r.statusText = text[0]
	} else {
		r.statusText = StatusText(code)
	}
	return nil
}

func (r *Response) StatusCode() int { return r.statusCode }

func (r *Response) StatusText() string { return r.statusText }

func (r *Response) SetProtocolVersion(version string) { r.version = version }

func (r *Response) ProtocolVersion() string { return r.version }

// SetCharset sets the charset after checking it is a known encoding name.
// Headers that were already built from the previous charset are not updated.
func (r *Response) SetCharset(charset string) error {
	if _, err := htmlindex.Get(charset); err != nil {
		return errors.Join(ErrInvalidCharset, err)
	}
	r.charset = charset
	return nil
}

func (r *Response) Charset() string { return r.charset }

// Headers returns the live header map.
func (r *Response) Headers() *HeaderMap { return r.headers }

func (r *Response) Flavor() Flavor { return r.flavor }

// SetData replaces the data encoded by a JSON response.
func (r *Response) SetData(data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	r.data = data
}

func (r *Response) Data() map[string]any { return r.data }

// SetURL sets the Location header.
func (r *Response) SetURL(url string) { r.headers.Put("Location", url) }

// URL returns the Location header.
func (r *Response) URL() string { return r.headers.Get("Location") }

// Body returns the bytes written after the headers.
func (r *Response) Body() ([]byte, error) {
	switch r.flavor {
	case FlavorJSON:
		b, err := json.Marshal(r.data)
		if err != nil {
			return nil, errors.Join(ErrEncodingFailed, err)
		}
		return b, nil
	case FlavorRedirect:
		return nil, nil
	default:
		return []byte(r.content), nil
	}
}

func (r *Response) IsInvalid() bool { return !ValidStatusCode(r.statusCode) }

func (r *Response) IsInformational() bool { return r.statusCode >= 100 && r.statusCode < 200 }

func (r *Response) IsSuccessful() bool { return r.statusCode >= 200 && r.statusCode < 300 }

func (r *Response) IsRedirection() bool { return r.statusCode >= 300 && r.statusCode < 400 }

func (r *Response) IsClientError() bool { return r.statusCode >= 400 && r.statusCode < 500 }

func (r *Response) IsServerError() bool { return r.statusCode >= 500 && r.statusCode < 600 }

func (r *Response) IsOK() bool { return r.statusCode == http.StatusOK }

func (r *Response) IsForbidden() bool { return r.statusCode == http.StatusForbidden }

func (r *Response) IsNotFound() bool { return r.statusCode == http.StatusNotFound }

// IsRedirect reports whether the status is one of 201, 301, 302, 303, 307
// or 308. When url is given the Location header must also equal it.
func (r *Response) IsRedirect(url ...string) bool {
	if !slices.Contains(redirectCodes, r.statusCode) {
		return false
	}
	return len(url) == 0 || r.headers.Get("Location") == url[0]
}
