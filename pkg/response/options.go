package response

import (
	"slices"

	"github.com/dmitrymomot/httpkit/pkg/cookie"
)

type header struct {
	name  string
	value string
}

type options struct {
	headers []header
	cookies []*cookie.Cookie
	version string
	charset string
}

// Option configures a response during construction.
type Option func(*options)

// WithHeader adds a header applied before the default headers, which
// overwrite it when the names match.
func WithHeader(name, value string) Option {
	return func(o *options) {
		o.headers = append(o.headers, header{name: name, value: value})
	}
}

// WithHeaders adds several headers, ordered by name.
func WithHeaders(headers map[string]string) Option {
	return func(o *options) {
		names := make([]string, 0, len(headers))
		for name := range headers {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			o.headers = append(o.headers, header{name: name, value: headers[name]})
		}
	}
}

// WithCookie attaches a cookie.
func WithCookie(c *cookie.Cookie) Option {
	return func(o *options) {
		if c != nil {
			o.cookies = append(o.cookies, c)
		}
	}
}

// WithProtocolVersion sets the protocol version of the status line.
func WithProtocolVersion(version string) Option {
	return func(o *options) {
		o.version = version
	}
}

// WithCharset sets the charset used by the default Content-Type header.
func WithCharset(charset string) Option {
	return func(o *options) {
		o.charset = charset
	}
}
