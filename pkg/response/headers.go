package response

import (
	"iter"
	"net/textproto"

	"github.com/dmitrymomot/httpkit/pkg/collection"
	"github.com/dmitrymomot/httpkit/pkg/cookie"
)

// HeaderMap is an ordered header collection plus the cookies attached to a response.
// Names are matched case-insensitively and stored in canonical form.
type HeaderMap struct {
	values  *collection.Collection[string, string]
	cookies []*cookie.Cookie
}

// NewHeaderMap creates an empty header map.
func NewHeaderMap() *HeaderMap {
	return &HeaderMap{values: collection.New[string, string]()}
}

// CanonicalName returns the form a header name is stored and emitted in.
func CanonicalName(name string) string {
	return textproto.CanonicalMIMEHeaderKey(name)
}

// Put sets a header, replacing an existing value in place.
func (h *HeaderMap) Put(name, value string) {
	h.values.Put(CanonicalName(name), value)
}

// Get returns the header value or an empty string.
func (h *HeaderMap) Get(name string) string {
	v, _ := h.values.Get(CanonicalName(name))
	return v
}

// Lookup returns the header value and whether it is set.
func (h *HeaderMap) Lookup(name string) (string, bool) {
	return h.values.Get(CanonicalName(name))
}

// GetOr returns the header value or def.
func (h *HeaderMap) GetOr(name, def string) string {
	return h.values.GetOr(CanonicalName(name), def)
}

// Has reports whether every named header is set.
func (h *HeaderMap) Has(names ...string) bool {
	for _, name := range names {
		if !h.values.Has(CanonicalName(name)) {
			return false
		}
	}
	return true
}

// Forget removes the named headers.
func (h *HeaderMap) Forget(names ...string) {
	for _, name := range names {
		h.values.Forget(CanonicalName(name))
	}
}

// All iterates over headers in insertion order. Cookies are not included.
func (h *HeaderMap) All() iter.Seq2[string, string] {
	return h.values.All()
}

// Len returns the number of headers.
func (h *HeaderMap) Len() int {
	return h.values.Count()
}

// SetCookie attaches a cookie. Cookies are never deduplicated.
func (h *HeaderMap) SetCookie(c *cookie.Cookie) {
	if c == nil {
		return
	}
	h.cookies = append(h.cookies, c)
}

// Cookies returns the attached cookies in attachment order.
func (h *HeaderMap) Cookies() []*cookie.Cookie {
	out := make([]*cookie.Cookie, len(h.cookies))
	copy(out, h.cookies)
	return out
}
