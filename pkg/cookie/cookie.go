package cookie

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// SameSite policies accepted by SetSameSite.
const (
	SameSiteLax    = "lax"
	SameSiteStrict = "strict"
	SameSiteNone   = "none"
)

// DeletedValue is emitted in place of the value of a cookie without value.
const DeletedValue = "deleted"

// deletionAge is how far in the past the expiry of a deletion cookie lies.
const deletionAge = 31536001 * time.Second

var nameReplacer = strings.NewReplacer(
	"=", "%3D",
	",", "%2C",
	";", "%3B",
	" ", "%20",
	"\t", "%09",
	"\r", "%0D",
	"\n", "%0A",
	"\v", "%0B",
	"\f", "%0C",
)

// Cookie is a single HTTP cookie.
// The zero value is not usable, construct cookies with New.
type Cookie struct {
	name        string
	value       string
	hasValue    bool
	expire      int64
	path        string
	domain      string
	secure      bool
	httpOnly    bool
	sameSite    string
	partitioned bool
}

// New creates a cookie named name. Without options the cookie has no value,
// session lifetime, path "/", is HttpOnly and uses SameSite=lax.
func New(name string, opts ...Option) (*Cookie, error) {
	c := &Cookie{
		path:     "/",
		httpOnly: true,
		sameSite: SameSiteLax,
	}
	if err := c.SetName(name); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustNew is like New but panics on error.
func MustNew(name string, opts ...Option) *Cookie {
	c, err := New(name, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// SetName renames the cookie. The name must not be empty.
func (c *Cookie) SetName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	c.name = name
	return nil
}

func (c *Cookie) Name() string { return c.name }

// SetValue sets the value. The empty string is a value, use ClearValue to
// mark the cookie for deletion.
func (c *Cookie) SetValue(value string) {
	c.value = value
	c.hasValue = true
}

// ClearValue removes the value so the cookie deletes itself on the client.
func (c *Cookie) ClearValue() {
	c.value = ""
	c.hasValue = false
}

// Value returns the value and whether one is set.
func (c *Cookie) Value() (string, bool) {
	return c.value, c.hasValue
}

func (c *Cookie) HasValue() bool { return c.hasValue }

// SetExpire resolves expire with ExpireTimestamp and stores the result.
// The current expiry is kept on error.
func (c *Cookie) SetExpire(expire any) error {
	ts, err := ExpireTimestamp(expire)
	if err != nil {
		return err
	}
	c.expire = ts
	return nil
}

// Expire returns the expiry as Unix seconds. Zero means session lifetime.
func (c *Cookie) Expire() int64 { return c.expire }

// SetDuration sets the expiry to now plus seconds.
func (c *Cookie) SetDuration(seconds int64) {
	c.expire = max(time.Now().Unix()+seconds, 0)
}

// Duration returns the seconds left until expiry, never negative.
func (c *Cookie) Duration() int64 {
	return c.durationAt(time.Now())
}

func (c *Cookie) durationAt(now time.Time) int64 {
	return max(0, c.expire-now.Unix())
}

// SetPath sets the path. An empty path resets it to "/".
func (c *Cookie) SetPath(path string) {
	if path == "" {
		path = "/"
	}
	c.path = path
}

func (c *Cookie) Path() string { return c.path }

// SetDomain sets the domain. An empty domain removes the attribute.
func (c *Cookie) SetDomain(domain string) { c.domain = domain }

func (c *Cookie) Domain() string { return c.domain }

func (c *Cookie) HasDomain() bool { return c.domain != "" }

func (c *Cookie) SetSecure(secure bool) { c.secure = secure }

func (c *Cookie) Secure() bool { return c.secure }

func (c *Cookie) SetHTTPOnly(httpOnly bool) { c.httpOnly = httpOnly }

func (c *Cookie) HTTPOnly() bool { return c.httpOnly }

// SetSameSite sets the SameSite policy, case-insensitively.
// An empty string removes the attribute. Values other than lax, strict and
// none fail with ErrInvalidSameSite and leave the cookie unchanged.
func (c *Cookie) SetSameSite(sameSite string) error {
	sameSite = strings.ToLower(sameSite)
	switch sameSite {
	case "", SameSiteLax, SameSiteStrict, SameSiteNone:
		c.sameSite = sameSite
		return nil
	default:
		return ErrInvalidSameSite
	}
}

func (c *Cookie) SameSite() string { return c.sameSite }

func (c *Cookie) HasSameSite() bool { return c.sameSite != "" }

func (c *Cookie) SetPartitioned(partitioned bool) { c.partitioned = partitioned }

func (c *Cookie) Partitioned() bool { return c.partitioned }

// String returns the Set-Cookie header value for the cookie.
func (c *Cookie) String() string {
	return c.Serialize(time.Now())
}

// Serialize returns the Set-Cookie header value using now as the current time.
func (c *Cookie) Serialize(now time.Time) string {
	segments := make([]string, 0, 9)

	value := DeletedValue
	if c.hasValue {
		value = rawURLEncode(c.value)
	}
	segments = append(segments, nameReplacer.Replace(c.name)+"="+value)

	if c.hasValue {
		if c.expire != 0 {
			segments = append(segments,
				"expires="+time.Unix(c.expire, 0).UTC().Format(http.TimeFormat),
				"Max-Age="+strconv.FormatInt(c.durationAt(now), 10),
			)
		}
	} else {
		segments = append(segments,
			"expires="+now.Add(-deletionAge).UTC().Format(http.TimeFormat),
			"Max-Age=0",
		)
	}

	segments = append(segments, "path="+c.path)
	if c.domain != "" {
		segments = append(segments, "domain="+c.domain)
	}
	if c.secure {
		segments = append(segments, "secure")
	}
	if c.httpOnly {
		segments = append(segments, "httponly")
	}
	if c.sameSite != "" {
		segments = append(segments, "samesite="+c.sameSite)
	}
	if c.partitioned {
		segments = append(segments, "partitioned")
	}

	return strings.Join(segments, "; ")
}

// Clone returns an independent copy of the cookie.
func (c *Cookie) Clone() *Cookie {
	cp := *c
	return &cp
}

const upperhex = "0123456789ABCDEF"

// rawURLEncode percent-encodes every byte outside the RFC 3986 unreserved set.
func rawURLEncode(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !isUnreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if isUnreserved(ch) {
			b.WriteByte(ch)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[ch>>4])
		b.WriteByte(upperhex[ch&15])
	}
	return b.String()
}

func isUnreserved(ch byte) bool {
	switch {
	case 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z', '0' <= ch && ch <= '9':
		return true
	case ch == '-', ch == '_', ch == '.', ch == '~':
		return true
	}
	return false
}
