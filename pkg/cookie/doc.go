// Package cookie models a single HTTP cookie and serializes it into the value
// of a Set-Cookie response header.
//
// A Cookie without a value expresses the intent to delete the cookie on the
// client: it is emitted with the value "deleted", an expiry one year in the
// past and Max-Age=0.
//
// # Usage
//
//	import "github.com/dmitrymomot/httpkit/pkg/cookie"
//
//	c, err := cookie.New("theme",
//		cookie.WithValue("dark mode"),
//		cookie.WithExpire("+1 week"),
//		cookie.WithSecure(true),
//	)
//	if err != nil {
//		return err
//	}
//	header := c.String()
//	// theme=dark%20mode; expires=...; Max-Age=604800; path=/; secure; httponly; samesite=lax
//
// # Expiration
//
// Expiry values are resolved to Unix seconds by ExpireTimestamp. It accepts
// integers, numeric strings, time.Time values and free-form date strings.
// Absolute dates ("2030-01-02 15:04:05", "Mon, 02 Jan 2030 15:04:05 GMT") are
// parsed as UTC. Relative English expressions ("tomorrow", "in 2 hours",
// "next friday") are resolved against the current time.
//
// # Configuration
//
// Default attributes can be loaded from the environment into Config and
// applied with NewFromConfig:
//
//	COOKIE_PATH=/
//	COOKIE_DOMAIN=
//	COOKIE_SECURE=false
//	COOKIE_HTTP_ONLY=true
//	COOKIE_SAME_SITE=lax
//	COOKIE_PARTITIONED=false
//
// # Errors
//
// All failures are invalid-argument errors (see package errkind):
// ErrEmptyName, ErrInvalidExpire and ErrInvalidSameSite.
package cookie
