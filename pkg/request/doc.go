// Package request exposes the decoded inputs of an incoming HTTP request as
// six ordered key/value groups and derives a few values from them.
//
// The groups mirror what a transport layer hands to an application:
//
//	Query       query string parameters
//	Body        decoded form/body fields
//	Attributes  routing or framework attributes (route params)
//	Cookies     cookies received from the client
//	Files       uploaded file descriptors
//	Server      server and environment variables (REQUEST_URI, HTTP_HOST, ...)
//
// Path, URL and BaseURL are computed once on first access and cached.
//
// A Request can be built from already decoded maps with New, or adapted from
// net/http with FromHTTP:
//
//	req, err := request.FromHTTP(r, request.WithAttributes(map[string]any{
//		"id": chi.URLParam(r, "id"),
//	}))
package request
