package request

import (
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrymomot/httpkit/pkg/collection"
)

// HTTP methods.
const (
	MethodHead    = "HEAD"
	MethodGet     = "GET"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodPatch   = "PATCH"
	MethodDelete  = "DELETE"
	MethodPurge   = "PURGE"
	MethodOptions = "OPTIONS"
	MethodTrace   = "TRACE"
	MethodConnect = "CONNECT"
)

// Server variable names read by the derived accessors.
const (
	ServerRequestURI    = "REQUEST_URI"
	ServerRequestMethod = "REQUEST_METHOD"
	ServerRequestScheme = "REQUEST_SCHEME"
	ServerRequestPort   = "REQUEST_PORT"
	ServerHTTPHost      = "HTTP_HOST"
	ServerRemoteAddr    = "REMOTE_ADDR"
	ServerProtocol      = "SERVER_PROTOCOL"
	ServerPort          = "SERVER_PORT"
)

const (
	defaultScheme = "http"
	defaultHost   = "localhost"
	defaultPort   = 80
	defaultIP     = "127.0.0.1"
)

// Group is a single input group.
type Group = collection.Collection[string, any]

// Input holds already decoded values for New. Nil maps give empty groups.
type Input struct {
	Query      map[string]any
	Body       map[string]any
	Attributes map[string]any
	Cookies    map[string]any
	Files      map[string]any
	Server     map[string]any
}

// Request is a read-only view of an incoming request.
type Request struct {
	Query      *Group
	Body       *Group
	Attributes *Group
	Cookies    *Group
	Files      *Group
	Server     *Group

	pathOnce sync.Once
	path     string
	urlOnce  sync.Once
	url      string
	baseOnce sync.Once
	baseURL  string
}

// New creates a request from decoded input groups. Keys of each map are
// inserted in sorted order.
func New(in Input) *Request {
	return &Request{
		Query:      groupFrom(in.Query),
		Body:       groupFrom(in.Body),
		Attributes: groupFrom(in.Attributes),
		Cookies:    groupFrom(in.Cookies),
		Files:      groupFrom(in.Files),
		Server:     groupFrom(in.Server),
	}
}

// Path returns the path component of REQUEST_URI, "/" when it is missing.
func (r *Request) Path() string {
	r.pathOnce.Do(func() {
		r.path = "/"
		uri := r.serverString(ServerRequestURI, "/")
		if u, err := url.ParseRequestURI(uri); err == nil {
			if u.Path != "" {
				r.path = u.Path
			}
			return
		}
		if p, _, _ := strings.Cut(uri, "?"); p != "" {
			r.path = p
		}
	})
	return r.path
}

// URL returns BaseURL followed by Path.
func (r *Request) URL() string {
	r.urlOnce.Do(func() {
		r.url = r.BaseURL() + r.Path()
	})
	return r.url
}

// BaseURL returns scheme://host.
func (r *Request) BaseURL() string {
	r.baseOnce.Do(func() {
		r.baseURL = r.Scheme() + "://" + r.serverString(ServerHTTPHost, defaultHost)
	})
	return r.baseURL
}

// Scheme returns REQUEST_SCHEME, "http" by default.
func (r *Request) Scheme() string {
	return r.serverString(ServerRequestScheme, defaultScheme)
}

// Method returns REQUEST_METHOD, "GET" by default.
func (r *Request) Method() string {
	return r.serverString(ServerRequestMethod, MethodGet)
}

// Port returns REQUEST_PORT, 80 when missing or not a number.
func (r *Request) Port() int {
	v, ok := r.Server.Get(ServerRequestPort)
	if !ok {
		return defaultPort
	}
	switch p := v.(type) {
	case int:
		return p
	case string:
		if n, err := strconv.Atoi(p); err == nil {
			return n
		}
	}
	return defaultPort
}

// IP returns REMOTE_ADDR, "127.0.0.1" by default.
func (r *Request) IP() string {
	return r.serverString(ServerRemoteAddr, defaultIP)
}

// Cookie returns a received cookie value.
func (r *Request) Cookie(name string) (string, bool) {
	v, ok := r.Cookies.Get(name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// IsMethod reports whether the request method equals method, ignoring case.
func (r *Request) IsMethod(method string) bool {
	return strings.EqualFold(r.Method(), method)
}

func (r *Request) serverString(key, def string) string {
	if s, ok := r.Server.GetOr(key, def).(string); ok && s != "" {
		return s
	}
	return def
}
