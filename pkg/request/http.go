package request

import (
	"errors"
	"mime"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/httpkit/pkg/collection"
)

// DefaultMaxMemory bounds the multipart form data kept in memory.
const DefaultMaxMemory = 32 << 20

type httpOptions struct {
	attributes map[string]any
	maxMemory  int64
	trustProxy bool
}

// HTTPOption configures FromHTTP.
type HTTPOption func(*httpOptions)

// WithAttributes sets the attributes group, usually route parameters.
func WithAttributes(attrs map[string]any) HTTPOption {
	return func(o *httpOptions) {
		o.attributes = attrs
	}
}

// WithMaxMemory sets the in-memory limit for multipart forms.
func WithMaxMemory(n int64) HTTPOption {
	return func(o *httpOptions) {
		if n > 0 {
			o.maxMemory = n
		}
	}
}

// WithTrustedProxy makes REMOTE_ADDR honor CF-Connecting-IP, DO-Connecting-IP,
// X-Forwarded-For and X-Real-IP, in that order.
func WithTrustedProxy(trust bool) HTTPOption {
	return func(o *httpOptions) {
		o.trustProxy = trust
	}
}

// FromHTTP builds a Request from a net/http request. The body is parsed for
// url-encoded and multipart forms; other content types leave Body empty.
func FromHTTP(r *http.Request, opts ...HTTPOption) (*Request, error) {
	o := &httpOptions{maxMemory: DefaultMaxMemory}
	for _, opt := range opts {
		opt(o)
	}

	req := New(Input{Attributes: o.attributes})

	for key, values := range sortedValues(r.URL.Query()) {
		req.Query.Put(key, flatten(values))
	}

	if err := parseBody(r, o.maxMemory); err != nil {
		return nil, errors.Join(ErrParseBody, err)
	}
	if r.PostForm != nil {
		for key, values := range sortedValues(r.PostForm) {
			req.Body.Put(key, flatten(values))
		}
	}
	if r.MultipartForm != nil {
		for _, key := range sortedKeys(r.MultipartForm.File) {
			files := r.MultipartForm.File[key]
			if len(files) == 1 {
				req.Files.Put(key, files[0])
			} else {
				req.Files.Put(key, files)
			}
		}
	}

	for _, c := range r.Cookies() {
		if !req.Cookies.Has(c.Name) {
			req.Cookies.Put(c.Name, c.Value)
		}
	}

	fillServer(req.Server, r, o.trustProxy)
	return req, nil
}

func parseBody(r *http.Request, maxMemory int64) error {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return nil
	}
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil
	}
	switch ct {
	case "multipart/form-data":
		return r.ParseMultipartForm(maxMemory)
	case "application/x-www-form-urlencoded":
		return r.ParseForm()
	}
	return nil
}

func fillServer(server *Group, r *http.Request, trustProxy bool) {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if trustProxy {
		if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" || proto == "http" {
			scheme = proto
		}
	}

	host := r.Host
	port := strconv.Itoa(defaultPort)
	if scheme == "https" {
		port = "443"
	}
	if _, p, err := net.SplitHostPort(host); err == nil && p != "" {
		port = p
	}

	server.Put(ServerRequestURI, r.RequestURI)
	if r.RequestURI == "" {
		server.Put(ServerRequestURI, r.URL.RequestURI())
	}
	server.Put(ServerRequestMethod, r.Method)
	server.Put(ServerRequestScheme, scheme)
	server.Put(ServerHTTPHost, host)
	server.Put(ServerRequestPort, port)
	server.Put(ServerPort, port)
	server.Put(ServerProtocol, r.Proto)
	server.Put(ServerRemoteAddr, remoteIP(r, trustProxy))

	for _, name := range sortedKeys(r.Header) {
		key := "HTTP_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
		if key == ServerHTTPHost {
			continue
		}
		server.Put(key, strings.Join(r.Header[name], ", "))
	}
}

func groupFrom(m map[string]any) *Group {
	g := collection.New[string, any]()
	for _, key := range sortedKeys(m) {
		g.Put(key, m[key])
	}
	return g
}

func flatten(values []string) any {
	if len(values) == 1 {
		return values[0]
	}
	return slices.Clone(values)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func sortedValues(m map[string][]string) func(yield func(string, []string) bool) {
	return func(yield func(string, []string) bool) {
		for _, k := range sortedKeys(m) {
			if !yield(k, m[k]) {
				return
			}
		}
	}
}
