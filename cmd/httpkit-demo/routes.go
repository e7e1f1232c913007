package main

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/httpkit/pkg/cookie"
	"github.com/dmitrymomot/httpkit/pkg/httpserver"
	"github.com/dmitrymomot/httpkit/pkg/logger"
	"github.com/dmitrymomot/httpkit/pkg/redis"
	"github.com/dmitrymomot/httpkit/pkg/request"
	"github.com/dmitrymomot/httpkit/pkg/response"
	"github.com/dmitrymomot/httpkit/pkg/session"
)

const (
	visitsKey       = "visits"
	lastVisitCookie = "last_visit"
	readyzKey       = "httpkit:readyz"
)

type routerDeps struct {
	log      *slog.Logger
	sessions *session.Manager
	cookies  cookie.Config
	redis    goredis.UniversalClient
	scan     int64
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(d.log))

	var checks []func(context.Context) error
	if d.redis != nil {
		checks = append(checks, redis.Healthcheck(d.redis,
			redis.WithHealthcheckTimeout(2*time.Second),
			redis.WithWriteCheck(readyzKey),
		))
	}
	r.Method(http.MethodGet, "/healthz", httpserver.HealthCheckHandler(d.log))
	r.Method(http.MethodGet, "/readyz", httpserver.HealthCheckHandler(d.log, checks...))

	onError := errorHandler(d.log)
	r.Method(http.MethodGet, "/", response.Handle(home, onError))
	r.Method(http.MethodGet, "/json", response.Handle(echoJSON, onError))
	r.Method(http.MethodGet, "/redirect", response.Handle(redirectHome, onError))
	r.Method(http.MethodGet, "/stats", response.Handle(stats(d), onError))

	r.Group(func(r chi.Router) {
		r.Use(d.sessions.Middleware)
		r.Method(http.MethodGet, "/counter", response.Handle(counter(d.cookies), onError))
		r.Method(http.MethodGet, "/logout", response.Handle(logout(d.cookies), onError))
	})

	return r
}

func home(r *http.Request) (response.Renderer, error) {
	req, err := request.FromHTTP(r)
	if err != nil {
		return nil, err
	}
	body := fmt.Sprintf("<h1>httpkit</h1><p>Hello, %s.</p>", html.EscapeString(req.IP()))
	return response.New(body, http.StatusOK)
}

func echoJSON(r *http.Request) (response.Renderer, error) {
	req, err := request.FromHTTP(r)
	if err != nil {
		return nil, err
	}
	return response.NewJSON(map[string]any{
		"method": req.Method(),
		"path":   req.Path(),
		"url":    req.URL(),
		"query":  req.Query.Map(),
	}, http.StatusOK)
}

func redirectHome(r *http.Request) (response.Renderer, error) {
	to := r.URL.Query().Get("to")
	if !isLocalPath(to) {
		to = "/"
	}
	return response.Redirect(to)
}

// isLocalPath reports whether p is an absolute path on this host. Browsers
// read "//host" and "/\host" as protocol-relative, so both are rejected.
func isLocalPath(p string) bool {
	if p == "" || p[0] != '/' {
		return false
	}
	if len(p) > 1 && (p[1] == '/' || p[1] == '\\') {
		return false
	}
	u, err := url.Parse(p)
	return err == nil && u.Scheme == "" && u.Host == ""
}

func counter(cookies cookie.Config) response.HandlerFunc {
	return func(r *http.Request) (response.Renderer, error) {
		s := session.MustFromContext(r.Context())

		v, err := s.GetOr(visitsKey, 0)
		if err != nil {
			return nil, err
		}
		visits := toInt(v) + 1
		if err := s.Put(visitsKey, visits); err != nil {
			return nil, err
		}

		last, err := cookie.NewFromConfig(cookies, lastVisitCookie,
			cookie.WithValue(time.Now().UTC().Format(time.RFC3339)),
			cookie.WithExpire("+30 days"),
		)
		if err != nil {
			return nil, err
		}
		resp, err := response.New(fmt.Sprintf("visits: %d", visits), http.StatusOK, response.WithCookie(last))
		if err != nil {
			return nil, err
		}
		resp.Headers().Put("Content-Type", "text/plain; charset="+response.DefaultCharset)
		return resp, nil
	}
}

func logout(cookies cookie.Config) response.HandlerFunc {
	return func(r *http.Request) (response.Renderer, error) {
		session.MustFromContext(r.Context()).Clear()

		expired, err := cookie.NewFromConfig(cookies, lastVisitCookie)
		if err != nil {
			return nil, err
		}
		return response.Redirect("/", response.WithCookie(expired))
	}
}

func stats(d routerDeps) response.HandlerFunc {
	return func(r *http.Request) (response.Renderer, error) {
		cfg := d.sessions.Config()
		data := map[string]any{"backend": cfg.Backend}
		if d.redis != nil {
			keys, err := redis.Keys(r.Context(), d.redis, cfg.RedisPrefix+"*", d.scan)
			if err != nil {
				return nil, err
			}
			n := 0
			for _, k := range keys {
				if len(k) < 5 || k[len(k)-5:] != ":lock" {
					n++
				}
			}
			data["sessions"] = n
		}
		return response.NewJSON(data, http.StatusOK)
	}
}

func errorHandler(log *slog.Logger) response.ErrorHandler {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		log.ErrorContext(r.Context(), "request failed",
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.Error(err),
		)
		response.DefaultErrorHandler(w, r, err)
	}
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.InfoContext(r.Context(), "request",
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.Status(ww.Status()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}

func requestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := middleware.GetReqID(ctx); id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}

// toInt handles values read back from JSON-backed stores as float64.
func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}
