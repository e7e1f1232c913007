package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/httpkit/pkg/logger"
	"github.com/dmitrymomot/httpkit/pkg/response"
)

// HealthCheckHandler answers liveness checks with "ALIVE" when no checks are
// given. Otherwise it runs every check and answers "READY", or 503
// "NOT_READY" on the first failure.
func HealthCheckHandler(log *slog.Logger, checks ...func(context.Context) error) http.Handler {
	if log == nil {
		log = logger.NewNope()
	}
	return response.Handle(func(r *http.Request) (response.Renderer, error) {
		if len(checks) == 0 {
			return plain("ALIVE", http.StatusOK)
		}
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				return plain("NOT_READY", http.StatusServiceUnavailable)
			}
		}
		return plain("READY", http.StatusOK)
	}, nil)
}

func plain(body string, status int) (response.Renderer, error) {
	resp, err := response.New(body, status)
	if err != nil {
		return nil, err
	}
	resp.Headers().Put("Content-Type", "text/plain; charset="+response.DefaultCharset)
	return resp, nil
}
