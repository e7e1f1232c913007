// Command httpkit-demo serves a few routes built on the httpkit packages:
// plain, JSON and redirect responses, a session-backed visit counter and a
// logout route that expires a cookie.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/httpkit/pkg/config"
	"github.com/dmitrymomot/httpkit/pkg/cookie"
	"github.com/dmitrymomot/httpkit/pkg/httpserver"
	"github.com/dmitrymomot/httpkit/pkg/logger"
	"github.com/dmitrymomot/httpkit/pkg/redis"
	"github.com/dmitrymomot/httpkit/pkg/session"
)

type appConfig struct {
	Log     logger.Config
	HTTP    httpserver.Config
	Session session.Config
	Cookie  cookie.Config
	Redis   redis.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("httpkit-demo failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.NewFromConfig(cfg.Log,
		logger.WithContextExtractors(session.LoggerExtractor(), requestIDExtractor()),
	)
	logger.SetAsDefault(log)

	var client goredis.UniversalClient
	if cfg.Session.Backend == session.BackendRedis {
		rc, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		client = rc
	}

	sessions, err := session.NewFromConfig(cfg.Session, client, session.WithManagerLogger(log))
	if err != nil {
		return errors.Join(err, closeClient(client))
	}

	router := newRouter(routerDeps{
		log:      log,
		sessions: sessions,
		cookies:  cfg.Cookie,
		redis:    client,
		scan:     cfg.Redis.ScanBatchSize,
	})

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithShutdownHook(func(context.Context) error { return sessions.Close() }),
		httpserver.WithShutdownHook(func(context.Context) error { return closeClient(client) }),
	)
	return srv.Run(ctx, router)
}

func loadConfig() (appConfig, error) {
	var cfg appConfig
	err := errors.Join(
		config.Load(&cfg.Log),
		config.Load(&cfg.HTTP),
		config.Load(&cfg.Session),
		config.Load(&cfg.Cookie),
	)
	if cfg.Session.Backend == session.BackendRedis {
		err = errors.Join(err, config.Load(&cfg.Redis))
	}
	return cfg, err
}

func closeClient(client goredis.UniversalClient) error {
	if client == nil {
		return nil
	}
	return client.Close()
}
