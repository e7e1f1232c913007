package logger

import (
	"log/slog"
	"strings"
)

// Config holds logger settings loaded from the environment.
type Config struct {
	Service string `env:"APP_NAME" envDefault:"httpkit"`
	Env     string `env:"APP_ENV" envDefault:"development"`
	Level   string `env:"LOG_LEVEL" envDefault:""`
	Format  string `env:"LOG_FORMAT" envDefault:""`
}

// NewFromConfig creates a logger from cfg. Level and Format override the
// environment preset when set; unknown values are ignored.
func NewFromConfig(cfg Config, opts ...Option) *slog.Logger {
	configOpts := []Option{WithEnvironment(cfg.Env, cfg.Service)}

	if cfg.Level != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(cfg.Level)); err == nil {
			configOpts = append(configOpts, WithLevel(level))
		}
	}
	switch f := Format(strings.ToLower(cfg.Format)); f {
	case FormatJSON, FormatText:
		configOpts = append(configOpts, WithFormat(f))
	}

	return New(append(configOpts, opts...)...)
}
