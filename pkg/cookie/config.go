package cookie

// Config holds default cookie attributes.
type Config struct {
	Path        string `env:"COOKIE_PATH" envDefault:"/"`
	Domain      string `env:"COOKIE_DOMAIN" envDefault:""`
	Secure      bool   `env:"COOKIE_SECURE" envDefault:"false"`
	HTTPOnly    bool   `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	SameSite    string `env:"COOKIE_SAME_SITE" envDefault:"lax"`
	Partitioned bool   `env:"COOKIE_PARTITIONED" envDefault:"false"`
}

// DefaultConfig returns the attributes a cookie gets when no option overrides them.
func DefaultConfig() Config {
	return Config{
		Path:     "/",
		HTTPOnly: true,
		SameSite: SameSiteLax,
	}
}

// Options converts the config into cookie options.
func (c Config) Options() []Option {
	return []Option{
		WithPath(c.Path),
		WithDomain(c.Domain),
		WithSecure(c.Secure),
		WithHTTPOnly(c.HTTPOnly),
		WithSameSite(c.SameSite),
		WithPartitioned(c.Partitioned),
	}
}

// NewFromConfig creates a cookie with attributes taken from cfg.
// Additional options are applied after the config and take precedence.
func NewFromConfig(cfg Config, name string, opts ...Option) (*Cookie, error) {
	return New(name, append(cfg.Options(), opts...)...)
}
