package cookie

// Option configures a cookie during construction.
type Option func(*Cookie) error

// WithValue sets the cookie value.
func WithValue(value string) Option {
	return func(c *Cookie) error {
		c.SetValue(value)
		return nil
	}
}

// WithExpire sets the expiry. See ExpireTimestamp for accepted values.
func WithExpire(expire any) Option {
	return func(c *Cookie) error {
		return c.SetExpire(expire)
	}
}

// WithDuration sets the expiry to now plus the given number of seconds.
func WithDuration(seconds int64) Option {
	return func(c *Cookie) error {
		c.SetDuration(seconds)
		return nil
	}
}

func WithPath(path string) Option {
	return func(c *Cookie) error {
		c.SetPath(path)
		return nil
	}
}

func WithDomain(domain string) Option {
	return func(c *Cookie) error {
		c.SetDomain(domain)
		return nil
	}
}

func WithSecure(secure bool) Option {
	return func(c *Cookie) error {
		c.SetSecure(secure)
		return nil
	}
}

func WithHTTPOnly(httpOnly bool) Option {
	return func(c *Cookie) error {
		c.SetHTTPOnly(httpOnly)
		return nil
	}
}

// WithSameSite sets the SameSite policy. An empty string removes the attribute.
func WithSameSite(sameSite string) Option {
	return func(c *Cookie) error {
		return c.SetSameSite(sameSite)
	}
}

func WithPartitioned(partitioned bool) Option {
	return func(c *Cookie) error {
		c.SetPartitioned(partitioned)
		return nil
	}
}
