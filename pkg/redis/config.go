package redis

import "time"

// Config describes the Redis connection used by the redis session backend.
type Config struct {
	// ConnectionURL in the form "redis://:password@localhost:6379/0".
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	// ScanBatchSize is the COUNT hint passed to SCAN by Keys.
	ScanBatchSize int64 `env:"REDIS_SCAN_BATCH_SIZE" envDefault:"1000"`
}
