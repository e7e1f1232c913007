package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Keys returns every key matching pattern. It walks the keyspace with SCAN
// so large databases are not blocked; batch is the COUNT hint and defaults
// to 1000 when not positive.
func Keys(ctx context.Context, client redis.UniversalClient, pattern string, batch int64) ([]string, error) {
	if batch <= 0 {
		batch = 1000
	}

	var (
		keys   []string
		cursor uint64
	)
	for {
		page, next, err := client.Scan(ctx, cursor, pattern, batch).Result()
		if err != nil {
			return nil, errors.Join(ErrScanFailed, err)
		}
		keys = append(keys, page...)
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}
