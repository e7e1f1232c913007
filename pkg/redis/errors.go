package redis

import "github.com/dmitrymomot/httpkit/pkg/errkind"

var (
	ErrEmptyConnectionURL           = errkind.New(errkind.ErrInvalidArgument, "redis.empty_url")
	ErrFailedToParseRedisConnString = errkind.New(errkind.ErrInvalidArgument, "redis.invalid_url")
	ErrRedisNotReady                = errkind.New(errkind.ErrRuntime, "redis.not_ready")
	ErrHealthcheckFailed            = errkind.New(errkind.ErrRuntime, "redis.healthcheck_failed")
	ErrScanFailed                   = errkind.New(errkind.ErrRuntime, "redis.scan_failed")
)
