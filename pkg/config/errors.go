package config

import "github.com/dmitrymomot/httpkit/pkg/errkind"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct.
	ErrParsingConfig = errkind.New(errkind.ErrInvalidArgument, "config.parse_failed")

	// ErrLoadingEnvFile is returned when a .env file passed to LoadEnv cannot be read.
	ErrLoadingEnvFile = errkind.New(errkind.ErrRuntime, "config.env_file")

	// ErrConfigNotLoaded is returned when a parsed config is missing from the cache.
	ErrConfigNotLoaded = errkind.New(errkind.ErrRuntime, "config.not_loaded")

	// ErrNilPointer is returned when a nil pointer is provided to Load.
	ErrNilPointer = errkind.New(errkind.ErrInvalidArgument, "config.nil_pointer")
)
