// Package config loads typed configuration structs from environment
// variables using github.com/caarlos0/env/v11, with optional .env files read
// by github.com/joho/godotenv.
//
// Every httpkit package that can be configured exposes a Config struct with
// env tags (cookie.Config, session.Config, logger.Config, redis.Config), so a
// service wires itself with one Load call per struct:
//
//	config.MustLoadEnv(".env.local")
//
//	var sessCfg session.Config
//	if err := config.Load(&sessCfg); err != nil {
//		log.Fatal(err)
//	}
//
// Parsed configs are cached per type for the lifetime of the process. Use
// ResetCache or ForceReloadConfig in tests after changing the environment.
package config
