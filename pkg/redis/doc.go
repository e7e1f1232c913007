// Package redis connects to the Redis server that backs distributed
// sessions.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	mgr, err := session.NewFromConfig(sessCfg, client)
//
// Connect retries the initial ping, Healthcheck wraps a ping for readiness
// checks and Keys lists keys with SCAN, for example to count the stored
// sessions of a prefix. Errors wrap the go-redis error together with one of
// the sentinel errors of this package.
package redis
