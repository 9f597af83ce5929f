// Package redis connects to Redis with retries and exposes a readiness check.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	ready := redis.Healthcheck(client)
//
// Errors are sentinels joined with the go-redis cause, so errors.Is works on both.
package redis
