package redis

import (
	"context"
	"net"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-retry"

	"renthubber/config"
)

const (
	pingTimeout  = 5 * time.Second
	pingInterval = 500 * time.Millisecond
)

// New connects to the primary Redis used for caching and rate limiting.
// The process exits when Redis cannot be reached after the configured attempts.
func New(cfg *config.Config) *goRedis.Client {
	redisCfg := cfg.Cache.Redis
	timeout := time.Duration(redisCfg.TimeoutMillis) * time.Millisecond

	client := goRedis.NewClient(&goRedis.Options{
		Addr:         net.JoinHostPort(redisCfg.Primary.Host, redisCfg.Primary.Port),
		Password:     redisCfg.Primary.Password,
		DB:           redisCfg.Primary.DB,
		PoolSize:     redisCfg.PoolSize,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := ping(ctx, client, redisCfg.ConnectAttempts); err != nil {
		log.Fatal().Err(err).Str("host", redisCfg.Primary.Host).Msg("Failed to connect to Redis")
	}

	log.Info().
		Int("db", redisCfg.Primary.DB).
		Str("addr", client.Options().Addr).
		Int("pool_size", redisCfg.PoolSize).
		Msg("Connected to Redis")

	return client
}

func ping(ctx context.Context, client *goRedis.Client, attempts uint64) error {
	backoff := retry.WithMaxRetries(attempts, retry.NewConstant(pingInterval))

	return retry.Do(ctx, backoff, func(ctx context.Context) error { //nolint:wrapcheck
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis not ready")

			return retry.RetryableError(err)
		}

		return nil
	})
}
