package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/vogiaan1904/ticketbottle-counters/config"
	"github.com/vogiaan1904/ticketbottle-counters/pkg/logger"
	pkgRedis "github.com/vogiaan1904/ticketbottle-counters/pkg/redis"
)

func Connect(ctx context.Context, cfg config.RedisConfig, l logger.Logger) (*redis.Client, error) {
	cli := pkgRedis.NewClient(cfg)

	if err := cli.Ping(ctx).Err(); err != nil {
		cli.Close()
		return nil, fmt.Errorf("failed to ping Redis at %s: %w", cfg.Addr, err)
	}

	l.Infof(ctx, "Connected to Redis at %s", cfg.Addr)

	return cli, nil
}

func Disconnect(ctx context.Context, cli *redis.Client, l logger.Logger) {
	if cli == nil {
		return
	}

	if err := cli.Close(); err != nil {
		l.Warnf(ctx, "Closing Redis connection: %v", err)
		return
	}

	l.Info(ctx, "Connection to Redis closed.")
}
