package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/vogiaan1904/ticketbottle-counters/internal/storage"
	"github.com/vogiaan1904/ticketbottle-counters/pkg/logger"
)

// snapshotBlob keeps the encoded counter state under a single Redis key.
type snapshotBlob struct {
	cli redis.Cmdable
	key string
	l   logger.Logger
}

func NewSnapshotBlob(cli redis.Cmdable, key string, l logger.Logger) storage.Blob {
	return &snapshotBlob{
		cli: cli,
		key: key,
		l:   l,
	}
}

func (b *snapshotBlob) Get(ctx context.Context) ([]byte, error) {
	data, err := b.cli.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		b.l.Errorf(ctx, "redisSnapshotBlob.Get: %v", err)
		return nil, err
	}

	return data, nil
}

func (b *snapshotBlob) Put(ctx context.Context, data []byte) error {
	if err := b.cli.Set(ctx, b.key, data, 0).Err(); err != nil {
		b.l.Errorf(ctx, "redisSnapshotBlob.Put: %v", err)
		return err
	}

	b.l.Debugf(ctx, "Stored %d byte snapshot at %s", len(data), b.key)
	return nil
}

func (b *snapshotBlob) Delete(ctx context.Context) error {
	if err := b.cli.Del(ctx, b.key).Err(); err != nil {
		b.l.Errorf(ctx, "redisSnapshotBlob.Delete: %v", err)
		return err
	}

	return nil
}
