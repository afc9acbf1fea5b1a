package main

import (
	"context"
	"fmt"

	"github.com/vogiaan1904/ticketbottle-counters/config"
	"github.com/vogiaan1904/ticketbottle-counters/internal/infra/redis"
	"github.com/vogiaan1904/ticketbottle-counters/internal/queue"
	"github.com/vogiaan1904/ticketbottle-counters/internal/repository"
	redisRepo "github.com/vogiaan1904/ticketbottle-counters/internal/repository/redis"
	"github.com/vogiaan1904/ticketbottle-counters/internal/repository/snapshot"
	"github.com/vogiaan1904/ticketbottle-counters/internal/repository/sqlite"
	"github.com/vogiaan1904/ticketbottle-counters/internal/storage"
	pkgLog "github.com/vogiaan1904/ticketbottle-counters/pkg/logger"
)

// newRepository builds the state repository selected by STORAGE_BACKEND.
// The returned func releases whatever connection the backend holds.
func newRepository(ctx context.Context, cfg *config.Config, mgr *queue.Manager, l pkgLog.Logger) (repository.StateRepository, func(), error) {
	noop := func() {}

	if cfg.Storage.Backend == config.StorageSQLite {
		repo, err := sqlite.NewRepository(cfg.Storage.SQLitePath, mgr, l)
		if err != nil {
			return nil, nil, err
		}
		l.Infof(ctx, "Using SQLite storage at %s", cfg.Storage.SQLitePath)
		return repo, func() { repo.Close() }, nil
	}

	codec, err := snapshot.CodecByName(cfg.Storage.Codec)
	if err != nil {
		return nil, nil, err
	}

	switch cfg.Storage.Backend {
	case config.StorageMemory:
		l.Warn(ctx, "Using in-memory storage, state is lost on restart")
		return snapshot.NewSnapshotRepository(storage.NewMemoryBlob(), codec, mgr, l), noop, nil

	case config.StorageFile:
		blob, err := storage.NewFileBlob(cfg.Storage.FilePath)
		if err != nil {
			return nil, nil, err
		}
		l.Infof(ctx, "Using %s snapshot file at %s", codec.Name(), cfg.Storage.FilePath)
		return snapshot.NewSnapshotRepository(blob, codec, mgr, l), noop, nil

	case config.StorageRedis:
		cli, err := redis.Connect(ctx, cfg.Redis, l)
		if err != nil {
			return nil, nil, err
		}
		blob := redisRepo.NewSnapshotBlob(cli, cfg.Storage.RedisKey, l)
		return snapshot.NewSnapshotRepository(blob, codec, mgr, l), func() { redis.Disconnect(context.Background(), cli, l) }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
