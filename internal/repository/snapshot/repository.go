// Package snapshot persists the counter state as one encoded document in a
// byte store.
package snapshot

import (
	"context"
	"errors"
	"fmt"

	qErrors "github.com/vogiaan1904/ticketbottle-counters/internal/errors"
	"github.com/vogiaan1904/ticketbottle-counters/internal/models"
	"github.com/vogiaan1904/ticketbottle-counters/internal/queue"
	"github.com/vogiaan1904/ticketbottle-counters/internal/repository"
	"github.com/vogiaan1904/ticketbottle-counters/internal/storage"
	"github.com/vogiaan1904/ticketbottle-counters/pkg/logger"
)

type snapshotRepository struct {
	blob  storage.Blob
	codec Codec
	mgr   *queue.Manager
	l     logger.Logger
}

func NewSnapshotRepository(blob storage.Blob, codec Codec, mgr *queue.Manager, l logger.Logger) repository.StateRepository {
	return &snapshotRepository{
		blob:  blob,
		codec: codec,
		mgr:   mgr,
		l:     l,
	}
}

func (r *snapshotRepository) Load(ctx context.Context) (*models.SystemState, error) {
	data, err := r.blob.Get(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		r.l.Infof(ctx, "No saved %s snapshot, starting with empty queues", r.codec.Name())
		return r.mgr.NewState(), nil
	}
	if err != nil {
		r.l.Errorf(ctx, "snapshotRepository.Load: %v", err)
		return r.mgr.NewState(), qErrors.NewPersistenceError("load", err)
	}

	st, rejected, err := r.codec.Unmarshal(data)
	if err != nil {
		r.l.Warnf(ctx, "snapshotRepository.Load: discarding corrupt snapshot: %v", err)
		return r.mgr.NewState(), nil
	}

	rejected = append(rejected, r.mgr.Sanitize(st)...)
	if len(rejected) > 0 {
		r.l.Warnf(ctx, "snapshotRepository.Load: discarded %d invalid ticket records", len(rejected))
		for _, e := range rejected {
			r.l.Debugf(ctx, "snapshotRepository.Load: rejected record: %v", e)
		}
	}

	r.l.Debugf(ctx, "Loaded snapshot: %d waiting, %d called", len(st.Queue), len(st.History))
	return st, nil
}

func (r *snapshotRepository) Save(ctx context.Context, st *models.SystemState) error {
	cp := st.Clone()
	if rejected := r.mgr.Sanitize(cp); len(rejected) > 0 {
		r.l.Warnf(ctx, "snapshotRepository.Save: dropped %d invalid ticket records", len(rejected))
	}

	data, err := r.codec.Marshal(cp)
	if err != nil {
		r.l.Errorf(ctx, "snapshotRepository.Save: %v", err)
		return qErrors.NewPersistenceError("save", fmt.Errorf("encoding snapshot: %w", err))
	}

	if err := r.blob.Put(ctx, data); err != nil {
		r.l.Errorf(ctx, "snapshotRepository.Save: %v", err)
		return qErrors.NewPersistenceError("save", err)
	}

	return nil
}

func (r *snapshotRepository) Clear(ctx context.Context) error {
	if err := r.blob.Delete(ctx); err != nil {
		r.l.Errorf(ctx, "snapshotRepository.Clear: %v", err)
		return qErrors.NewPersistenceError("clear", err)
	}
	return nil
}
