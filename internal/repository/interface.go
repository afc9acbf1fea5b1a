package repository

import (
	"context"

	"github.com/vogiaan1904/ticketbottle-counters/internal/models"
)

// StateRepository persists the whole counter state.
//
// Load never fails for a missing or corrupt snapshot: it returns a fresh
// state instead. A non-nil error alongside a fresh state reports a backend
// that could not be read at all.
type StateRepository interface {
	Load(ctx context.Context) (*models.SystemState, error)
	Save(ctx context.Context, st *models.SystemState) error
	Clear(ctx context.Context) error
}
