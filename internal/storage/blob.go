// Package storage provides byte-oriented backends for state snapshots.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("snapshot not found")

// Blob stores a single opaque snapshot. Get returns ErrNotFound when nothing
// has been written yet or the snapshot was deleted.
type Blob interface {
	Get(ctx context.Context) ([]byte, error)
	Put(ctx context.Context, data []byte) error
	Delete(ctx context.Context) error
}
