package storage

import (
	"context"
	"sync"
)

type MemoryBlob struct {
	mu   sync.Mutex
	data []byte
	set  bool
}

func NewMemoryBlob() *MemoryBlob {
	return &MemoryBlob{}
}

func (b *MemoryBlob) Get(ctx context.Context) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.set {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b.data...), nil
}

func (b *MemoryBlob) Put(ctx context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data = append([]byte(nil), data...)
	b.set = true
	return nil
}

func (b *MemoryBlob) Delete(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data = nil
	b.set = false
	return nil
}
