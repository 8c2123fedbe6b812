package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is the in-memory Store implementation used in tests, examples
// and single-process deployments. It keys records by Ref.Identifier().
type MemoryStore[T any] struct {
	mu      sync.RWMutex
	records map[string]memoryRecord[T]
}

type memoryRecord[T any] struct {
	snapshot T
	meta     Meta
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore[T any]() *MemoryStore[T] {
	return &MemoryStore[T]{records: map[string]memoryRecord[T]{}}
}

func (s *MemoryStore[T]) Load(_ context.Context, ref Ref) (T, Meta, bool, error) {
	var zero T
	key, err := ref.Identifier()
	if err != nil {
		return zero, Meta{}, false, err
	}

	s.mu.RLock()
	record, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return zero, Meta{}, false, nil
	}
	return record.snapshot, cloneMeta(record.meta), true, nil
}

func (s *MemoryStore[T]) Save(_ context.Context, ref Ref, snapshot T, meta Meta) (Meta, error) {
	key, err := ref.Identifier()
	if err != nil {
		return Meta{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.records[key]; ok && meta.ETag != "" && existing.meta.ETag != meta.ETag {
		return Meta{}, ErrETagMismatch
	}
	stored := stampMeta(meta)
	s.records[key] = memoryRecord[T]{snapshot: snapshot, meta: cloneMeta(stored)}
	return cloneMeta(stored), nil
}

// Mutate performs a load-modify-save cycle with optimistic concurrency. The
// mutator receives the current snapshot (zero value when none exists).
func Mutate[T any](ctx context.Context, s Store[T], ref Ref, mutate Mutator[T]) (T, Meta, error) {
	var zero T
	snapshot, meta, _, err := s.Load(ctx, ref)
	if err != nil {
		return zero, Meta{}, err
	}
	if mutate != nil {
		if err := mutate(&snapshot); err != nil {
			return zero, Meta{}, err
		}
	}
	saved, err := s.Save(ctx, ref, snapshot, meta)
	if err != nil {
		return zero, Meta{}, err
	}
	return snapshot, saved, nil
}

// stampMeta assigns fresh identity to a snapshot being written.
func stampMeta(meta Meta) Meta {
	meta.SnapshotID = uuid.NewString()
	meta.ETag = uuid.NewString()
	meta.UpdatedAt = time.Now().UTC()
	return meta
}

func cloneMeta(meta Meta) Meta {
	out := meta
	if meta.Extra == nil {
		return out
	}
	out.Extra = make(map[string]string, len(meta.Extra))
	for k, v := range meta.Extra {
		out.Extra[k] = v
	}
	return out
}
