package cache

import (
	"context"
	"fmt"
)

type Loader[T any] func(ctx context.Context) (T, error)

// Cache is a read-through cache for values of one type.
type Cache[T any] interface {
	GetOrLoad(ctx context.Context, key string, load Loader[T]) (T, error)
}

// Memory is a typed view over a Store.
type Memory[T any] struct {
	store *Store
}

func NewMemory[T any](store *Store) *Memory[T] {
	return &Memory[T]{store: store}
}

func (m *Memory[T]) GetOrLoad(ctx context.Context, key string, load Loader[T]) (T, error) {
	var zero T
	if load == nil {
		return zero, fmt.Errorf("loader is required")
	}

	value, err := m.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		loaded, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("cache entry %q has type %T", key, value)
	}
	return typed, nil
}
