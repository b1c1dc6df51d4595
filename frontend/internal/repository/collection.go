package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/studentcollab/collabhub/shared/domain"
)

// Collection is a flat, ordered feed (notes, jobs, question papers).
type Collection[T domain.Identified] struct {
	mu     sync.RWMutex
	items  []T
	loaded bool
	key    string
	mirror *Mirror
}

// NewCollection creates a collection mirrored under key.
func NewCollection[T domain.Identified](key string, mirror *Mirror) *Collection[T] {
	return &Collection[T]{items: []T{}, key: key, mirror: mirror}
}

func (c *Collection[T]) Hydrate(ctx context.Context) {
	var items []T
	if !c.mirror.load(ctx, c.key, &items) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		c.items = items
	}
}

func (c *Collection[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *Collection[T]) Replace(ctx context.Context, items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = slices.Clone(items)
	if c.items == nil {
		c.items = []T{}
	}
	c.loaded = true
	c.mirror.save(ctx, c.key, c.items)
}

func (c *Collection[T]) Prepend(ctx context.Context, item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = slices.Insert(c.items, 0, item)
	c.mirror.save(ctx, c.key, c.items)
}

func (c *Collection[T]) Remove(ctx context.Context, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := slices.IndexFunc(c.items, func(it T) bool { return it.Identity() == id })
	if i < 0 {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	c.mirror.save(ctx, c.key, c.items)
	return true
}

func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}
