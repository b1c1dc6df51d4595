package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/studentcollab/collabhub/frontend/internal/localstore"
	"github.com/studentcollab/collabhub/shared/domain"
)

// LikedThreads is the set of thread ids the current user has liked, as last
// reported by the backend.
type LikedThreads struct {
	mu     sync.RWMutex
	ids    map[domain.ThreadId]struct{}
	mirror *Mirror
}

func NewLikedThreads(mirror *Mirror) *LikedThreads {
	return &LikedThreads{ids: map[domain.ThreadId]struct{}{}, mirror: mirror}
}

func (l *LikedThreads) Hydrate(ctx context.Context) {
	var ids []domain.ThreadId
	if !l.mirror.load(ctx, localstore.KeyLikedThreads, &ids) {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, id := range ids {
		l.ids[id] = struct{}{}
	}
}

// Set records whether the thread is liked.
func (l *LikedThreads) Set(ctx context.Context, id domain.ThreadId, liked bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if liked {
		l.ids[id] = struct{}{}
	} else {
		delete(l.ids, id)
	}
	l.mirror.save(ctx, localstore.KeyLikedThreads, l.sorted())
}

func (l *LikedThreads) Forget(ctx context.Context, id domain.ThreadId) {
	l.Set(ctx, id, false)
}

func (l *LikedThreads) Contains(id domain.ThreadId) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.ids[id]
	return ok
}

func (l *LikedThreads) IDs() []domain.ThreadId {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sorted()
}

func (l *LikedThreads) sorted() []domain.ThreadId {
	ids := make([]domain.ThreadId, 0, len(l.ids))
	for id := range l.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
