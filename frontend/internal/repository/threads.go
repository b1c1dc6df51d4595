// Package repository keeps the fetched collections in memory. Threads hold
// the comment and reply tree; notes, jobs and papers are flat collections.
package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/studentcollab/collabhub/frontend/internal/localstore"
	"github.com/studentcollab/collabhub/shared/domain"
)

// Threads is the ordered thread collection. Every read returns deep copies.
type Threads struct {
	mu      sync.RWMutex
	threads []domain.Thread
	loaded  bool
	mirror  *Mirror
}

func NewThreads(mirror *Mirror) *Threads {
	return &Threads{threads: []domain.Thread{}, mirror: mirror}
}

// Hydrate fills the repository from the durable mirror. It does not count as
// a fetch: Loaded stays false.
func (r *Threads) Hydrate(ctx context.Context) {
	var threads []domain.Thread
	if !r.mirror.load(ctx, localstore.KeyThreads, &threads) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		r.threads = threads
	}
}

// Loaded reports whether a backend fetch has replaced the contents.
func (r *Threads) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// Replace swaps the whole collection for a fetch result.
func (r *Threads) Replace(ctx context.Context, threads []domain.Thread) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.threads = cloneThreads(threads)
	r.loaded = true
	r.persist(ctx)
}

func (r *Threads) Prepend(ctx context.Context, t domain.Thread) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.threads = slices.Insert(r.threads, 0, t.Clone())
	r.persist(ctx)
}

// ReplaceThread swaps the record with t's id for t, keeping its position.
func (r *Threads) ReplaceThread(ctx context.Context, t domain.Thread) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(t.Id)
	if i < 0 {
		return false
	}
	r.threads[i] = t.Clone()
	r.persist(ctx)
	return true
}

// RemoveThread drops the thread together with its comments and replies.
func (r *Threads) RemoveThread(ctx context.Context, id domain.ThreadId) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return false
	}
	r.threads = slices.Delete(r.threads, i, i+1)
	r.persist(ctx)
	return true
}

// PrependReply puts reply first in the comment's replies. Nothing else in
// the collection changes.
func (r *Threads) PrependReply(ctx context.Context, threadID domain.ThreadId, commentID domain.CommentId, reply domain.Reply) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(threadID)
	if i < 0 {
		return false
	}
	c, ok := r.threads[i].Comment(commentID)
	if !ok {
		return false
	}
	c.Replies = slices.Insert(slices.Clone(c.Replies), 0, reply)
	r.persist(ctx)
	return true
}

func (r *Threads) Get(id domain.ThreadId) (domain.Thread, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.index(id)
	if i < 0 {
		return domain.Thread{}, false
	}
	return r.threads[i].Clone(), true
}

func (r *Threads) Snapshot() []domain.Thread {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneThreads(r.threads)
}

func (r *Threads) index(id domain.ThreadId) int {
	return slices.IndexFunc(r.threads, func(t domain.Thread) bool { return t.Id == id })
}

// persist must be called with mu held.
func (r *Threads) persist(ctx context.Context) {
	r.mirror.save(ctx, localstore.KeyThreads, r.threads)
}

func cloneThreads(threads []domain.Thread) []domain.Thread {
	out := make([]domain.Thread, len(threads))
	for i, t := range threads {
		out[i] = t.Clone()
	}
	return out
}
