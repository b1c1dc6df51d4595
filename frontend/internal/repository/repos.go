package repository

import (
	"context"

	"github.com/studentcollab/collabhub/frontend/internal/localstore"
	"github.com/studentcollab/collabhub/shared/domain"
)

// Repos groups every in-memory collection of the client.
type Repos struct {
	Threads *Threads
	Liked   *LikedThreads
	Notes   *Collection[domain.Note]
	Jobs    *Collection[domain.Job]
	Papers  *Collection[domain.QuestionPaper]
}

// New creates empty repositories mirrored through mirror, which may be nil.
func New(mirror *Mirror) *Repos {
	return &Repos{
		Threads: NewThreads(mirror),
		Liked:   NewLikedThreads(mirror),
		Notes:   NewCollection[domain.Note](localstore.KeyNotes, mirror),
		Jobs:    NewCollection[domain.Job](localstore.KeyJobs, mirror),
		Papers:  NewCollection[domain.QuestionPaper](localstore.KeyPapers, mirror),
	}
}

// Hydrate restores every collection from the mirror.
func (r *Repos) Hydrate(ctx context.Context) {
	r.Threads.Hydrate(ctx)
	r.Liked.Hydrate(ctx)
	r.Notes.Hydrate(ctx)
	r.Jobs.Hydrate(ctx)
	r.Papers.Hydrate(ctx)
}
