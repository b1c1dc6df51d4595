// Package syncengine applies user intents to the repositories. Intents that
// touch backend data go through the authoritative strategy: the backend is
// called first and the repository changes only to what the backend
// confirms. Replies have no backend endpoint and are applied locally.
package syncengine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/studentcollab/collabhub/frontend/internal/repository"
	"github.com/studentcollab/collabhub/shared/api"
	"github.com/studentcollab/collabhub/shared/domain"
	"github.com/studentcollab/collabhub/shared/logger"
)

// Backend is the part of the API client the engine calls.
type Backend interface {
	GetThreads(ctx context.Context) ([]domain.Thread, error)
	CreateThread(ctx context.Context, req api.CreateThreadRequest) (domain.Thread, error)
	DeleteThread(ctx context.Context, threadID domain.ThreadId) error
	CreateComment(ctx context.Context, threadID domain.ThreadId, req api.CreateCommentRequest) error
	DeleteComment(ctx context.Context, threadID domain.ThreadId, commentID domain.CommentId) error
	LikeThread(ctx context.Context, threadID domain.ThreadId, username string) (domain.Thread, error)
	UnlikeThread(ctx context.Context, threadID domain.ThreadId, username string) (domain.Thread, error)

	GetNotes(ctx context.Context) ([]domain.Note, error)
	CreateNote(ctx context.Context, req api.CreateNoteRequest) (domain.Note, error)
	DeleteNote(ctx context.Context, id string) error
	GetJobs(ctx context.Context) ([]domain.Job, error)
	CreateJob(ctx context.Context, req api.CreateJobRequest) (domain.Job, error)
	DeleteJob(ctx context.Context, id string) error
	GetPapers(ctx context.Context) ([]domain.QuestionPaper, error)
	CreatePaper(ctx context.Context, req api.CreatePaperRequest) (domain.QuestionPaper, error)
	DeletePaper(ctx context.Context, id string) error
}

// Users resolves the author of new content.
type Users interface {
	CurrentUser() string
}

// MutationStrategy reconciles one kind of intent with the repositories.
type MutationStrategy interface {
	Kind() StrategyKind
	Apply(ctx context.Context, intent Intent) Outcome
}

type Engine struct {
	repos      *repository.Repos
	strategies map[StrategyKind]MutationStrategy
	log        *slog.Logger
}

// New wires both strategies over repos.
func New(backend Backend, users Users, repos *repository.Repos) *Engine {
	log := logger.Component("syncengine")
	e := &Engine{repos: repos, log: log}
	e.strategies = map[StrategyKind]MutationStrategy{
		Authoritative:   &authoritative{backend: backend, users: users, repos: repos, log: log},
		LocalOptimistic: &localOptimistic{users: users, repos: repos, newID: newReplyID},
	}
	return e
}

func (e *Engine) Repos() *repository.Repos { return e.repos }

// Dispatch applies intent with the strategy it declares. Failures leave the
// repositories as they were and are not retried.
func (e *Engine) Dispatch(ctx context.Context, intent Intent) Outcome {
	s, ok := e.strategies[intent.Strategy()]
	if !ok {
		out := Outcome{Intent: intent.Name(), Strategy: intent.Strategy(), Err: fmt.Errorf("no strategy for %s", intent.Strategy())}
		observe(out)
		return out
	}

	out := s.Apply(ctx, intent)
	out.Intent = intent.Name()
	out.Strategy = s.Kind()
	observe(out)

	if out.Err != nil {
		e.log.Warn("intent failed", "intent", out.Intent, "strategy", out.Strategy.String(), "error", out.Err)
	} else {
		e.log.Debug("intent applied", "intent", out.Intent, "strategy", out.Strategy.String(), "id", out.ID)
	}
	return out
}

// EnsureLoaded fetches feed unless a fetch already succeeded. Local replies
// survive for as long as threads are not fetched again.
func (e *Engine) EnsureLoaded(ctx context.Context, feed Feed) Outcome {
	if e.loaded(feed) {
		return Outcome{Intent: Refresh{Feed: feed}.Name(), Strategy: Authoritative}
	}
	return e.Dispatch(ctx, Refresh{Feed: feed})
}

func (e *Engine) loaded(feed Feed) bool {
	switch feed {
	case FeedThreads:
		return e.repos.Threads.Loaded()
	case FeedNotes:
		return e.repos.Notes.Loaded()
	case FeedJobs:
		return e.repos.Jobs.Loaded()
	case FeedPapers:
		return e.repos.Papers.Loaded()
	}
	return false
}

// LikeAction returns the endpoint a ToggleLike on t by username would call.
func LikeAction(t domain.Thread, username string) string {
	if t.LikedByUser(username) {
		return "unlike"
	}
	return "like"
}

func newReplyID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
