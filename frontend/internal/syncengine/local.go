package syncengine

import (
	"context"
	"fmt"
	"strings"

	"github.com/studentcollab/collabhub/frontend/internal/repository"
	"github.com/studentcollab/collabhub/shared/domain"
	internal_errors "github.com/studentcollab/collabhub/shared/errors"
)

// localOptimistic mutates the repository directly. Replies made this way are
// never sent to the backend and disappear on the next thread fetch.
type localOptimistic struct {
	users Users
	repos *repository.Repos
	newID func() (string, error)
}

func (s *localOptimistic) Kind() StrategyKind { return LocalOptimistic }

func (s *localOptimistic) Apply(ctx context.Context, intent Intent) Outcome {
	in, ok := intent.(AddReply)
	if !ok {
		return Outcome{Err: fmt.Errorf("intent %s is not local", intent.Name())}
	}
	if strings.TrimSpace(in.Content) == "" {
		return Outcome{Err: internal_errors.Validation("content is required")}
	}

	id, err := s.newID()
	if err != nil {
		return Outcome{Err: fmt.Errorf("generate reply id: %w", err)}
	}
	reply := domain.Reply{Id: id, Author: s.users.CurrentUser(), Content: in.Content}
	if !s.repos.Threads.PrependReply(ctx, in.ThreadID, in.CommentID, reply) {
		return Outcome{Err: internal_errors.Validation("comment not found")}
	}
	return Outcome{ID: id}
}
