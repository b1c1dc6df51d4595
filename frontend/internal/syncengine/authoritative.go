package syncengine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/studentcollab/collabhub/frontend/internal/repository"
	"github.com/studentcollab/collabhub/shared/api"
	internal_errors "github.com/studentcollab/collabhub/shared/errors"
	"github.com/studentcollab/collabhub/shared/validation"
)

// authoritative never touches a repository before the backend answers.
// Creates splice the returned record in front, comment changes re-fetch the
// whole thread list, likes replace the one returned thread and deletes drop
// the record by id.
type authoritative struct {
	backend Backend
	users   Users
	repos   *repository.Repos
	log     *slog.Logger
}

func (s *authoritative) Kind() StrategyKind { return Authoritative }

func (s *authoritative) Apply(ctx context.Context, intent Intent) Outcome {
	switch in := intent.(type) {
	case Refresh:
		return Outcome{Err: s.refresh(ctx, in.Feed)}

	case CreateThread:
		req := api.CreateThreadRequest{Title: in.Title, Content: in.Content, User: s.users.CurrentUser()}
		if err := validation.Struct(req); err != nil {
			return Outcome{Err: err}
		}
		t, err := s.backend.CreateThread(ctx, req)
		if err != nil {
			return Outcome{Err: err}
		}
		s.repos.Threads.Prepend(ctx, t)
		return Outcome{ID: t.Id}

	case DeleteThread:
		if err := s.backend.DeleteThread(ctx, in.ThreadID); err != nil {
			return Outcome{Err: err}
		}
		s.repos.Threads.RemoveThread(ctx, in.ThreadID)
		s.repos.Liked.Forget(ctx, in.ThreadID)
		return Outcome{ID: in.ThreadID}

	case AddComment:
		req := api.CreateCommentRequest{User: s.users.CurrentUser(), Content: in.Content}
		if err := validation.Struct(req); err != nil {
			return Outcome{Err: err}
		}
		if err := s.backend.CreateComment(ctx, in.ThreadID, req); err != nil {
			return Outcome{Err: err}
		}
		s.refetchThreads(ctx, "add_comment")
		return Outcome{ID: in.ThreadID}

	case DeleteComment:
		if err := s.backend.DeleteComment(ctx, in.ThreadID, in.CommentID); err != nil {
			return Outcome{Err: err}
		}
		s.refetchThreads(ctx, "delete_comment")
		return Outcome{ID: in.CommentID}

	case ToggleLike:
		return s.toggleLike(ctx, in)

	case CreateNote:
		req := api.CreateNoteRequest{Title: in.Title, FileName: in.FileName, Tags: in.Tags, Uploader: s.users.CurrentUser()}
		if err := validation.Struct(req); err != nil {
			return Outcome{Err: err}
		}
		n, err := s.backend.CreateNote(ctx, req)
		if err != nil {
			return Outcome{Err: err}
		}
		s.repos.Notes.Prepend(ctx, n)
		return Outcome{ID: n.Id}

	case DeleteNote:
		if err := s.backend.DeleteNote(ctx, in.ID); err != nil {
			return Outcome{Err: err}
		}
		s.repos.Notes.Remove(ctx, in.ID)
		return Outcome{ID: in.ID}

	case CreateJob:
		referrer := in.Referrer
		if referrer == "" {
			referrer = s.users.CurrentUser()
		}
		req := api.CreateJobRequest{Title: in.Title, Company: in.Company, Link: in.Link, Referrer: referrer}
		if err := validation.Struct(req); err != nil {
			return Outcome{Err: err}
		}
		j, err := s.backend.CreateJob(ctx, req)
		if err != nil {
			return Outcome{Err: err}
		}
		s.repos.Jobs.Prepend(ctx, j)
		return Outcome{ID: j.Id}

	case DeleteJob:
		if err := s.backend.DeleteJob(ctx, in.ID); err != nil {
			return Outcome{Err: err}
		}
		s.repos.Jobs.Remove(ctx, in.ID)
		return Outcome{ID: in.ID}

	case CreatePaper:
		req := api.CreatePaperRequest{Subject: in.Subject, Year: in.Year, Link: in.Link}
		if err := validation.StructWithMessage(req, "All fields are required"); err != nil {
			return Outcome{Err: err}
		}
		p, err := s.backend.CreatePaper(ctx, req)
		if err != nil {
			return Outcome{Err: err}
		}
		s.repos.Papers.Prepend(ctx, p)
		return Outcome{ID: p.Id}

	case DeletePaper:
		if err := s.backend.DeletePaper(ctx, in.ID); err != nil {
			return Outcome{Err: err}
		}
		s.repos.Papers.Remove(ctx, in.ID)
		return Outcome{ID: in.ID}
	}

	return Outcome{Err: fmt.Errorf("intent %s is not authoritative", intent.Name())}
}

// toggleLike picks like or unlike from the local likedBy set and replaces
// the thread with the backend's record. The count is never computed here.
func (s *authoritative) toggleLike(ctx context.Context, in ToggleLike) Outcome {
	t, ok := s.repos.Threads.Get(in.ThreadID)
	if !ok {
		return Outcome{Err: internal_errors.Validation("thread not found")}
	}
	user := s.users.CurrentUser()

	call := s.backend.LikeThread
	if LikeAction(t, user) == "unlike" {
		call = s.backend.UnlikeThread
	}
	updated, err := call(ctx, in.ThreadID, user)
	if err != nil {
		return Outcome{Err: err}
	}
	if updated.Id == "" {
		updated.Id = in.ThreadID
	}

	s.repos.Threads.ReplaceThread(ctx, updated)
	s.repos.Liked.Set(ctx, updated.Id, updated.LikedByUser(user))
	return Outcome{ID: updated.Id}
}

// refetchThreads follows a confirmed comment change. The backend already
// holds the change, so a failed re-fetch keeps the previous list and is not
// reported as a failure of the intent.
func (s *authoritative) refetchThreads(ctx context.Context, after string) {
	if err := s.refresh(ctx, FeedThreads); err != nil {
		s.log.Warn("thread re-fetch failed", "after", after, "error", err)
	}
}

func (s *authoritative) refresh(ctx context.Context, feed Feed) error {
	switch feed {
	case FeedThreads:
		threads, err := s.backend.GetThreads(ctx)
		if err != nil {
			return err
		}
		s.repos.Threads.Replace(ctx, threads)
	case FeedNotes:
		notes, err := s.backend.GetNotes(ctx)
		if err != nil {
			return err
		}
		s.repos.Notes.Replace(ctx, notes)
	case FeedJobs:
		jobs, err := s.backend.GetJobs(ctx)
		if err != nil {
			return err
		}
		s.repos.Jobs.Replace(ctx, jobs)
	case FeedPapers:
		papers, err := s.backend.GetPapers(ctx)
		if err != nil {
			return err
		}
		s.repos.Papers.Replace(ctx, papers)
	default:
		return fmt.Errorf("unknown feed %q", feed)
	}
	return nil
}
