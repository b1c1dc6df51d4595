package syncengine

import "github.com/studentcollab/collabhub/shared/domain"

// StrategyKind names how an intent is reconciled with the backend.
type StrategyKind int

const (
	// Authoritative calls the backend first and applies only what it
	// confirms.
	Authoritative StrategyKind = iota
	// LocalOptimistic changes the repository without calling the backend.
	LocalOptimistic
)

func (k StrategyKind) String() string {
	switch k {
	case Authoritative:
		return "authoritative"
	case LocalOptimistic:
		return "local_optimistic"
	}
	return "unknown"
}

// Intent is a user action dispatched to the engine.
type Intent interface {
	Name() string
	Strategy() StrategyKind
}

// Feed selects a collection for Refresh.
type Feed string

const (
	FeedThreads Feed = "threads"
	FeedNotes   Feed = "notes"
	FeedJobs    Feed = "jobs"
	FeedPapers  Feed = "papers"
)

type authoritativeIntent struct{}

func (authoritativeIntent) Strategy() StrategyKind { return Authoritative }

// Refresh re-fetches a whole feed and replaces the collection.
type Refresh struct {
	authoritativeIntent
	Feed Feed
}

func (i Refresh) Name() string { return "refresh_" + string(i.Feed) }

type CreateThread struct {
	authoritativeIntent
	Title   string
	Content string
}

func (CreateThread) Name() string { return "create_thread" }

type DeleteThread struct {
	authoritativeIntent
	ThreadID domain.ThreadId
}

func (DeleteThread) Name() string { return "delete_thread" }

type AddComment struct {
	authoritativeIntent
	ThreadID domain.ThreadId
	Content  string
}

func (AddComment) Name() string { return "add_comment" }

type DeleteComment struct {
	authoritativeIntent
	ThreadID  domain.ThreadId
	CommentID domain.CommentId
}

func (DeleteComment) Name() string { return "delete_comment" }

// ToggleLike likes the thread, or unlikes it when the current user is
// already in its likedBy set.
type ToggleLike struct {
	authoritativeIntent
	ThreadID domain.ThreadId
}

func (ToggleLike) Name() string { return "toggle_like" }

// AddReply is the only local intent: replies have no backend endpoint.
type AddReply struct {
	ThreadID  domain.ThreadId
	CommentID domain.CommentId
	Content   string
}

func (AddReply) Name() string           { return "add_reply" }
func (AddReply) Strategy() StrategyKind { return LocalOptimistic }

type CreateNote struct {
	authoritativeIntent
	Title    string
	FileName string
	Tags     []string
}

func (CreateNote) Name() string { return "create_note" }

type DeleteNote struct {
	authoritativeIntent
	ID string
}

func (DeleteNote) Name() string { return "delete_note" }

// CreateJob posts a job. An empty Referrer defaults to the current user.
type CreateJob struct {
	authoritativeIntent
	Title    string
	Company  string
	Link     string
	Referrer string
}

func (CreateJob) Name() string { return "create_job" }

type DeleteJob struct {
	authoritativeIntent
	ID string
}

func (DeleteJob) Name() string { return "delete_job" }

type CreatePaper struct {
	authoritativeIntent
	Subject string
	Year    string
	Link    string
}

func (CreatePaper) Name() string { return "create_paper" }

type DeletePaper struct {
	authoritativeIntent
	ID string
}

func (DeletePaper) Name() string { return "delete_paper" }

// Outcome is the result of one dispatched intent. ID is the affected or
// created record, when there is one.
type Outcome struct {
	Intent   string
	Strategy StrategyKind
	ID       string
	Err      error
}

func (o Outcome) OK() bool { return o.Err == nil }
