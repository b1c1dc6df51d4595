package syncengine

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/studentcollab/collabhub/frontend/internal/apiclient"
	"github.com/studentcollab/collabhub/frontend/internal/fakebackend"
	"github.com/studentcollab/collabhub/frontend/internal/localstore"
	"github.com/studentcollab/collabhub/frontend/internal/repository"
	"github.com/studentcollab/collabhub/shared/api"
	"github.com/studentcollab/collabhub/shared/domain"
	internal_errors "github.com/studentcollab/collabhub/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type user string

func (u *user) CurrentUser() string { return string(*u) }

type fixture struct {
	backend *fakebackend.Backend
	engine  *Engine
	repos   *repository.Repos
	store   *localstore.MemoryStore
	user    *user
}

func setup(t *testing.T) *fixture {
	t.Helper()
	b := fakebackend.New(t)
	store := localstore.NewMemoryStore()
	repos := repository.New(repository.NewMirror(store))
	u := user(domain.AnonymousUser)
	return &fixture{
		backend: b,
		engine:  New(apiclient.New(b.URL(), 0), &u, repos),
		repos:   repos,
		store:   store,
		user:    &u,
	}
}

// seed stores threads on the backend and loads them into the repository.
func (f *fixture) seed(t *testing.T, threads ...api.ThreadRecord) {
	t.Helper()
	f.backend.Threads = threads
	out := f.engine.Dispatch(context.Background(), Refresh{Feed: FeedThreads})
	require.NoError(t, out.Err)
}

func thread(id, title string, likedBy ...string) api.ThreadRecord {
	if likedBy == nil {
		likedBy = []string{}
	}
	return api.ThreadRecord{
		Identity: api.Identity{MongoId: id},
		Title:    title,
		Content:  "content of " + title,
		User:     "alice",
		Comments: []api.CommentRecord{
			{Identity: api.Identity{PlainId: id + "-c1"}, User: "bob", Content: "first", Replies: []api.ReplyRecord{}},
		},
		Likes:   len(likedBy),
		LikedBy: likedBy,
	}
}

func TestCreateThread_AnonymousAuthor(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	out := f.engine.Dispatch(ctx, CreateThread{Title: "T", Content: "C"})
	require.NoError(t, out.Err)
	assert.Equal(t, Authoritative, out.Strategy)

	req, ok := f.backend.LastRequest(http.MethodPost, "/threads")
	require.True(t, ok)
	assert.JSONEq(t, `{"title":"T","content":"C","user":"anonymous","comments":[]}`, string(req.Body))

	threads := f.repos.Threads.Snapshot()
	require.Len(t, threads, 1)
	assert.Equal(t, out.ID, threads[0].Id)
	assert.Equal(t, "anonymous", threads[0].Author)
}

func TestCreateThread_PrependsAndValidates(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.seed(t, thread("t1", "Old"))

	*f.user = "alice"
	out := f.engine.Dispatch(ctx, CreateThread{Title: "New", Content: "C"})
	require.NoError(t, out.Err)
	threads := f.repos.Threads.Snapshot()
	assert.Equal(t, []string{out.ID, "t1"}, ids(threads))
	assert.Equal(t, "alice", threads[0].Author)

	out = f.engine.Dispatch(ctx, CreateThread{Title: "No content"})
	assert.ErrorIs(t, out.Err, internal_errors.ErrValidation)
	assert.Equal(t, 1, f.backend.Count(http.MethodPost, "/threads"), "validation blocks the call")
}

func TestAddComment_ShowsRefetchNotSplice(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.seed(t, thread("t1", "Exams"), thread("t2", "Labs"))

	// the backend accepts the comment but the next listing does not show it
	stale := []api.ThreadRecord{thread("t2", "Labs")}
	f.backend.ThreadsOverride = func() []api.ThreadRecord { return stale }

	out := f.engine.Dispatch(ctx, AddComment{ThreadID: "t1", Content: "hello"})
	require.NoError(t, out.Err)

	assert.Equal(t, api.ThreadsToDomain(stale), f.repos.Threads.Snapshot())
	assert.Equal(t, 2, f.backend.Count(http.MethodGet, "/threads"))
}

func TestAddComment_Success(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.seed(t, thread("t1", "Exams"))
	*f.user = "carol"

	out := f.engine.Dispatch(ctx, AddComment{ThreadID: "t1", Content: "hello"})
	require.NoError(t, out.Err)

	req, _ := f.backend.LastRequest(http.MethodPost, "/threads/t1/comments")
	assert.JSONEq(t, `{"user":"carol","content":"hello","replies":[]}`, string(req.Body))

	got, ok := f.repos.Threads.Get("t1")
	require.True(t, ok)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, "hello", got.Comments[1].Content)
}

func TestDeleteComment_Refetches(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.seed(t, thread("t1", "Exams"))

	out := f.engine.Dispatch(ctx, DeleteComment{ThreadID: "t1", CommentID: "t1-c1"})
	require.NoError(t, out.Err)

	got, _ := f.repos.Threads.Get("t1")
	assert.Empty(t, got.Comments)
}

func TestCommentChange_RefetchFailureIsNotAFailure(t *testing.T) {
	tests := []struct {
		name   string
		intent Intent
		method string
		path   string
	}{
		{"add comment", AddComment{ThreadID: "t1", Content: "hello"}, http.MethodPost, "/threads/t1/comments"},
		{"delete comment", DeleteComment{ThreadID: "t1", CommentID: "t1-c1"}, http.MethodDelete, "/threads/t1/comments/t1-c1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := setup(t)
			f.seed(t, thread("t1", "Exams"))
			before := f.repos.Threads.Snapshot()

			f.backend.Fail(http.MethodGet, "/threads", http.StatusInternalServerError)
			out := f.engine.Dispatch(ctx, tt.intent)

			assert.True(t, out.OK(), "the backend accepted the change, so a resubmit would duplicate it")
			assert.NoError(t, out.Err)
			assert.Equal(t, 1, f.backend.Count(tt.method, tt.path))
			assert.Equal(t, before, f.repos.Threads.Snapshot())
		})
	}
}

func TestToggleLike_SelectsAction(t *testing.T) {
	tests := []struct {
		name      string
		likedBy   []string
		wantPath  string
		wantCount int
		wantLiked bool
	}{
		{name: "not yet liked calls like", likedBy: nil, wantPath: "/threads/t1/like", wantCount: 1, wantLiked: true},
		{name: "liked by others calls like", likedBy: []string{"bob"}, wantPath: "/threads/t1/like", wantCount: 2, wantLiked: true},
		{name: "already liked calls unlike", likedBy: []string{"bob", "alice"}, wantPath: "/threads/t1/unlike", wantCount: 1, wantLiked: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := setup(t)
			*f.user = "alice"
			f.seed(t, thread("t1", "Exams", tt.likedBy...))

			out := f.engine.Dispatch(ctx, ToggleLike{ThreadID: "t1"})
			require.NoError(t, out.Err)

			require.Len(t, f.backend.Requests(), 2)
			last := f.backend.Requests()[1]
			assert.Equal(t, tt.wantPath, last.Path)
			assert.Equal(t, "username=alice", last.Query)

			got, _ := f.repos.Threads.Get("t1")
			assert.Equal(t, tt.wantCount, got.LikeCount)
			assert.Equal(t, tt.wantLiked, got.LikedByUser("alice"))
			assert.Equal(t, tt.wantLiked, f.repos.Liked.Contains("t1"))
		})
	}
}

func TestToggleLike_RepeatedTogglesStayConsistent(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	*f.user = "alice"
	f.seed(t, thread("t1", "Exams", "bob"))

	for i := 0; i < 5; i++ {
		require.NoError(t, f.engine.Dispatch(ctx, ToggleLike{ThreadID: "t1"}).Err)
		got, _ := f.repos.Threads.Get("t1")
		assert.Equal(t, len(got.LikedBy), got.LikeCount)
		assert.Equal(t, i%2 == 0, got.LikedByUser("alice"))
	}
}

func TestToggleLike_TakesServerCount(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	*f.user = "alice"
	f.seed(t, thread("t1", "Exams"))

	// the backend has a like the client never fetched
	f.backend.Threads[0].LikedBy = []string{"x"}
	require.NoError(t, f.engine.Dispatch(ctx, ToggleLike{ThreadID: "t1"}).Err)

	got, _ := f.repos.Threads.Get("t1")
	assert.Equal(t, []string{"x", "alice"}, got.LikedBy)
	assert.Equal(t, 2, got.LikeCount, "the backend's answer is applied as-is")
}

func TestToggleLike_UnknownThread(t *testing.T) {
	f := setup(t)
	out := f.engine.Dispatch(context.Background(), ToggleLike{ThreadID: "missing"})
	assert.ErrorIs(t, out.Err, internal_errors.ErrValidation)
	assert.Empty(t, f.backend.Requests())
}

func TestDeleteThread_Cascades(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	*f.user = "alice"
	f.seed(t, thread("t1", "A"), thread("t2", "B", "alice"), thread("t3", "C"))
	require.NoError(t, f.engine.Dispatch(ctx, AddReply{ThreadID: "t2", CommentID: "t2-c1", Content: "local"}).Err)
	f.repos.Liked.Set(ctx, "t2", true)
	before := f.repos.Threads.Snapshot()

	out := f.engine.Dispatch(ctx, DeleteThread{ThreadID: "t2"})
	require.NoError(t, out.Err)

	assert.Equal(t, []domain.Thread{before[0], before[2]}, f.repos.Threads.Snapshot())
	assert.False(t, f.repos.Liked.Contains("t2"))
}

func TestAddReply_LocalOnly(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.seed(t, thread("t1", "A"), thread("t2", "B"))
	before := f.repos.Threads.Snapshot()
	requests := len(f.backend.Requests())

	out := f.engine.Dispatch(ctx, AddReply{ThreadID: "t1", CommentID: "t1-c1", Content: "first"})
	require.NoError(t, out.Err)
	assert.Equal(t, LocalOptimistic, out.Strategy)
	out2 := f.engine.Dispatch(ctx, AddReply{ThreadID: "t1", CommentID: "t1-c1", Content: "second"})
	require.NoError(t, out2.Err)

	assert.Len(t, f.backend.Requests(), requests, "replies never reach the backend")

	after := f.repos.Threads.Snapshot()
	replies := after[0].Comments[0].Replies
	require.Len(t, replies, 2)
	assert.Equal(t, domain.Reply{Id: out2.ID, Author: "anonymous", Content: "second"}, replies[0])
	assert.Equal(t, out.ID, replies[1].Id)
	assert.NotEqual(t, out.ID, out2.ID)
	assert.Equal(t, before[1], after[1])

	// the mirror holds the overlay
	var mirrored []domain.Thread
	require.NoError(t, localstore.GetJSON(ctx, f.store, localstore.KeyThreads, &mirrored))
	assert.Len(t, mirrored[0].Comments[0].Replies, 2)

	// a reload drops it
	require.NoError(t, f.engine.Dispatch(ctx, Refresh{Feed: FeedThreads}).Err)
	assert.Empty(t, f.repos.Threads.Snapshot()[0].Comments[0].Replies)
}

func TestAddReply_Rejected(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.seed(t, thread("t1", "A"))
	before := f.repos.Threads.Snapshot()

	for _, in := range []AddReply{
		{ThreadID: "t1", CommentID: "t1-c1", Content: "  "},
		{ThreadID: "t1", CommentID: "nope", Content: "x"},
		{ThreadID: "nope", CommentID: "t1-c1", Content: "x"},
	} {
		out := f.engine.Dispatch(ctx, in)
		assert.ErrorIs(t, out.Err, internal_errors.ErrValidation)
	}
	assert.Equal(t, before, f.repos.Threads.Snapshot())
}

func TestAddReply_IDFailure(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.seed(t, thread("t1", "A"))
	f.engine.strategies[LocalOptimistic].(*localOptimistic).newID = func() (string, error) {
		return "", errors.New("clock went backwards")
	}

	out := f.engine.Dispatch(ctx, AddReply{ThreadID: "t1", CommentID: "t1-c1", Content: "x"})
	assert.Error(t, out.Err)
	assert.Empty(t, f.repos.Threads.Snapshot()[0].Comments[0].Replies)
}

func TestFailuresLeaveRepositoryUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		pattern string
		intent  Intent
	}{
		{name: "create thread", method: http.MethodPost, pattern: "/threads", intent: CreateThread{Title: "T", Content: "C"}},
		{name: "delete thread", method: http.MethodDelete, pattern: "/threads/{id}", intent: DeleteThread{ThreadID: "t1"}},
		{name: "add comment", method: http.MethodPost, pattern: "/threads/{id}/comments", intent: AddComment{ThreadID: "t1", Content: "x"}},
		{name: "delete comment", method: http.MethodDelete, pattern: "/threads/{id}/comments/{commentId}", intent: DeleteComment{ThreadID: "t1", CommentID: "t1-c1"}},
		{name: "like", method: http.MethodPost, pattern: "/threads/{id}/like", intent: ToggleLike{ThreadID: "t1"}},
		{name: "refresh", method: http.MethodGet, pattern: "/threads", intent: Refresh{Feed: FeedThreads}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := setup(t)
			f.seed(t, thread("t1", "A"), thread("t2", "B"))
			require.NoError(t, f.engine.Dispatch(ctx, AddReply{ThreadID: "t1", CommentID: "t1-c1", Content: "local"}).Err)
			before := f.repos.Threads.Snapshot()
			mirrorBefore, err := f.store.Get(ctx, localstore.KeyThreads)
			require.NoError(t, err)

			f.backend.Fail(tt.method, tt.pattern, http.StatusInternalServerError)
			out := f.engine.Dispatch(ctx, tt.intent)

			require.Error(t, out.Err)
			assert.False(t, out.OK())
			assert.ErrorIs(t, out.Err, internal_errors.ErrNetwork)
			assert.Equal(t, before, f.repos.Threads.Snapshot())
			mirrorAfter, _ := f.store.Get(ctx, localstore.KeyThreads)
			assert.Equal(t, mirrorBefore, mirrorAfter)
		})
	}
}

func TestFeeds(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	*f.user = "alice"
	f.backend.Notes = []api.NoteRecord{{Identity: api.Identity{PlainId: "n0"}, Title: "Old", FileName: "old.pdf"}}

	require.NoError(t, f.engine.EnsureLoaded(ctx, FeedNotes).Err)
	require.NoError(t, f.engine.EnsureLoaded(ctx, FeedNotes).Err)
	assert.Equal(t, 1, f.backend.Count(http.MethodGet, "/notes"), "second view reuses the loaded feed")

	out := f.engine.Dispatch(ctx, CreateNote{Title: "Joins", FileName: "joins.pdf", Tags: []string{"DBMS"}})
	require.NoError(t, out.Err)
	req, _ := f.backend.LastRequest(http.MethodPost, "/notes")
	assert.JSONEq(t, `{"title":"Joins","file_url":"","file_name":"joins.pdf","tags":["DBMS"],"uploader":"alice"}`, string(req.Body))
	notes := f.repos.Notes.Snapshot()
	require.Len(t, notes, 2)
	assert.Equal(t, "Joins", notes[0].Title)

	require.NoError(t, f.engine.Dispatch(ctx, DeleteNote{ID: out.ID}).Err)
	assert.Len(t, f.repos.Notes.Snapshot(), 1)

	out = f.engine.Dispatch(ctx, CreateJob{Title: "SWE", Company: "Acme", Link: "http://acme"})
	require.NoError(t, out.Err)
	var job api.CreateJobRequest
	req, _ = f.backend.LastRequest(http.MethodPost, "/jobs")
	require.NoError(t, json.Unmarshal(req.Body, &job))
	assert.Equal(t, "alice", job.Referrer)
	assert.Equal(t, out.ID, f.repos.Jobs.Snapshot()[0].Id)
	require.NoError(t, f.engine.Dispatch(ctx, DeleteJob{ID: out.ID}).Err)
	assert.Empty(t, f.repos.Jobs.Snapshot())

	out = f.engine.Dispatch(ctx, CreatePaper{Subject: "DBMS", Year: "2023"})
	assert.ErrorIs(t, out.Err, internal_errors.ErrValidation)
	assert.Equal(t, "All fields are required", internal_errors.Message(out.Err))

	out = f.engine.Dispatch(ctx, CreatePaper{Subject: "DBMS", Year: "2023", Link: "http://p"})
	require.NoError(t, out.Err)
	require.NoError(t, f.engine.Dispatch(ctx, DeletePaper{ID: out.ID}).Err)
	assert.Empty(t, f.repos.Papers.Snapshot())

	f.backend.Fail(http.MethodPost, "/jobs", http.StatusBadGateway)
	out = f.engine.Dispatch(ctx, CreateJob{Title: "X", Company: "Y", Link: "http://z"})
	assert.ErrorIs(t, out.Err, internal_errors.ErrNetwork)
	assert.Empty(t, f.repos.Jobs.Snapshot())
}

func TestOutcomeMetrics(t *testing.T) {
	f := setup(t)
	before := testutil.ToFloat64(outcomesTotal.WithLabelValues("toggle_like", "authoritative", "failed"))

	f.engine.Dispatch(context.Background(), ToggleLike{ThreadID: "missing"})

	after := testutil.ToFloat64(outcomesTotal.WithLabelValues("toggle_like", "authoritative", "failed"))
	assert.Equal(t, before+1, after)
}

func TestLikeAction(t *testing.T) {
	th := domain.Thread{LikedBy: []string{"bob"}}
	assert.Equal(t, "like", LikeAction(th, "alice"))
	assert.Equal(t, "unlike", LikeAction(th, "bob"))
}

func ids(ts []domain.Thread) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Id
	}
	return out
}
