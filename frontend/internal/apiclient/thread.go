package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/studentcollab/collabhub/shared/api"
	"github.com/studentcollab/collabhub/shared/domain"
)

func (c *APIClient) GetThreads(ctx context.Context) ([]domain.Thread, error) {
	var records []api.ThreadRecord
	if err := c.call(ctx, http.MethodGet, "/threads", nil, &records, "get threads"); err != nil {
		return nil, err
	}
	return api.ThreadsToDomain(records), nil
}

// CreateThread posts a new thread and returns the backend's record of it.
func (c *APIClient) CreateThread(ctx context.Context, req api.CreateThreadRequest) (domain.Thread, error) {
	if req.Comments == nil {
		req.Comments = []api.CommentRecord{}
	}
	var record api.ThreadRecord
	if err := c.call(ctx, http.MethodPost, "/threads", req, &record, "create thread"); err != nil {
		return domain.Thread{}, err
	}
	return record.ToDomain(), nil
}

func (c *APIClient) DeleteThread(ctx context.Context, threadID domain.ThreadId) error {
	return c.call(ctx, http.MethodDelete, "/threads/"+pathEscape(threadID), nil, nil, "delete thread")
}

// CreateComment posts a comment. The response body is ignored: callers
// re-fetch the thread list to see the result.
func (c *APIClient) CreateComment(ctx context.Context, threadID domain.ThreadId, req api.CreateCommentRequest) error {
	if req.Replies == nil {
		req.Replies = []api.ReplyRecord{}
	}
	path := fmt.Sprintf("/threads/%s/comments", pathEscape(threadID))
	return c.call(ctx, http.MethodPost, path, req, nil, "create comment")
}

func (c *APIClient) DeleteComment(ctx context.Context, threadID domain.ThreadId, commentID domain.CommentId) error {
	path := fmt.Sprintf("/threads/%s/comments/%s", pathEscape(threadID), pathEscape(commentID))
	return c.call(ctx, http.MethodDelete, path, nil, nil, "delete comment")
}

func (c *APIClient) LikeThread(ctx context.Context, threadID domain.ThreadId, username string) (domain.Thread, error) {
	return c.likeOrUnlike(ctx, "like", threadID, username)
}

func (c *APIClient) UnlikeThread(ctx context.Context, threadID domain.ThreadId, username string) (domain.Thread, error) {
	return c.likeOrUnlike(ctx, "unlike", threadID, username)
}

func (c *APIClient) likeOrUnlike(ctx context.Context, action string, threadID domain.ThreadId, username string) (domain.Thread, error) {
	path := fmt.Sprintf("/threads/%s/%s?username=%s", pathEscape(threadID), action, url.QueryEscape(username))
	var record api.ThreadRecord
	if err := c.call(ctx, http.MethodPost, path, nil, &record, action+" thread"); err != nil {
		return domain.Thread{}, err
	}
	return record.ToDomain(), nil
}
