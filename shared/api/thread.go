package api

import "github.com/studentcollab/collabhub/shared/domain"

// Request DTOs

type CreateThreadRequest struct {
	Title    string          `json:"title" validate:"required"`
	Content  string          `json:"content" validate:"required"`
	User     string          `json:"user"`
	Comments []CommentRecord `json:"comments"`
}

type CreateCommentRequest struct {
	User    string        `json:"user"`
	Content string        `json:"content" validate:"required"`
	Replies []ReplyRecord `json:"replies"`
}

// Wire records

type ThreadRecord struct {
	Identity
	Title    string          `json:"title"`
	Content  string          `json:"content"`
	User     string          `json:"user"`
	Comments []CommentRecord `json:"comments"`
	Likes    int             `json:"likes"`
	LikedBy  []string        `json:"liked_by"`
}

type CommentRecord struct {
	Identity
	User    string        `json:"user"`
	Content string        `json:"content"`
	Replies []ReplyRecord `json:"replies"`
}

type ReplyRecord struct {
	Identity
	User    string `json:"user"`
	Content string `json:"content"`
}

// ToDomain remaps the backend identity and normalises likes: the count is
// taken as sent (clamped at zero) and likedBy loses duplicates.
func (r ThreadRecord) ToDomain() domain.Thread {
	t := domain.Thread{
		Id:        r.Id(),
		Title:     r.Title,
		Content:   r.Content,
		Author:    r.User,
		Comments:  make([]domain.Comment, len(r.Comments)),
		LikeCount: max(r.Likes, 0),
		LikedBy:   dedupe(r.LikedBy),
	}
	for i, c := range r.Comments {
		t.Comments[i] = c.ToDomain()
	}
	return t
}

func (r CommentRecord) ToDomain() domain.Comment {
	c := domain.Comment{
		Id:      r.Id(),
		Author:  r.User,
		Content: r.Content,
		Replies: make([]domain.Reply, len(r.Replies)),
	}
	for i, rep := range r.Replies {
		c.Replies[i] = domain.Reply{Id: rep.Id(), Author: rep.User, Content: rep.Content}
	}
	return c
}

func ThreadsToDomain(records []ThreadRecord) []domain.Thread {
	threads := make([]domain.Thread, len(records))
	for i, r := range records {
		threads[i] = r.ToDomain()
	}
	return threads
}

func dedupe(users []string) []string {
	out := make([]string, 0, len(users))
	seen := make(map[string]struct{}, len(users))
	for _, u := range users {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
