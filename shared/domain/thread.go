package domain

import "slices"

type (
	ThreadId  = string
	CommentId = string
	ReplyId   = string
)

// Thread is a top-level discussion post. Identity is server-assigned.
type Thread struct {
	Id        ThreadId
	Title     string
	Content   string
	Author    string
	Comments  []Comment
	LikeCount int
	LikedBy   []string // no duplicates; order as returned by the backend
}

// Comment belongs to exactly one Thread. Identity is server-assigned.
type Comment struct {
	Id      CommentId
	Author  string
	Content string
	Replies []Reply // newest first
}

// Reply is a client-only annotation on a Comment. Its id is generated
// locally and never reconciled with the backend.
type Reply struct {
	Id      ReplyId
	Author  string
	Content string
}

// LikedByUser reports whether username is in the thread's likedBy set.
func (t *Thread) LikedByUser(username string) bool {
	return slices.Contains(t.LikedBy, username)
}

// Comment returns the comment with the given id.
func (t *Thread) Comment(id CommentId) (*Comment, bool) {
	for i := range t.Comments {
		if t.Comments[i].Id == id {
			return &t.Comments[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy; mutating the copy never touches t.
func (t Thread) Clone() Thread {
	out := t
	out.LikedBy = slices.Clone(t.LikedBy)
	if t.Comments != nil {
		out.Comments = make([]Comment, len(t.Comments))
		for i, c := range t.Comments {
			out.Comments[i] = c.Clone()
		}
	}
	return out
}

func (c Comment) Clone() Comment {
	out := c
	out.Replies = slices.Clone(c.Replies)
	return out
}
