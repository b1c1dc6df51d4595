package frontend_domain

import (
	"html/template"

	"github.com/studentcollab/collabhub/shared/domain"
)

// Thread wraps domain.Thread with rendered content. Content is overwritten
// for HTML safety.
type Thread struct {
	domain.Thread
	Content   template.HTML
	Comments  []*Comment
	LikedByMe bool
}

type Comment struct {
	domain.Comment
	Content template.HTML
	Replies []*Reply
}

type Reply struct {
	domain.Reply
	Content template.HTML
}
