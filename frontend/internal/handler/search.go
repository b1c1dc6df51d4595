package handler

import (
	"net/http"

	"github.com/studentcollab/collabhub/frontend/internal/search"
	"github.com/studentcollab/collabhub/shared/api"
	"github.com/studentcollab/collabhub/shared/domain"
	"github.com/studentcollab/collabhub/shared/utils"
)

// The live-search endpoints filter what is already in memory and never call
// the backend.

func (h *Handler) SearchThreadsHandler(w http.ResponseWriter, r *http.Request) {
	threads := search.Threads(h.Engine.Repos().Threads.Snapshot(), r.URL.Query().Get("q"))
	out := make([]api.ThreadRecord, len(threads))
	for i, t := range threads {
		out[i] = threadRecord(t)
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) SearchNotesHandler(w http.ResponseWriter, r *http.Request) {
	notes := search.Notes(h.Engine.Repos().Notes.Snapshot(), r.URL.Query().Get("q"))
	out := make([]api.NoteRecord, len(notes))
	for i, n := range notes {
		out[i] = api.NoteRecord{Identity: api.Identity{PlainId: n.Id}, Title: n.Title, FileURL: n.FileURL, FileName: n.FileName, Tags: n.Tags, Uploader: n.Uploader}
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) SearchJobsHandler(w http.ResponseWriter, r *http.Request) {
	jobs := search.Jobs(h.Engine.Repos().Jobs.Snapshot(), r.URL.Query().Get("q"))
	out := make([]api.JobRecord, len(jobs))
	for i, j := range jobs {
		out[i] = api.JobRecord{Identity: api.Identity{PlainId: j.Id}, Title: j.Title, Company: j.Company, Link: j.Link, Referrer: j.Referrer}
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

func threadRecord(t domain.Thread) api.ThreadRecord {
	rec := api.ThreadRecord{
		Identity: api.Identity{PlainId: t.Id},
		Title:    t.Title,
		Content:  t.Content,
		User:     t.Author,
		Comments: make([]api.CommentRecord, len(t.Comments)),
		Likes:    t.LikeCount,
		LikedBy:  t.LikedBy,
	}
	for i, c := range t.Comments {
		replies := make([]api.ReplyRecord, len(c.Replies))
		for j, reply := range c.Replies {
			replies[j] = api.ReplyRecord{Identity: api.Identity{PlainId: reply.Id}, User: reply.Author, Content: reply.Content}
		}
		rec.Comments[i] = api.CommentRecord{Identity: api.Identity{PlainId: c.Id}, User: c.Author, Content: c.Content, Replies: replies}
	}
	return rec
}
