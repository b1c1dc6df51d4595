// Package fakebackend is an in-process stand-in for the REST backend, used by
// tests across the frontend packages.
package fakebackend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/studentcollab/collabhub/shared/api"
)

// Request is one call the backend received.
type Request struct {
	Method        string
	Path          string
	Query         string
	Body          []byte
	Authorization string
}

type Backend struct {
	Server *httptest.Server

	mu        sync.Mutex
	Users     map[string]api.UserResponse
	Passwords map[string]string
	Tokens    map[string]string // username -> token issued at login
	Threads   []api.ThreadRecord
	Notes     []api.NoteRecord
	Jobs      []api.JobRecord
	Papers    []api.PaperRecord
	requests  []Request
	failures  map[string]int
	// ThreadsOverride, when set, replaces the body of GET /threads.
	ThreadsOverride func() []api.ThreadRecord
	nextID          int
}

// New starts a backend that is shut down when the test ends.
func New(t testing.TB) *Backend {
	b := &Backend{
		Users:     map[string]api.UserResponse{},
		Passwords: map[string]string{},
		Tokens:    map[string]string{},
		failures:  map[string]int{},
	}
	b.Server = httptest.NewServer(b.router())
	t.Cleanup(b.Server.Close)
	return b
}

func (b *Backend) URL() string { return b.Server.URL }

// AddUser registers an account that can log in.
func (b *Backend) AddUser(u api.UserResponse, password, token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Users[u.Username] = u
	b.Passwords[u.Username] = password
	b.Tokens[u.Username] = token
}

// Fail makes every request matching method and route pattern answer status.
// Status 0 removes the failure.
func (b *Backend) Fail(method, pattern string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := method + " " + pattern
	if status == 0 {
		delete(b.failures, key)
		return
	}
	b.failures[key] = status
}

// Requests returns a copy of everything received so far.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.requests)
}

// LastRequest returns the most recent request matching method and path.
func (b *Backend) LastRequest(method, path string) (Request, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.requests) - 1; i >= 0; i-- {
		if r := b.requests[i]; r.Method == method && r.Path == path {
			return r, true
		}
	}
	return Request{}, false
}

// Count returns how many requests matched method and path.
func (b *Backend) Count(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, r := range b.requests {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (b *Backend) newID(prefix string) string {
	b.nextID++
	return fmt.Sprintf("%s%d", prefix, b.nextID)
}

func (b *Backend) route(r chi.Router, method, pattern string, h func(w http.ResponseWriter, r *http.Request, body []byte)) {
	r.MethodFunc(method, pattern, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Body:          body,
			Authorization: r.Header.Get("Authorization"),
		})
		status, failing := b.failures[method+" "+pattern]
		b.mu.Unlock()

		if failing {
			writeJSON(w, status, api.ErrorResponse{Detail: "forced failure"})
			return
		}
		h(w, r, body)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (b *Backend) router() http.Handler {
	r := chi.NewRouter()

	b.route(r, http.MethodPost, "/login", b.login)
	b.route(r, http.MethodPost, "/signup", b.signup)
	b.route(r, http.MethodGet, "/users/{username}", b.getUser)
	b.route(r, http.MethodPut, "/users/{username}", b.putUser)

	b.route(r, http.MethodGet, "/threads", b.getThreads)
	b.route(r, http.MethodPost, "/threads", b.createThread)
	b.route(r, http.MethodDelete, "/threads/{id}", b.deleteThread)
	b.route(r, http.MethodPost, "/threads/{id}/comments", b.createComment)
	b.route(r, http.MethodDelete, "/threads/{id}/comments/{commentId}", b.deleteComment)
	b.route(r, http.MethodPost, "/threads/{id}/like", b.like(true))
	b.route(r, http.MethodPost, "/threads/{id}/unlike", b.like(false))

	b.route(r, http.MethodGet, "/notes", func(w http.ResponseWriter, r *http.Request, _ []byte) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, nonNil(b.Notes))
	})
	b.route(r, http.MethodPost, "/notes", func(w http.ResponseWriter, r *http.Request, body []byte) {
		var rec api.NoteRecord
		if json.Unmarshal(body, &rec) != nil {
			http.Error(w, "bad json", http.StatusUnprocessableEntity)
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		rec.PlainId = b.newID("n")
		b.Notes = append(b.Notes, rec)
		writeJSON(w, http.StatusOK, rec)
	})
	b.route(r, http.MethodDelete, "/notes/{id}", func(w http.ResponseWriter, r *http.Request, _ []byte) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.Notes = removeByID(b.Notes, chi.URLParam(r, "id"), func(n api.NoteRecord) string { return n.Id() })
		writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
	})

	b.route(r, http.MethodGet, "/jobs", func(w http.ResponseWriter, r *http.Request, _ []byte) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, nonNil(b.Jobs))
	})
	b.route(r, http.MethodPost, "/jobs", func(w http.ResponseWriter, r *http.Request, body []byte) {
		var rec api.JobRecord
		if json.Unmarshal(body, &rec) != nil {
			http.Error(w, "bad json", http.StatusUnprocessableEntity)
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		rec.PlainId = b.newID("j")
		b.Jobs = append(b.Jobs, rec)
		writeJSON(w, http.StatusOK, rec)
	})
	b.route(r, http.MethodDelete, "/jobs/{id}", func(w http.ResponseWriter, r *http.Request, _ []byte) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.Jobs = removeByID(b.Jobs, chi.URLParam(r, "id"), func(j api.JobRecord) string { return j.Id() })
		writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
	})

	b.route(r, http.MethodGet, "/question-papers", func(w http.ResponseWriter, r *http.Request, _ []byte) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, nonNil(b.Papers))
	})
	b.route(r, http.MethodPost, "/question-papers", func(w http.ResponseWriter, r *http.Request, body []byte) {
		var rec api.PaperRecord
		if json.Unmarshal(body, &rec) != nil {
			http.Error(w, "bad json", http.StatusUnprocessableEntity)
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		rec.MongoId = b.newID("p")
		b.Papers = append(b.Papers, rec)
		writeJSON(w, http.StatusOK, rec)
	})
	b.route(r, http.MethodDelete, "/question-papers/{id}", func(w http.ResponseWriter, r *http.Request, _ []byte) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.Papers = removeByID(b.Papers, chi.URLParam(r, "id"), func(p api.PaperRecord) string { return p.Id() })
		writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
	})

	return r
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request, body []byte) {
	var req api.LoginRequest
	if json.Unmarshal(body, &req) != nil {
		http.Error(w, "bad json", http.StatusUnprocessableEntity)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	pw, ok := b.Passwords[req.Username]
	if !ok || pw != req.Password {
		writeJSON(w, http.StatusUnauthorized, api.ErrorResponse{Detail: "Invalid username or password"})
		return
	}
	writeJSON(w, http.StatusOK, api.LoginResponse{AccessToken: b.Tokens[req.Username]})
}

func (b *Backend) signup(w http.ResponseWriter, r *http.Request, body []byte) {
	var req api.SignupRequest
	if json.Unmarshal(body, &req) != nil {
		http.Error(w, "bad json", http.StatusUnprocessableEntity)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.Users[req.Username]; exists {
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Detail: "Username already registered"})
		return
	}
	b.Users[req.Username] = api.UserResponse{Name: req.Name, Username: req.Username, Skills: []string{}}
	b.Passwords[req.Username] = req.Password
	b.Tokens[req.Username] = "token-" + req.Username
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User created"})
}

func (b *Backend) getUser(w http.ResponseWriter, r *http.Request, _ []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.Users[chi.URLParam(r, "username")]
	if !ok {
		writeJSON(w, http.StatusNotFound, api.ErrorResponse{Detail: "User not found"})
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (b *Backend) putUser(w http.ResponseWriter, r *http.Request, body []byte) {
	var req api.UpdateProfileRequest
	if json.Unmarshal(body, &req) != nil {
		http.Error(w, "bad json", http.StatusUnprocessableEntity)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	username := chi.URLParam(r, "username")
	u, ok := b.Users[username]
	if !ok {
		writeJSON(w, http.StatusNotFound, api.ErrorResponse{Detail: "User not found"})
		return
	}
	u.Name, u.Bio, u.Skills = req.Name, req.Bio, req.Skills
	b.Users[username] = u
	writeJSON(w, http.StatusOK, u)
}

func (b *Backend) getThreads(w http.ResponseWriter, r *http.Request, _ []byte) {
	b.mu.Lock()
	override := b.ThreadsOverride
	if override == nil {
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, nonNil(b.Threads))
		return
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, override())
}

func (b *Backend) createThread(w http.ResponseWriter, r *http.Request, body []byte) {
	var req api.CreateThreadRequest
	if json.Unmarshal(body, &req) != nil {
		http.Error(w, "bad json", http.StatusUnprocessableEntity)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	rec := api.ThreadRecord{
		Identity: api.Identity{MongoId: b.newID("t")},
		Title:    req.Title,
		Content:  req.Content,
		User:     req.User,
		Comments: []api.CommentRecord{},
		LikedBy:  []string{},
	}
	b.Threads = append(b.Threads, rec)
	writeJSON(w, http.StatusOK, rec)
}

func (b *Backend) threadIndex(id string) int {
	return slices.IndexFunc(b.Threads, func(t api.ThreadRecord) bool { return t.Id() == id })
}

func (b *Backend) deleteThread(w http.ResponseWriter, r *http.Request, _ []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.threadIndex(chi.URLParam(r, "id"))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, api.ErrorResponse{Detail: "Thread not found"})
		return
	}
	b.Threads = slices.Delete(b.Threads, i, i+1)
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (b *Backend) createComment(w http.ResponseWriter, r *http.Request, body []byte) {
	var req api.CreateCommentRequest
	if json.Unmarshal(body, &req) != nil {
		http.Error(w, "bad json", http.StatusUnprocessableEntity)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.threadIndex(chi.URLParam(r, "id"))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, api.ErrorResponse{Detail: "Thread not found"})
		return
	}
	c := api.CommentRecord{Identity: api.Identity{PlainId: b.newID("c")}, User: req.User, Content: req.Content, Replies: []api.ReplyRecord{}}
	b.Threads[i].Comments = append(b.Threads[i].Comments, c)
	writeJSON(w, http.StatusOK, c)
}

func (b *Backend) deleteComment(w http.ResponseWriter, r *http.Request, _ []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.threadIndex(chi.URLParam(r, "id"))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, api.ErrorResponse{Detail: "Thread not found"})
		return
	}
	b.Threads[i].Comments = removeByID(b.Threads[i].Comments, chi.URLParam(r, "commentId"), func(c api.CommentRecord) string { return c.Id() })
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (b *Backend) like(add bool) func(w http.ResponseWriter, r *http.Request, _ []byte) {
	return func(w http.ResponseWriter, r *http.Request, _ []byte) {
		b.mu.Lock()
		defer b.mu.Unlock()
		i := b.threadIndex(chi.URLParam(r, "id"))
		if i < 0 {
			writeJSON(w, http.StatusNotFound, api.ErrorResponse{Detail: "Thread not found"})
			return
		}
		username := r.URL.Query().Get("username")
		t := &b.Threads[i]
		has := slices.Contains(t.LikedBy, username)
		switch {
		case add && !has:
			t.LikedBy = append(t.LikedBy, username)
		case !add && has:
			t.LikedBy = slices.DeleteFunc(t.LikedBy, func(u string) bool { return u == username })
		}
		t.Likes = len(t.LikedBy)
		writeJSON(w, http.StatusOK, t)
	}
}

func removeByID[T any](items []T, id string, key func(T) string) []T {
	return slices.DeleteFunc(items, func(it T) bool { return key(it) == id })
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return slices.Clone(items)
}
