package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/studentcollab/collabhub/frontend/internal/fakebackend"
	"github.com/studentcollab/collabhub/frontend/internal/setup"
	"github.com/studentcollab/collabhub/shared/api"
	"github.com/studentcollab/collabhub/shared/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csrfToken = "test-csrf-token"

type app struct {
	t       *testing.T
	backend *fakebackend.Backend
	server  *httptest.Server
	client  *http.Client
}

func newApp(t *testing.T) *app {
	t.Helper()
	b := fakebackend.New(t)
	b.AddUser(api.UserResponse{Username: "alice", Name: "Alice", Bio: "hi", Skills: []string{"SOFTWARE"}}, "x", "t1")

	cfg := config.New(config.Public{ApiURL: b.URL(), Storage: config.Storage{Driver: "memory"}}, "")
	deps, err := setup.SetupDependencies(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Close() })

	srv := httptest.NewServer(SetupRouter(deps))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	u, _ := url.Parse(srv.URL)
	jar.SetCookies(u, []*http.Cookie{{Name: "csrf_token", Value: csrfToken, Path: "/"}})

	return &app{
		t:       t,
		backend: b,
		server:  srv,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (a *app) get(path string) (*http.Response, string) {
	a.t.Helper()
	resp, err := a.client.Get(a.server.URL + path)
	require.NoError(a.t, err)
	return resp, readBody(a.t, resp)
}

func (a *app) post(path string, form url.Values) (*http.Response, string) {
	a.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf_token", csrfToken)
	resp, err := a.client.PostForm(a.server.URL+path, form)
	require.NoError(a.t, err)
	return resp, readBody(a.t, resp)
}

func (a *app) login() {
	a.t.Helper()
	resp, _ := a.post("/login", url.Values{"username": {"alice"}, "password": {"x"}})
	require.Equal(a.t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(a.t, "/main", resp.Header.Get("Location"))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestGuardRedirects(t *testing.T) {
	a := newApp(t)

	for _, path := range []string{"/main", "/main/threads", "/main/notes", "/main/jobs", "/main/profile", "/previous-year-question-paper", "/api/threads", "/no/such/page"} {
		t.Run(path, func(t *testing.T) {
			resp, _ := a.get(path)
			assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
			assert.Equal(t, "/login", resp.Header.Get("Location"))
		})
	}

	resp, body := a.get("/login")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `name="username"`)
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}

func TestLoginFlow(t *testing.T) {
	a := newApp(t)

	resp, _ := a.post("/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	_, body := a.get("/login")
	assert.Contains(t, body, "Invalid credentials")
	assert.Contains(t, body, `value="alice"`, "username is prefilled after a failure")

	a.login()

	resp, body = a.get("/main")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Welcome, Alice")

	resp, _ = a.get("/login")
	assert.Equal(t, "/main", resp.Header.Get("Location"), "logged-in users skip the login page")

	resp, _ = a.post("/logout", nil)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	resp, _ = a.get("/main")
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestCSRFRequired(t *testing.T) {
	a := newApp(t)
	resp, err := a.client.PostForm(a.server.URL+"/login", url.Values{"username": {"alice"}, "password": {"x"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, a.backend.Count(http.MethodPost, "/login"))
}

func TestSignupAndForgotPassword(t *testing.T) {
	a := newApp(t)

	resp, _ := a.post("/signup", url.Values{"name": {"Bob"}, "username": {"bob"}, "password": {"pw"}})
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	_, body := a.get("/login")
	assert.Contains(t, body, "Signup successful! Please log in.")

	resp, body = a.post("/signup", url.Values{"name": {"Bob"}, "username": {"bob"}, "password": {"pw"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Username already registered")

	resp, body = a.post("/forgot-password", url.Values{"email": {"not-an-email"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "email must be a valid email")

	resp, _ = a.post("/forgot-password", url.Values{"email": {"bob@example.com"}})
	assert.Equal(t, "/forgot-password", resp.Header.Get("Location"))
	_, body = a.get("/forgot-password")
	assert.Contains(t, body, "If this email exists, a reset link has been sent.")
}

func TestThreadsPage(t *testing.T) {
	a := newApp(t)
	a.login()

	resp, body := a.get("/main/threads")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "No threads yet.")

	resp, _ = a.post("/main/threads", url.Values{"title": {"Exam dates"}, "content": {"Anyone **know**?"}})
	assert.Equal(t, "/main/threads", resp.Header.Get("Location"))
	req, ok := a.backend.LastRequest(http.MethodPost, "/threads")
	require.True(t, ok)
	assert.Equal(t, "Bearer t1", req.Authorization)
	assert.JSONEq(t, `{"title":"Exam dates","content":"Anyone **know**?","user":"alice","comments":[]}`, string(req.Body))

	threadID := a.backend.Threads[0].Id()
	resp, _ = a.post("/main/threads/"+threadID+"/comments", url.Values{"content": {"June 3rd"}})
	assert.Equal(t, "/main/threads#thread-"+threadID, resp.Header.Get("Location"))
	commentID := a.backend.Threads[0].Comments[0].Id()

	a.post("/main/threads/"+threadID+"/like", nil)
	a.post("/main/threads/"+threadID+"/comments/"+commentID+"/replies", url.Values{"content": {"thanks!"}})
	assert.Zero(t, a.backend.Count(http.MethodPost, "/threads/"+threadID+"/comments/"+commentID+"/replies"))

	_, body = a.get("/main/threads")
	assert.Contains(t, body, "Exam dates")
	assert.Contains(t, body, "<strong>know</strong>")
	assert.Contains(t, body, "June 3rd")
	assert.Contains(t, body, "thanks!")
	assert.Contains(t, body, "1 likes")
	assert.Contains(t, body, "Unlike")

	// a reload fetches from the backend and loses the local reply
	_, body = a.get("/main/threads?reload=1")
	assert.NotContains(t, body, "thanks!")
	assert.Contains(t, body, "June 3rd")

	_, body = a.get("/main/threads?q=nothing-matches")
	assert.NotContains(t, body, "Exam dates")

	resp, body = a.get("/api/threads?q=EXAM")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var found []api.ThreadRecord
	require.NoError(t, json.Unmarshal([]byte(body), &found))
	require.Len(t, found, 1)
	assert.Equal(t, threadID, found[0].Id())

	a.post("/main/threads/"+threadID+"/delete", nil)
	_, body = a.get("/main/threads")
	assert.NotContains(t, body, "Exam dates")
}

func TestThreadFailureIsFlashed(t *testing.T) {
	a := newApp(t)
	a.login()
	a.backend.Fail(http.MethodPost, "/threads", http.StatusInternalServerError)

	a.post("/main/threads", url.Values{"title": {"T"}, "content": {"C"}})
	_, body := a.get("/main/threads")
	assert.Contains(t, body, "Failed to create thread")

	a.post("/main/threads", url.Values{"title": {"T"}})
	_, body = a.get("/main/threads")
	assert.Contains(t, body, "content is required")
}

func TestFeedsPages(t *testing.T) {
	a := newApp(t)
	a.login()

	a.post("/main/notes", url.Values{"title": {"Joins"}, "file_name": {"joins.pdf"}, "tags": {"DBMS", "bogus"}})
	req, _ := a.backend.LastRequest(http.MethodPost, "/notes")
	assert.JSONEq(t, `{"title":"Joins","file_url":"","file_name":"joins.pdf","tags":["DBMS"],"uploader":"alice"}`, string(req.Body))
	_, body := a.get("/main/notes")
	assert.Contains(t, body, "Joins")
	assert.Contains(t, body, "AI &amp; ML", "tag options are offered")

	a.post("/main/jobs", url.Values{"title": {"SWE Intern"}, "company": {"Acme"}, "link": {"https://acme.example"}})
	_, body = a.get("/main/jobs")
	assert.Contains(t, body, "referred by alice")
	resp, body := a.get("/api/jobs?q=acme")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "SWE Intern")

	a.post("/previous-year-question-paper", url.Values{"subject": {"DBMS"}, "year": {"2023"}})
	_, body = a.get("/previous-year-question-paper")
	assert.Contains(t, body, "All fields are required")

	a.backend.Fail(http.MethodPost, "/question-papers", http.StatusInternalServerError)
	a.post("/previous-year-question-paper", url.Values{"subject": {"DBMS"}, "year": {"2023"}, "link": {"https://p.example"}})
	_, body = a.get("/previous-year-question-paper")
	assert.Contains(t, body, "Failed to add paper")

	a.backend.Fail(http.MethodPost, "/question-papers", 0)
	a.post("/previous-year-question-paper", url.Values{"subject": {"DBMS"}, "year": {"2023"}, "link": {"https://p.example"}})
	_, body = a.get("/previous-year-question-paper")
	assert.Contains(t, body, "<h2>DBMS</h2>")
}

func TestProfilePages(t *testing.T) {
	a := newApp(t)
	a.login()

	_, body := a.get("/main/profile")
	assert.Contains(t, body, "<h1>Alice</h1>")
	assert.Contains(t, body, "SOFTWARE")

	_, body = a.get("/main/profile/edit")
	assert.Contains(t, body, `value="WEB DESIGN"`)

	resp, _ := a.post("/main/profile/edit", url.Values{"name": {"Alice B"}, "bio": {"new bio"}, "skills": {"APPLICATION", "HACKING"}})
	assert.Equal(t, "/main/profile", resp.Header.Get("Location"))
	req, _ := a.backend.LastRequest(http.MethodPut, "/users/alice")
	assert.JSONEq(t, `{"name":"Alice B","bio":"new bio","skills":["APPLICATION"]}`, string(req.Body))

	_, body = a.get("/main/profile")
	assert.Contains(t, body, "Profile updated")
	assert.Contains(t, body, "Alice B")
}

func TestProfileWithoutCachedProfile(t *testing.T) {
	a := newApp(t)
	a.backend.Fail(http.MethodGet, "/users/{username}", http.StatusInternalServerError)
	a.login()

	_, body := a.get("/main/profile")
	assert.Contains(t, body, "John Doe")
	assert.Contains(t, body, "johndoe")

	resp, _ := a.get("/main/profile/edit")
	assert.Equal(t, "/main/profile", resp.Header.Get("Location"))
	_, body = a.get("/main/profile")
	assert.Contains(t, body, "Please log in to edit your profile.")
	assert.True(t, strings.Contains(body, ">anonymous</a>"), "nav shows the anonymous user")
}
