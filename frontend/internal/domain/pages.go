package frontend_domain

import (
	"html/template"

	"github.com/studentcollab/collabhub/frontend/internal/search"
	"github.com/studentcollab/collabhub/shared/domain"
)

type LoginPageData struct {
	Username string
}

type SignupPageData struct {
	Name     string
	Username string
}

type ForgotPasswordPageData struct {
	Email string
}

type MainPageData struct {
	Name string
}

type ProfilePageData struct {
	Profile domain.Profile
	Bio     template.HTML
	// Placeholder is set when no profile could be loaded and defaults are
	// shown instead.
	Placeholder bool
}

type SkillOption struct {
	Name    string
	Checked bool
}

type ProfileEditPageData struct {
	Profile domain.Profile
	Skills  []SkillOption
}

type ThreadsPageData struct {
	Threads []*Thread
	Query   string
}

type NotesPageData struct {
	Notes []domain.Note
	Tags  []string
	Query string
}

type JobsPageData struct {
	Jobs  []domain.Job
	Query string
}

type PapersPageData struct {
	Groups  []search.PaperGroup
	Query   string
	Subject string
	Year    string
	Link    string
}
