package frontend_domain

// CommonTemplateData holds fields that are common to all page templates.
// Available in templates as .Common via the TemplateData wrapper.
type CommonTemplateData struct {
	Error     string
	Success   string
	User      string // current user, "anonymous" without a cached profile
	LoggedIn  bool
	CSRFToken string // CSRF token for form submissions
	Path      string // request path, used to highlight the active nav entry
}
