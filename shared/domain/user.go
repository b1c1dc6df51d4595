package domain

// AnonymousUser is the author attributed to content created without a
// cached profile.
const AnonymousUser = "anonymous"

type Profile struct {
	Username string   `json:"username"`
	Name     string   `json:"name"`
	Bio      string   `json:"bio"`
	Skills   []string `json:"skills"`
}

// HasSkill reports whether skill is in the profile's skill set.
func (p *Profile) HasSkill(skill string) bool {
	for _, s := range p.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// Session is the logged-in user's authentication and profile cache.
// A nil Profile means no profile is cached.
type Session struct {
	LoggedIn bool
	Token    string
	Profile  *Profile
}

// Username returns the cached profile's username or AnonymousUser.
func (s Session) Username() string {
	if s.Profile == nil || s.Profile.Username == "" {
		return AnonymousUser
	}
	return s.Profile.Username
}
