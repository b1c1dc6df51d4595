// Package session holds the process-wide login state: the logged-in flag, the
// bearer token and the cached profile. It is loaded from durable storage at
// startup and changed only through Login, Logout and profile updates.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/studentcollab/collabhub/frontend/internal/localstore"
	"github.com/studentcollab/collabhub/shared/api"
	"github.com/studentcollab/collabhub/shared/domain"
	internal_errors "github.com/studentcollab/collabhub/shared/errors"
	"github.com/studentcollab/collabhub/shared/logger"
	"github.com/studentcollab/collabhub/shared/validation"
)

const loggedInValue = "true"

// Backend is the part of the API client the session needs.
type Backend interface {
	Login(ctx context.Context, req api.LoginRequest) (api.LoginResponse, error)
	Signup(ctx context.Context, req api.SignupRequest) error
	GetUser(ctx context.Context, username string) (domain.Profile, error)
	UpdateUser(ctx context.Context, username string, req api.UpdateProfileRequest) (domain.Profile, error)
}

type Session struct {
	mu      sync.RWMutex
	state   domain.Session
	store   localstore.Store
	backend Backend
	log     *slog.Logger
}

// Load reads the session persisted in store. Missing keys mean a logged-out
// session; an unreadable profile is dropped.
func Load(ctx context.Context, store localstore.Store, backend Backend) (*Session, error) {
	s := &Session{store: store, backend: backend, log: logger.Component("session")}

	flag, err := store.Get(ctx, localstore.KeyLoggedIn)
	switch {
	case err == nil:
		s.state.LoggedIn = string(flag) == loggedInValue
	case !errors.Is(err, localstore.ErrNotFound):
		return nil, fmt.Errorf("read login flag: %w", err)
	}

	token, err := store.Get(ctx, localstore.KeyAccessToken)
	switch {
	case err == nil:
		s.state.Token = string(token)
	case !errors.Is(err, localstore.ErrNotFound):
		return nil, fmt.Errorf("read access token: %w", err)
	}

	var profile domain.Profile
	if err := localstore.GetJSON(ctx, store, localstore.KeyProfile, &profile); err == nil {
		s.state.Profile = &profile
	} else if !errors.Is(err, localstore.ErrNotFound) {
		s.log.Warn("discarding cached profile", "error", err)
	}

	s.log.Debug("session loaded", "logged_in", s.state.LoggedIn, "user", s.state.Username())
	return s, nil
}

// Login exchanges credentials for a token, persists the token and the
// logged-in flag, then caches the user's profile. A failed profile fetch
// leaves the login in place with no cached profile.
func (s *Session) Login(ctx context.Context, username, password string) (domain.Session, error) {
	req := api.LoginRequest{Username: username, Password: password}
	if err := validation.Struct(req); err != nil {
		return domain.Session{}, err
	}

	resp, err := s.backend.Login(ctx, req)
	if err != nil {
		s.log.Info("login rejected", "user", username, "error", err)
		return domain.Session{}, err
	}

	if err := s.store.Set(ctx, localstore.KeyAccessToken, []byte(resp.AccessToken)); err != nil {
		return domain.Session{}, fmt.Errorf("persist access token: %w", err)
	}
	if err := s.store.Set(ctx, localstore.KeyLoggedIn, []byte(loggedInValue)); err != nil {
		if delErr := s.store.Delete(ctx, localstore.KeyAccessToken); delErr != nil {
			s.log.Warn("failed to drop token after login flag write failed", "error", delErr)
		}
		return domain.Session{}, fmt.Errorf("persist login flag: %w", err)
	}

	// Whatever profile was cached belongs to an earlier login.
	s.mu.Lock()
	s.state.LoggedIn = true
	s.state.Token = resp.AccessToken
	s.state.Profile = nil
	s.mu.Unlock()
	if err := s.store.Delete(ctx, localstore.KeyProfile); err != nil {
		s.log.Warn("failed to drop cached profile", "error", err)
	}

	if _, err := s.FetchProfile(ctx, username); err != nil {
		s.log.Warn("profile fetch after login failed", "user", username, "error", err)
	}
	return s.Snapshot(), nil
}

// Signup registers an account. It does not log in.
func (s *Session) Signup(ctx context.Context, name, username, password string) error {
	req := api.SignupRequest{Name: name, Username: username, Password: password}
	if err := validation.Struct(req); err != nil {
		return err
	}
	return s.backend.Signup(ctx, req)
}

// Logout clears the flag and token from storage. The cached profile is kept;
// the token is not revoked with the backend.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.state.LoggedIn = false
	s.state.Token = ""
	s.mu.Unlock()

	if err := s.store.Delete(ctx, localstore.KeyLoggedIn, localstore.KeyAccessToken); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// FetchProfile loads username's profile from the backend and caches it.
func (s *Session) FetchProfile(ctx context.Context, username string) (domain.Profile, error) {
	profile, err := s.backend.GetUser(ctx, username)
	if err != nil {
		return domain.Profile{}, err
	}
	if profile.Username == "" {
		profile.Username = username
	}
	s.cacheProfile(ctx, profile)
	return profile, nil
}

// UpdateProfile saves the current user's profile and replaces the cache with
// the backend's answer.
func (s *Session) UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) (domain.Profile, error) {
	s.mu.RLock()
	profile := s.state.Profile
	s.mu.RUnlock()
	if profile == nil || profile.Username == "" {
		return domain.Profile{}, internal_errors.NotAuthenticated()
	}
	username := profile.Username

	updated, err := s.backend.UpdateUser(ctx, username, req)
	if err != nil {
		return domain.Profile{}, err
	}
	if updated.Username == "" {
		updated.Username = username
	}
	s.cacheProfile(ctx, updated)
	return updated, nil
}

func (s *Session) cacheProfile(ctx context.Context, profile domain.Profile) {
	s.mu.Lock()
	s.state.Profile = &profile
	s.mu.Unlock()

	if err := localstore.SetJSON(ctx, s.store, localstore.KeyProfile, profile); err != nil {
		s.log.Warn("failed to persist profile", "error", err)
	}
}

// CurrentUser returns the cached profile's username, or "anonymous".
func (s *Session) CurrentUser() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Username()
}

// Profile returns a copy of the cached profile.
func (s *Session) Profile() (domain.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Profile == nil {
		return domain.Profile{}, false
	}
	p := *s.state.Profile
	p.Skills = append([]string{}, p.Skills...)
	return p, true
}

func (s *Session) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.LoggedIn
}

// Token returns the bearer token, empty when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.state.LoggedIn {
		return ""
	}
	return s.state.Token
}

// Snapshot returns a copy of the whole session.
func (s *Session) Snapshot() domain.Session {
	s.mu.RLock()
	snap := domain.Session{LoggedIn: s.state.LoggedIn, Token: s.state.Token}
	s.mu.RUnlock()
	if p, ok := s.Profile(); ok {
		snap.Profile = &p
	}
	return snap
}

// Verify re-reads the durable login flag and reports whether the session is
// still logged in. A flag removed from storage by someone else logs the
// session out.
func (s *Session) Verify(ctx context.Context) bool {
	flag, err := s.store.Get(ctx, localstore.KeyLoggedIn)
	if err != nil && !errors.Is(err, localstore.ErrNotFound) {
		s.log.Warn("cannot read login flag", "error", err)
		return false
	}
	loggedIn := err == nil && string(flag) == loggedInValue

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.LoggedIn && !loggedIn {
		s.log.Info("login flag gone from storage, treating session as logged out")
		s.state.Token = ""
	}
	s.state.LoggedIn = loggedIn
	return loggedIn
}
