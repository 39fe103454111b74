// Package auth bridges the client to the backend's authentication service:
// session check, password login, logout, and sign-up with an
// email-confirmation redirect. Credential storage, token issuing, and
// confirmation mail are the backend's responsibility.
package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/supanews/supanews/internal/client/backend"
	"github.com/supanews/supanews/internal/client/config"
	"github.com/supanews/supanews/internal/client/session"
	"github.com/supanews/supanews/internal/common"
	"github.com/supanews/supanews/internal/logging"
)

// ErrEmailInUse is returned by Register for every duplicate-registration
// signal the backend can produce. Its text is shown to the user verbatim.
var ErrEmailInUse = errors.New("This email is already in use. Please log in or reset your password.")

// Service defines the authentication operations the shell consumes.
//
// Contract:
//   - CheckSession: never errors; any failure yields the unauthenticated
//     state (fail-closed).
//   - Login: passes the backend's success or typed error through unmodified
//     so callers can tell invalid credentials from transport failure.
//   - Logout: always resolves; the local session is cleared regardless of
//     what the backend said. Safe to call when already logged out.
//   - Register: nil on success, ErrEmailInUse on any duplicate signal, the
//     backend's error otherwise.
type Service interface {
	CheckSession(ctx context.Context) session.AuthState
	Login(ctx context.Context, email, password string) (*session.Session, error)
	Logout(ctx context.Context)
	Register(ctx context.Context, email, password string) error
}

type service struct {
	api      *backend.Client
	sessions *session.Store
	cfg      *config.Config
	log      logging.Logger
}

// NewService constructs the auth bridge bound to the given backend handle
// and session store.
func NewService(api *backend.Client, sessions *session.Store, cfg *config.Config, log logging.Logger) Service {
	return &service{api: api, sessions: sessions, cfg: cfg, log: log}
}

// CheckSession validates the held session against the backend's user
// endpoint and returns the resulting auth state.
func (s *service) CheckSession(ctx context.Context) session.AuthState {
	if s.sessions.AccessToken() == "" {
		return session.AuthState{}
	}

	var user session.User
	req := backend.Request{Method: http.MethodGet, Path: "/auth/v1/user"}
	if err := s.api.Do(ctx, req, &user); err != nil {
		s.log.Warn(ctx, "session check failed", "error", err)
		return session.AuthState{}
	}
	if user.ID == "" {
		return session.AuthState{}
	}
	return session.AuthState{IsAuthenticated: true, User: &user}
}

// Login exchanges credentials for a session. The new session is stored
// (notifying subscribers) before the backend's result is returned.
func (s *service) Login(ctx context.Context, email, password string) (*session.Session, error) {
	var sess session.Session
	req := backend.Request{
		Method: http.MethodPost,
		Path:   "/auth/v1/token",
		Query:  url.Values{"grant_type": {"password"}},
		Body:   map[string]string{"email": email, "password": password},
	}
	if err := s.api.Do(ctx, req, &sess); err != nil {
		return nil, err
	}

	s.sessions.Set(&sess)
	return &sess, nil
}

// Logout asks the backend to terminate the session and clears the local
// mirror. Backend-side failure is logged, never surfaced.
func (s *service) Logout(ctx context.Context) {
	if s.sessions.AccessToken() != "" {
		req := backend.Request{Method: http.MethodPost, Path: "/auth/v1/logout"}
		if err := s.api.Do(ctx, req, nil); err != nil {
			s.log.Warn(ctx, "logout request failed", "error", err)
		}
	}
	s.sessions.Clear()
}

// signupResponse covers both backend shapes: a bare user object when email
// confirmation is pending, or a full session when the account was
// auto-confirmed.
type signupResponse struct {
	AccessToken  string              `json:"access_token"`
	RefreshToken string              `json:"refresh_token"`
	User         *session.User       `json:"user"`
	ID           string              `json:"id"`
	Email        string              `json:"email"`
	Identities   *[]session.Identity `json:"identities"`
}

// Register signs the user up with the computed email-confirmation redirect.
func (s *service) Register(ctx context.Context, email, password string) error {
	var resp signupResponse
	req := backend.Request{
		Method: http.MethodPost,
		Path:   "/auth/v1/signup",
		Query:  url.Values{"redirect_to": {s.cfg.EmailRedirect()}},
		Body:   map[string]string{"email": email, "password": password},
	}
	if err := s.api.Do(ctx, req, &resp); err != nil {
		var berr *common.BackendError
		if errors.As(err, &berr) && isDuplicateSignup(berr) {
			return ErrEmailInUse
		}
		return err
	}

	// The backend does not always flag a duplicate registration as an error:
	// it may answer successfully with a user whose identities list is
	// present and empty.
	user := resp.User
	if user == nil && resp.ID != "" {
		user = &session.User{ID: resp.ID, Email: resp.Email, Identities: resp.Identities}
	}
	if user != nil && user.Identities != nil && len(*user.Identities) == 0 {
		return ErrEmailInUse
	}

	return nil
}

// Substrings whose presence in a sign-up error message marks the address as
// taken. A heuristic of last resort; the structured checks run first.
var duplicateHints = []string{"already", "exists", "registered", "in use"}

func isDuplicateSignup(berr *common.BackendError) bool {
	if berr.Status == http.StatusConflict || berr.Status == http.StatusUnprocessableEntity {
		return true
	}
	msg := strings.ToLower(berr.Message)
	for _, hint := range duplicateHints {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}
