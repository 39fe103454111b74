// Package session holds the client's mirror of the backend auth session.
//
// The mirror is owned by a single Store instance with an explicit
// subscribe/unsubscribe lifecycle: consumers register a callback for
// auth-state changes instead of polling shared state. Every Set or Clear
// (login, logout, token refresh) notifies subscribers synchronously.
package session

import (
	"sync"
	"time"
)

// Identity is one linked auth provider identity of a user. The backend
// reports an empty identities list on a duplicate sign-up, which is why the
// list must distinguish "absent" from "present and empty".
type Identity struct {
	ID       string `json:"id"`
	Provider string `json:"provider"`
}

// User is the backend's view of an authenticated user.
type User struct {
	ID         string      `json:"id"`
	Email      string      `json:"email"`
	Identities *[]Identity `json:"identities"`
}

// Session is the token pair the backend issues on sign-in. ExpiresAt is a
// unix timestamp; it may be zero when only expires_in was reported, in which
// case the access token's own exp claim is used.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	User         *User  `json:"user"`
}

// AuthState is the derived, consumer-facing authentication state.
type AuthState struct {
	IsAuthenticated bool
	User            *User
}

type subscriber struct {
	id int
	fn func(AuthState)
}

// Store is the single-instance session mirror.
type Store struct {
	mu     sync.Mutex
	sess   *Session
	subs   []subscriber
	nextID int
}

// NewStore returns an empty (unauthenticated) store.
func NewStore() *Store {
	return &Store{}
}

// Set replaces the held session and notifies subscribers with the new state.
// A nil session is equivalent to Clear.
func (s *Store) Set(sess *Session) {
	s.mu.Lock()
	s.sess = sess
	state := s.stateLocked()
	subs := append([]subscriber(nil), s.subs...)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(state)
	}
}

// Clear drops the held session and notifies subscribers. Clearing an already
// empty store still notifies, so the logout flow stays idempotent for
// consumers.
func (s *Store) Clear() {
	s.Set(nil)
}

// Subscribe registers fn for auth-state changes and returns its unsubscribe
// func. Callbacks run synchronously with the change, in subscription order.
// Unsubscribing more than once is a no-op.
func (s *Store) Subscribe(fn func(AuthState)) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i], s.subs[i+1:]...)
					break
				}
			}
		})
	}
}

// State derives the current AuthState from the held session.
func (s *Store) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Store) stateLocked() AuthState {
	if s.sess == nil || s.sess.AccessToken == "" {
		return AuthState{}
	}
	return AuthState{IsAuthenticated: true, User: s.userLocked()}
}

// userLocked resolves the user, falling back to the access token's claims
// when the backend response omitted the user object.
func (s *Store) userLocked() *User {
	if s.sess.User != nil && s.sess.User.ID != "" {
		return s.sess.User
	}
	if c, err := parseClaims(s.sess.AccessToken); err == nil && c.Subject != "" {
		return &User{ID: c.Subject, Email: c.Email}
	}
	return s.sess.User
}

// UserID returns the current user's id, or "" when unauthenticated.
func (s *Store) UserID() string {
	st := s.State()
	if st.User == nil {
		return ""
	}
	return st.User.ID
}

// AccessToken returns the held access token, or "" when unauthenticated.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return ""
	}
	return s.sess.AccessToken
}

// RefreshToken returns the held refresh token, or "" when unauthenticated.
func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return ""
	}
	return s.sess.RefreshToken
}

// ExpiresAt reports when the held access token expires. The zero time means
// no session or no determinable expiry.
func (s *Store) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return time.Time{}
	}
	if s.sess.ExpiresAt != 0 {
		return time.Unix(s.sess.ExpiresAt, 0)
	}
	if c, err := parseClaims(s.sess.AccessToken); err == nil && c.ExpiresAt != nil {
		return c.ExpiresAt.Time
	}
	return time.Time{}
}
