package auth

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supanews/supanews/internal/client/backend"
	"github.com/supanews/supanews/internal/client/config"
	"github.com/supanews/supanews/internal/client/session"
	"github.com/supanews/supanews/internal/common"
	"github.com/supanews/supanews/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newService(t *testing.T, srvURL string, sessions *session.Store) (Service, *config.Config) {
	t.Helper()
	cfg := &config.Config{
		BackendURL:     srvURL,
		BackendKey:     "anon",
		SiteOrigin:     "http://localhost:5173",
		RequestTimeout: 5 * time.Second,
	}
	api, err := backend.New(cfg, sessions, testLogger())
	require.NoError(t, err)
	return NewService(api, sessions, cfg, testLogger()), cfg
}

func TestCheckSession_NoTokenIsFailClosed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected without a session")
	}))
	defer srv.Close()

	svc, _ := newService(t, srv.URL, session.NewStore())
	st := svc.CheckSession(context.Background())

	assert.False(t, st.IsAuthenticated)
	assert.Nil(t, st.User)
}

func TestCheckSession_BackendErrorIsFailClosed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"msg":"invalid JWT"}`))
	}))
	defer srv.Close()

	sessions := session.NewStore()
	sessions.Set(&session.Session{AccessToken: "stale"})

	svc, _ := newService(t, srv.URL, sessions)
	st := svc.CheckSession(context.Background())

	assert.False(t, st.IsAuthenticated)
}

func TestCheckSession_ReturnsUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		json.NewEncoder(w).Encode(session.User{ID: "user-1", Email: "a@example.com"})
	}))
	defer srv.Close()

	sessions := session.NewStore()
	sessions.Set(&session.Session{AccessToken: "tok"})

	svc, _ := newService(t, srv.URL, sessions)
	st := svc.CheckSession(context.Background())

	assert.True(t, st.IsAuthenticated)
	require.NotNil(t, st.User)
	assert.Equal(t, "user-1", st.User.ID)
}

func TestLogin_StoresSessionAndNotifies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@example.com", body["email"])
		assert.Equal(t, "pw", body["password"])

		json.NewEncoder(w).Encode(session.Session{
			AccessToken:  "tok",
			RefreshToken: "ref",
			User:         &session.User{ID: "user-1"},
		})
	}))
	defer srv.Close()

	sessions := session.NewStore()
	notified := 0
	unsub := sessions.Subscribe(func(session.AuthState) { notified++ })
	defer unsub()

	svc, _ := newService(t, srv.URL, sessions)
	sess, err := svc.Login(context.Background(), "a@example.com", "pw")

	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "user-1", sessions.UserID())
	assert.Equal(t, 1, notified)
}

func TestLogin_InvalidCredentialsPassThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":400,"msg":"Invalid login credentials"}`))
	}))
	defer srv.Close()

	sessions := session.NewStore()
	svc, _ := newService(t, srv.URL, sessions)

	_, err := svc.Login(context.Background(), "a@example.com", "wrong")

	var berr *common.BackendError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, "Invalid login credentials", berr.Message)
	assert.False(t, sessions.State().IsAuthenticated)
}

func TestLogout_ClearsSessionEvenWhenBackendFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sessions := session.NewStore()
	sessions.Set(&session.Session{AccessToken: "tok", User: &session.User{ID: "user-1"}})

	svc, _ := newService(t, srv.URL, sessions)
	svc.Logout(context.Background())

	assert.False(t, sessions.State().IsAuthenticated)
}

func TestLogout_IdempotentWhenLoggedOut(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
	defer srv.Close()

	sessions := session.NewStore()
	svc, _ := newService(t, srv.URL, sessions)

	svc.Logout(context.Background())
	svc.Logout(context.Background())

	assert.False(t, sessions.State().IsAuthenticated)
	assert.Equal(t, 0, calls, "no termination request without a session")
}

func TestRegister_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		assert.Equal(t, "http://localhost:5173", r.URL.Query().Get("redirect_to"))
		json.NewEncoder(w).Encode(map[string]any{
			"id":         "user-9",
			"email":      "new@example.com",
			"identities": []map[string]string{{"id": "user-9", "provider": "email"}},
		})
	}))
	defer srv.Close()

	svc, _ := newService(t, srv.URL, session.NewStore())
	assert.NoError(t, svc.Register(context.Background(), "new@example.com", "pw"))
}

func TestRegister_ConfiguredRedirectWins(t *testing.T) {
	var redirect string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		redirect = r.URL.Query().Get("redirect_to")
		json.NewEncoder(w).Encode(map[string]any{"id": "user-9"})
	}))
	defer srv.Close()

	svc, cfg := newService(t, srv.URL, session.NewStore())
	cfg.EmailRedirectURL = "https://news.example/confirm"

	require.NoError(t, svc.Register(context.Background(), "new@example.com", "pw"))
	assert.Equal(t, "https://news.example/confirm", redirect)
}

func TestRegister_DuplicateByEmptyIdentities(t *testing.T) {
	// Scenario: dup@example.com is already registered; the backend answers
	// without an error but with an empty identities list.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{"id": "user-9", "identities": []any{}},
		})
	}))
	defer srv.Close()

	svc, _ := newService(t, srv.URL, session.NewStore())
	err := svc.Register(context.Background(), "dup@example.com", "pw")

	require.ErrorIs(t, err, ErrEmailInUse)
	assert.Equal(t, "This email is already in use. Please log in or reset your password.", err.Error())
}

func TestRegister_DuplicateClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		isDup  bool
	}{
		{"status 422", http.StatusUnprocessableEntity, `{"msg":"Signup disabled"}`, true},
		{"status 409", http.StatusConflict, `{"msg":"whatever"}`, true},
		{"message already", http.StatusBadRequest, `{"msg":"User already registered"}`, true},
		{"message exists", http.StatusBadRequest, `{"msg":"account exists"}`, true},
		{"message in use", http.StatusBadRequest, `{"msg":"Email In Use"}`, true},
		{"unrelated error", http.StatusBadRequest, `{"msg":"Password should be at least 6 characters"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			svc, _ := newService(t, srv.URL, session.NewStore())
			err := svc.Register(context.Background(), "x@example.com", "pw")

			if tt.isDup {
				assert.ErrorIs(t, err, ErrEmailInUse)
			} else {
				var berr *common.BackendError
				require.ErrorAs(t, err, &berr)
				assert.Equal(t, "Password should be at least 6 characters", berr.Message)
			}
		})
	}
}
