package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/supanews/supanews/internal/client/auth"
	"github.com/supanews/supanews/internal/client/backend"
	"github.com/supanews/supanews/internal/client/config"
	"github.com/supanews/supanews/internal/client/repositories/posts"
	"github.com/supanews/supanews/internal/client/router"
	"github.com/supanews/supanews/internal/client/session"
	"github.com/supanews/supanews/internal/client/storage"
	"github.com/supanews/supanews/internal/logging"
)

// imageUploader is the slice of the uploader the shell needs; the real
// storage.Uploader satisfies it, tests provide a stub.
type imageUploader interface {
	Upload(ctx context.Context, f storage.File) (string, error)
}

// App composes the client: it owns the session store, the auth bridge, the
// post repository, the uploader, and the router, and is the sole
// orchestrator wiring user actions to backend calls.
type App struct {
	cfg      *config.Config
	log      logging.Logger
	sessions *session.Store
	auth     auth.Service
	posts    posts.Repository
	uploader imageUploader
	router   *router.Router

	reader *bufio.Reader
	out    io.Writer

	// view data
	postList []posts.Post
	listErr  string

	// session mirror for rendering; kept in sync by the subscription
	authed bool
	userID string

	// guards against re-entrant post reloads while a reload is already
	// running (a token refresh mid-reload also fires the subscription)
	reloading bool

	unsubscribe func()
}

// NewApp wires the full client from configuration.
func NewApp(cfg *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	sessions := session.NewStore()

	api, err := backend.New(cfg, sessions, log.With("component", "backend"))
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:      cfg,
		log:      log,
		sessions: sessions,
		auth:     auth.NewService(api, sessions, cfg, log.With("component", "auth")),
		posts:    posts.NewRestRepository(api, sessions, log.With("component", "posts")),
		uploader: storage.NewUploader(cfg, sessions, log.With("component", "storage")),
		router:   router.New(),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run subscribes to auth-state changes, establishes the initial session and
// post list, applies the start URL, and enters the command loop. The
// subscription is released exactly once on return.
func (a *App) Run(ctx context.Context) {
	a.unsubscribe = a.sessions.Subscribe(func(st session.AuthState) { a.onAuthChange(ctx, st) })
	defer a.teardown()

	st := a.auth.CheckSession(ctx)
	a.authed = st.IsAuthenticated
	if st.User != nil {
		a.userID = st.User.ID
	}

	a.reloadPosts(ctx)

	if err := a.router.Load(a.cfg.StartURL); err != nil {
		a.log.Warn(ctx, "invalid start URL, falling back to browse", "url", a.cfg.StartURL, "error", err)
		_ = a.router.Load("/")
	}
	a.renderView(ctx)

	a.Root(ctx)
}

func (a *App) teardown() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

// onAuthChange mirrors every session event (login, logout, token refresh)
// into the shell state and refetches the post list, since visibility can
// differ between authenticated and anonymous reads.
func (a *App) onAuthChange(ctx context.Context, st session.AuthState) {
	a.authed = st.IsAuthenticated
	a.userID = ""
	if st.User != nil {
		a.userID = st.User.ID
	}

	if a.reloading {
		return
	}
	a.reloadPosts(ctx)
}

// reloadPosts refreshes the browse list. Failure degrades to an inline
// message; the view never crashes.
func (a *App) reloadPosts(ctx context.Context) {
	a.reloading = true
	defer func() { a.reloading = false }()

	list, err := a.posts.List(ctx)
	if err != nil {
		a.log.Error(ctx, "error fetching posts", "error", err)
		a.listErr = "Failed to load posts."
		return
	}
	a.postList = list
	a.listErr = ""
}

func (a *App) isLoggedIn() bool {
	return a.authed
}
