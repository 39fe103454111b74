package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/supanews/supanews/internal/client/repositories/posts"
	"github.com/supanews/supanews/internal/client/router"
)

func TestRoot_Exit(t *testing.T) {
	a, out := newTestApp()
	a.reader = readerFromLines("exit")

	a.Root(context.Background())

	assert.Contains(t, out.String(), "Bye!")
}

func TestRoot_HelpMatchesAuthState(t *testing.T) {
	a, out := newTestApp()
	a.reader = readerFromLines("help", "exit")

	a.Root(context.Background())
	assert.Contains(t, out.String(), "login, register")
	assert.NotContains(t, out.String(), "delete")

	a2, out2 := newTestApp()
	a2.reader = readerFromLines("help", "exit")
	a2.authed = true

	a2.Root(context.Background())
	assert.Contains(t, out2.String(), "create, delete [id], logout")
}

func TestRoot_OpenByIndex(t *testing.T) {
	fp := &fakePosts{getOut: &posts.Post{ID: "42", Title: "Picked"}}
	a, out := newTestApp()
	a.posts = fp
	a.postList = []posts.Post{{ID: "42", Title: "Picked"}}
	a.reader = readerFromLines("1", "exit")

	a.Root(context.Background())

	assert.Equal(t, "42", fp.getID)
	assert.Contains(t, out.String(), "== Picked ==")
}

func TestRoot_OpenCommand(t *testing.T) {
	fp := &fakePosts{getOut: &posts.Post{ID: "5", Title: "Direct"}}
	a, _ := newTestApp()
	a.posts = fp
	a.reader = readerFromLines("open 5", "exit")

	a.Root(context.Background())

	assert.Equal(t, "5", fp.getID)
	assert.Equal(t, "/?post=5", a.router.CurrentURL())
}

func TestRoot_OpenWithoutArg(t *testing.T) {
	a, out := newTestApp()
	a.reader = readerFromLines("open", "exit")

	a.Root(context.Background())

	assert.Contains(t, out.String(), "Usage: open <id>")
}

func TestRoot_UnknownCommand(t *testing.T) {
	a, out := newTestApp()
	a.reader = readerFromLines("frobnicate", "exit")

	a.Root(context.Background())

	assert.Contains(t, out.String(), "Unknown command: frobnicate")
}

func TestRoot_OutOfRangeIndex(t *testing.T) {
	a, out := newTestApp()
	a.postList = []posts.Post{{ID: "1"}}
	a.reader = readerFromLines("2", "exit")

	a.Root(context.Background())

	assert.Contains(t, out.String(), "Unknown command: 2")
}

func TestRoot_BackWithoutHistory(t *testing.T) {
	a, out := newTestApp()
	a.reader = readerFromLines("back", "exit")

	a.Root(context.Background())

	assert.Contains(t, out.String(), "No earlier history.")
}

func TestRoot_BackReturnsToSingle(t *testing.T) {
	fp := &fakePosts{getOut: &posts.Post{ID: "7", Title: "Seven"}}
	a, _ := newTestApp()
	a.posts = fp
	// open a post, leave via browse, then go back
	a.reader = readerFromLines("open 7", "browse", "back", "exit")

	a.Root(context.Background())

	assert.Equal(t, router.ViewSingle, a.router.View())
	assert.Equal(t, "7", a.router.SelectedPostID())
}

func TestRoot_ForwardWithoutHistory(t *testing.T) {
	a, out := newTestApp()
	a.reader = readerFromLines("forward", "exit")

	a.Root(context.Background())

	assert.Contains(t, out.String(), "No later history.")
}

func TestRoot_StatusPrompt(t *testing.T) {
	a, out := newTestApp()
	a.reader = readerFromLines("exit")

	a.Root(context.Background())
	assert.Contains(t, out.String(), "news (anonymous)> ")

	a2, out2 := newTestApp()
	a2.reader = readerFromLines("exit")
	a2.authed = true
	a2.userID = "user-1"

	a2.Root(context.Background())
	assert.Contains(t, out2.String(), "news (user-1)> ")
}
