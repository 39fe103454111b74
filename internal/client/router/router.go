// Package router derives the active view from a page URL and an explicit,
// browser-style history stack.
//
// Only one transition pushes a history entry: selecting a post. Explicit nav
// actions (browse/create/login/register) change the view without touching
// the URL, so back/forward re-derive state purely from the URL under the
// cursor — app-only transitions are deliberately not restored.
package router

import (
	"net/url"
)

// View is the active screen of the client.
type View string

const (
	ViewBrowse   View = "browse"
	ViewSingle   View = "single"
	ViewCreate   View = "create"
	ViewLogin    View = "login"
	ViewRegister View = "register"
)

// Name of the query parameter carrying the selected post id.
const postParam = "post"

// Router keeps the URL, the history stack, and the in-memory view state
// consistent.
type Router struct {
	history []string
	pos     int

	view           View
	selectedPostID string
}

// New returns a Router positioned at the root URL in browse view.
func New() *Router {
	r := &Router{}
	_ = r.Load("/")
	return r
}

// Load resets the history to the given URL and derives the initial view from
// it: a "post" query parameter selects the single-post view, anything else
// is browse.
func (r *Router) Load(rawURL string) error {
	view, id, err := deriveView(rawURL)
	if err != nil {
		return err
	}
	r.history = []string{rawURL}
	r.pos = 0
	r.view = view
	r.selectedPostID = id
	return nil
}

// View returns the active view.
func (r *Router) View() View { return r.view }

// SelectedPostID returns the id shown in the single view, or "" otherwise.
func (r *Router) SelectedPostID() string { return r.selectedPostID }

// CurrentURL returns the URL under the history cursor.
func (r *Router) CurrentURL() string { return r.history[r.pos] }

// OpenPost pushes a URL encoding the post id and enters the single view.
// Forward entries are dropped, as a browser would on pushState.
func (r *Router) OpenPost(id string) {
	r.push("/?" + postParam + "=" + url.QueryEscape(id))
	r.view = ViewSingle
	r.selectedPostID = id
}

// SetView switches to an app-local view without changing the URL. Entering
// the single view goes through OpenPost instead; SetView ignores it.
func (r *Router) SetView(v View) {
	if v == ViewSingle {
		return
	}
	r.view = v
	r.selectedPostID = ""
}

// LeaveSingle returns from the single view to browse, resetting the URL to
// the root path. Used by the in-view Back action and after deleting the
// currently open post.
func (r *Router) LeaveSingle() {
	r.push("/")
	r.view = ViewBrowse
	r.selectedPostID = ""
}

// Back moves one history entry back and re-derives the view from that URL,
// using the same rule as Load. Returns false at the oldest entry.
func (r *Router) Back() bool {
	if r.pos == 0 {
		return false
	}
	r.pos--
	r.applyCurrent()
	return true
}

// Forward moves one history entry forward and re-derives the view. Returns
// false at the newest entry.
func (r *Router) Forward() bool {
	if r.pos >= len(r.history)-1 {
		return false
	}
	r.pos++
	r.applyCurrent()
	return true
}

func (r *Router) push(rawURL string) {
	r.history = append(r.history[:r.pos+1], rawURL)
	r.pos = len(r.history) - 1
}

func (r *Router) applyCurrent() {
	// Entries on the stack were parseable when pushed.
	view, id, _ := deriveView(r.history[r.pos])
	r.view = view
	r.selectedPostID = id
}

func deriveView(rawURL string) (View, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ViewBrowse, "", err
	}
	if id := u.Query().Get(postParam); id != "" {
		return ViewSingle, id, nil
	}
	return ViewBrowse, "", nil
}
