package cli

import (
	"fmt"

	"github.com/supanews/supanews/internal/client/repositories/posts"
)

// showBrowse renders the post list, newest first. A failed load degrades to
// an inline message; reloading is up to the user.
func (a *App) showBrowse() {
	fmt.Fprintln(a.out, "== Latest Articles ==")

	if a.listErr != "" {
		fmt.Fprintln(a.out, a.listErr)
		return
	}
	if len(a.postList) == 0 {
		fmt.Fprintln(a.out, "No posts yet.")
		return
	}

	for i, p := range a.postList {
		a.printPostSummary(i+1, p)
	}
}

func (a *App) printPostSummary(n int, p posts.Post) {
	fmt.Fprintf(a.out, "%2d. %s", n, p.Title)
	if p.Category != "" {
		fmt.Fprintf(a.out, "  [%s]", p.Category)
	}
	if a.isLoggedIn() && p.UserID == a.userID {
		fmt.Fprint(a.out, "  (yours)")
	}
	fmt.Fprintln(a.out)

	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(a.out, "    %s", p.CreatedAt.Local().Format("2006-01-02 15:04"))
		if p.UserID != "" {
			fmt.Fprintf(a.out, " • by %s", p.UserID)
		}
		fmt.Fprintln(a.out)
	}
}
