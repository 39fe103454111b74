package cli

import (
	"context"
	"fmt"
)

// showSingle loads and renders one post. Absence is a normal outcome
// ("Post not found."), a failed load an inline error.
func (a *App) showSingle(ctx context.Context, id string) {
	fmt.Fprintln(a.out, "Loading…")

	post, err := a.posts.GetByID(ctx, id)
	if err != nil {
		a.log.Error(ctx, "error fetching post", "id", id, "error", err)
		fmt.Fprintln(a.out, err.Error())
		return
	}
	if post == nil {
		fmt.Fprintln(a.out, "Post not found.")
		return
	}

	fmt.Fprintf(a.out, "== %s ==\n", post.Title)
	if post.Category != "" {
		fmt.Fprintf(a.out, "Category: %s\n", post.Category)
	}
	if post.ImageURL != "" {
		fmt.Fprintf(a.out, "Image: %s\n", post.ImageURL)
	}
	if post.Content != "" {
		fmt.Fprintln(a.out, post.Content)
	}
	if !post.CreatedAt.IsZero() {
		fmt.Fprintf(a.out, "%s", post.CreatedAt.Local().Format("2006-01-02 15:04"))
		if post.UserID != "" {
			fmt.Fprintf(a.out, " • by %s", post.UserID)
		}
		fmt.Fprintln(a.out)
	}
	if a.isLoggedIn() && post.UserID == a.userID {
		fmt.Fprintln(a.out, "(this is your post; 'delete' removes it)")
	}
}
