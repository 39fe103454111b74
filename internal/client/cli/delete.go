package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/supanews/supanews/internal/client/router"
	"github.com/supanews/supanews/internal/common"
)

// Delete removes a post owned by the current user. With no id argument it
// targets the post open in the single view.
func (a *App) Delete(ctx context.Context, id string) {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "You must be logged in to delete a post.")
		return
	}

	wasOpen := false
	if id == "" {
		id = a.router.SelectedPostID()
		wasOpen = id != ""
	} else {
		wasOpen = a.router.View() == router.ViewSingle && a.router.SelectedPostID() == id
	}
	if id == "" {
		fmt.Fprintln(a.out, "No post selected. Use 'delete <id>' or open a post first.")
		return
	}

	if !confirm(a.reader, "Delete this post?", a.out) {
		return
	}

	fmt.Fprintln(a.out, "Deleting…")
	if err := a.posts.Delete(ctx, id); err != nil {
		msg := "Failed to delete post."
		var berr *common.BackendError
		if errors.As(err, &berr) && berr.Message != "" {
			msg = berr.Message
		}
		a.log.Error(ctx, "delete post", "id", id, "error", err)
		fmt.Fprintf(a.out, "ALERT: %s\n", msg)
		return
	}

	a.removeFromList(id)
	fmt.Fprintln(a.out, "Post deleted.")

	// Deleting the open post navigates back to the list.
	if wasOpen {
		a.router.LeaveSingle()
		a.renderView(ctx)
	}
}

func (a *App) removeFromList(id string) {
	for i, p := range a.postList {
		if p.ID == id {
			a.postList = append(a.postList[:i], a.postList[i+1:]...)
			return
		}
	}
}
