package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/supanews/supanews/internal/client/router"
)

func (a *App) getStatus() string {
	if a.userID != "" {
		return fmt.Sprintf("(%s)", a.userID)
	}
	return "(anonymous)"
}

// Root runs the command loop until EOF or an explicit exit.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to supanews (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "news %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: browse, open <id>, create, delete [id], logout, back, forward, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: browse, open <id>, login, register, back, forward, exit")
			}

		case "browse":
			// Leaving the single view through Back also resets the URL;
			// every other entry to browse is app-local.
			if a.router.View() == router.ViewSingle {
				a.router.LeaveSingle()
			} else {
				a.router.SetView(router.ViewBrowse)
			}
			a.renderView(ctx)

		case "open":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: open <id>")
				continue
			}
			a.openPost(ctx, args[0])

		case "create":
			a.router.SetView(router.ViewCreate)
			_ = a.Create(ctx)

		case "login":
			a.router.SetView(router.ViewLogin)
			_ = a.Login(ctx)

		case "register":
			a.router.SetView(router.ViewRegister)
			_ = a.Register(ctx)

		case "logout":
			a.Logout(ctx)

		case "delete":
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			a.Delete(ctx, id)

		case "back":
			if !a.router.Back() {
				fmt.Fprintln(a.out, "No earlier history.")
				continue
			}
			a.renderView(ctx)

		case "forward":
			if !a.router.Forward() {
				fmt.Fprintln(a.out, "No later history.")
				continue
			}
			a.renderView(ctx)

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			// A bare list index selects that post.
			if idx, err := strconv.Atoi(cmd); err == nil && idx >= 1 && idx <= len(a.postList) {
				a.openPost(ctx, a.postList[idx-1].ID)
				continue
			}
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

// openPost pushes the post's URL onto the history and shows the single view.
func (a *App) openPost(ctx context.Context, id string) {
	a.router.OpenPost(id)
	a.renderView(ctx)
}

// renderView draws the view the router currently points at. The form views
// only print a hint here; their interaction runs from the commands.
func (a *App) renderView(ctx context.Context) {
	switch a.router.View() {
	case router.ViewSingle:
		a.showSingle(ctx, a.router.SelectedPostID())
	case router.ViewCreate:
		fmt.Fprintln(a.out, "-- Create article (type 'create') --")
	case router.ViewLogin:
		fmt.Fprintln(a.out, "-- Login (type 'login') --")
	case router.ViewRegister:
		fmt.Fprintln(a.out, "-- Register (type 'register') --")
	default:
		a.showBrowse()
	}
}
