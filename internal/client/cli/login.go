package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/supanews/supanews/internal/client/router"
	"github.com/supanews/supanews/internal/common"
)

// Input seams; tests swap these to avoid the terminal.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	confirm       = Confirm
	openFile      = os.Open
)

// Login prompts for credentials and authenticates.
//
// Backend-reported failures (e.g. invalid credentials) are shown with the
// backend's message; anything unclassified becomes a distinct generic
// message. Neither ends the loop.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		fmt.Fprintln(a.out, "Please provide email and password.")
		return nil
	}

	fmt.Fprintln(a.out, "Logging in…")
	_, err = a.auth.Login(ctx, email, password)
	if err != nil {
		var berr *common.BackendError
		if errors.As(err, &berr) {
			msg := berr.Message
			if msg == "" {
				msg = "Login failed."
			}
			fmt.Fprintln(a.out, msg)
			return nil
		}
		a.log.Error(ctx, "login error", "error", err)
		fmt.Fprintln(a.out, "Unexpected error during login.")
		return nil
	}

	fmt.Fprintln(a.out, "Logged in.")
	a.router.SetView(router.ViewBrowse)
	a.renderView(ctx)
	return nil
}

// Logout confirms, asks the backend to end the session, and returns to the
// browse view. The session store notification refreshes the post list.
func (a *App) Logout(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in.")
		return
	}
	if !confirm(a.reader, "Are you sure you want to logout?", a.out) {
		return
	}

	a.auth.Logout(ctx)

	fmt.Fprintln(a.out, "Logged out.")
	a.router.SetView(router.ViewBrowse)
	a.renderView(ctx)
}
