package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/supanews/supanews/internal/client/auth"
	"github.com/supanews/supanews/internal/common"
)

// Register prompts for an email and password and signs the user up. The
// backend sends a confirmation email; no session is established here.
func (a *App) Register(ctx context.Context) error {
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

	err = a.auth.Register(ctx, email, password)
	switch {
	case err == nil:
		fmt.Fprintln(a.out, "Registration successful. Please check your email to confirm your account.")

	case errors.Is(err, auth.ErrEmailInUse):
		fmt.Fprintln(a.out, err.Error())

	default:
		var berr *common.BackendError
		if errors.As(err, &berr) {
			msg := berr.Message
			if msg == "" {
				msg = "Registration failed."
			}
			fmt.Fprintln(a.out, msg)
			return nil
		}
		a.log.Error(ctx, "registration error", "error", err)
		fmt.Fprintln(a.out, "Unexpected error during registration.")
	}
	return nil
}
