package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/wastecms/internal/client/client"
	"github.com/dmitrijs2005/wastecms/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// loginFailedText is shown when the server gives no reason.
const loginFailedText = "Invalid credentials"

// Login prompts for the admin email and password and signs in. On success the
// dashboard is opened. A failed attempt keeps any previous session.
//
// The password is wiped before returning.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			a.printf("Email and password are required.\n")
		case errors.Is(err, client.ErrUnavailable):
			a.report(err)
		default:
			msg := client.ServerMessage(err)
			if msg == "" {
				msg = loginFailedText
			}
			a.printf("Login failed: %s\n", msg)
		}
		a.log.Debug(ctx, "login failed", "error", err)
		return err
	}

	a.printf("Login successful.\n")
	return a.Dashboard(ctx, nil)
}

// Logout forgets the token. The session navigates back to the login view.
func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.session.Logout(ctx); err != nil {
		a.report(err)
		return err
	}
	return nil
}
