package admin

import (
	"context"
	"errors"
	"os"

	"github.com/dbelyaev-dev/cloudpix/internal/cli"
	"github.com/dbelyaev-dev/cloudpix/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = cli.GetSimpleText
var getPassword = cli.GetPassword

// Login prompts for credentials and signs in. A non-admin account is signed
// out again immediately: this console is admin-only.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			printlnFn("Error:", err.Error())
		} else {
			printlnFn("Login failed:", err.Error())
		}
		return err
	}

	if !user.IsAdmin {
		_ = a.auth.Logout(ctx)
		printlnFn("Access denied: admin privileges required.")
		return common.ErrForbidden
	}

	printlnFn("Logged in as", user.Email)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.reportErr(err)
		return err
	}
	printlnFn("Logged out.")
	return nil
}

// ChangePassword prompts for the current and new password and submits the
// change.
func (a *App) ChangePassword(ctx context.Context) error {
	current, err := getPassword(os.Stdout, "Current password")
	if err != nil {
		return err
	}
	next, err := getPassword(os.Stdout, "New password")
	if err != nil {
		return err
	}
	confirm, err := getPassword(os.Stdout, "Repeat new password")
	if err != nil {
		return err
	}

	if err := a.auth.ChangePassword(ctx, current, next, confirm); err != nil {
		a.reportErr(err)
		return err
	}
	printlnFn("Password changed.")
	return nil
}
