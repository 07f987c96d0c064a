package portal

import (
	"context"
	"os"

	"github.com/dbelyaev-dev/cloudpix/internal/cli"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = cli.GetSimpleText
var getPassword = cli.GetPassword

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
		printlnFn("Login failed:", err.Error())
		return err
	}

	printlnFn("Logged in as", user.Email)
	return nil
}

// Register creates a new account and prompts the user to log in with it.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}

	user, err := a.auth.Register(ctx, email, password)
	if err != nil {
		a.reportErr(err)
		return err
	}

	printlnFn("Account created for", user.Email, "- use 'login' to sign in.")
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
