package cli

import (
	"context"
	"fmt"
	"strings"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}

// Register prompts for the account details, creates the account and saves
// the returned token.
func (a *App) Register(ctx context.Context, args []string) error {
	email, err := a.argOrPrompt(args, "Enter email")
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter display name (optional)", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.authService.Register(ctx, name, email, password); err != nil {
		return err
	}

	a.refreshStatus(ctx)
	fmt.Fprintln(a.out, "Registered and logged in.")
	return nil
}

// Login prompts for credentials and saves the token on success.
func (a *App) Login(ctx context.Context, args []string) error {
	email, err := a.argOrPrompt(args, "Enter email")
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.authService.Login(ctx, email, password); err != nil {
		return err
	}

	a.refreshStatus(ctx)
	fmt.Fprintln(a.out, "Login successful.")
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.loggedIn, a.userName = false, ""
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) Whoami(ctx context.Context, _ []string) error {
	u, err := a.authService.Whoami(ctx)
	if err != nil {
		return err
	}
	if u.DisplayName != "" {
		fmt.Fprintf(a.out, "%s <%s>\n", u.DisplayName, u.Email)
	} else {
		fmt.Fprintln(a.out, u.Email)
	}
	return nil
}
