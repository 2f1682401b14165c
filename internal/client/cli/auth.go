package cli

import (
	"context"
	"fmt"
)

func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.orch.Login(ctx, username, password); err != nil {
		a.renderError()
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", a.orch.User().Username)
	a.renderError()
	return nil
}

func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.orch.Register(ctx, username, email, password); err != nil {
		a.renderError()
		return err
	}

	fmt.Fprintf(a.out, "Registered and logged in as %s\n", a.orch.User().Username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.orch.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := a.orch.User()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "#%d %s <%s>\n", u.ID, u.Username, u.Email)
	return nil
}

// renderError prints the orchestrator's transient error slot, if set.
func (a *App) renderError() {
	if msg := a.orch.ErrorMessage(); msg != "" {
		fmt.Fprintf(a.out, "Error: %s\n", msg)
	}
}
