package cli

import (
	"context"
	"fmt"
	"strconv"
)

func (a *App) List(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in first")
		return nil
	}

	if a.orch.Loading() {
		fmt.Fprintln(a.out, "Loading...")
		return nil
	}

	notes := a.orch.Notes()
	if len(notes) == 0 {
		fmt.Fprintln(a.out, "No notes yet")
		a.renderError()
		return nil
	}

	for _, n := range notes {
		fmt.Fprintf(a.out, "[%d] %s (updated %s)\n", n.ID, n.Title, n.UpdatedAt.Format("2006-01-02 15:04"))
		fmt.Fprintf(a.out, "    %s\n", n.Content)
	}
	a.renderError()
	return nil
}

func (a *App) Add(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in first")
		return nil
	}

	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}

	if err := a.orch.CreateNote(ctx, title, content); err != nil {
		a.renderError()
		return err
	}

	fmt.Fprintln(a.out, "Note created")
	return nil
}

func (a *App) Edit(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in first")
		return nil
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: edit <id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: edit <id>")
		return nil
	}

	a.orch.StartEditing(id)

	title, err := GetSimpleText(a.reader, "New title", a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "New content", a.out)
	if err != nil {
		return err
	}

	if err := a.orch.UpdateNote(ctx, id, title, content); err != nil {
		a.renderError()
		return err
	}

	fmt.Fprintln(a.out, "Note updated")
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in first")
		return nil
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: delete <id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: delete <id>")
		return nil
	}

	if err := a.orch.DeleteNote(ctx, id); err != nil {
		a.renderError()
		return err
	}

	return nil
}
