package cli

import (
	"context"
	"fmt"
)

func (a *App) Stats(ctx context.Context) error {
	if p := a.orch.PersonalStatistics(); p != nil {
		fmt.Fprintln(a.out, "Your statistics:")
		fmt.Fprintf(a.out, "  notes: %d (created %d, updated %d, deleted %d)\n",
			p.TotalNotes, p.TotalNotesCreated, p.TotalNotesUpdated, p.TotalNotesDeleted)
		fmt.Fprintf(a.out, "  logins: %d\n", p.TotalLogins)
		if p.RegisteredAt != nil {
			fmt.Fprintf(a.out, "  registered: %s\n", p.RegisteredAt.Format("2006-01-02"))
		}
	}

	if s := a.orch.SystemStatistics(); s != nil {
		fmt.Fprintln(a.out, "System statistics:")
		fmt.Fprintf(a.out, "  users: %d (active today: %d)\n", s.TotalUsers, s.ActiveUsersToday)
		fmt.Fprintf(a.out, "  notes created %d, updated %d, deleted %d, logins %d\n",
			s.TotalNotesCreated, s.TotalNotesUpdated, s.TotalNotesDeleted, s.TotalLogins)
	} else {
		fmt.Fprintln(a.out, "No statistics available yet")
	}

	return nil
}

func (a *App) Events(ctx context.Context) error {
	evs := a.orch.RecentEvents()
	if len(evs) == 0 {
		fmt.Fprintln(a.out, "No recent activity")
		return nil
	}

	fmt.Fprintln(a.out, "Recent activity:")
	for _, ev := range evs {
		title := ev.Title
		if title == "" {
			title = "-"
		}
		fmt.Fprintf(a.out, "  %s  %-12s %s\n", ev.Timestamp.Format("2006-01-02 15:04"), ev.EventType, title)
	}
	return nil
}
