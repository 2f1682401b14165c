// Package cli is the view layer of the noteboard client: a REPL that renders
// whatever the orchestrator currently holds and feeds user intents back into
// it. No application state lives here.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/noteboard/noteboard/internal/client/config"
	"github.com/noteboard/noteboard/internal/client/gateway"
	"github.com/noteboard/noteboard/internal/client/orchestrator"
	"github.com/noteboard/noteboard/internal/client/session"
	"github.com/noteboard/noteboard/internal/logging"
)

type App struct {
	config *config.Config
	orch   *orchestrator.Orchestrator
	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires the session store, the three gateways and the orchestrator.
func NewApp(c *config.Config) (*App, error) {
	path, err := session.DefaultPath()
	if err != nil {
		return nil, err
	}

	a := &App{
		config: c,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	a.orch = orchestrator.New(orchestrator.Deps{
		Identity:  gateway.NewIdentityGateway(c.UsersURL, nil),
		Notes:     gateway.NewNotesGateway(c.NotesURL, nil),
		Analytics: gateway.NewAnalyticsGateway(c.AnalyticsURL, nil),
		Sessions:  session.NewStore(path),
		Logger:    logging.NewJSON(os.Stderr),
		Confirm:   a.confirmPrompt,
	})

	return a, nil
}

// confirmPrompt is the blocking yes/no gate used before destructive intents.
// Anything but an explicit yes declines.
func (a *App) confirmPrompt(prompt string) bool {
	answer, err := GetSimpleText(a.reader, prompt+" [y/N]", a.out)
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

func (a *App) isLoggedIn() bool {
	return a.orch.State() == orchestrator.StateAuthenticated
}

func (a *App) status() string {
	if u := a.orch.User(); u != nil {
		return "(" + u.Username + ")"
	}
	return ""
}

// Run restores a persisted session, then hands control to the REPL.
func (a *App) Run(ctx context.Context) error {
	if err := a.orch.Startup(ctx); err != nil {
		return err
	}
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
	return nil
}
