package config

import (
	"flag"
	"os"

	"github.com/noteboard/noteboard/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-users string      base address of the identity service
//	-notes string      base address of the notes service
//	-analytics string  base address of the analytics service
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-users", "-notes", "-analytics"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)

	fs.StringVar(&cfg.UsersURL, "users", cfg.UsersURL, "identity service base address")
	fs.StringVar(&cfg.NotesURL, "notes", cfg.NotesURL, "notes service base address")
	fs.StringVar(&cfg.AnalyticsURL, "analytics", cfg.AnalyticsURL, "analytics service base address")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
