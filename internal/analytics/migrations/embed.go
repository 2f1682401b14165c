// Package migrations embeds the SQL migrations for the analytics database.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
