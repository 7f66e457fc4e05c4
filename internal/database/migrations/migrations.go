// Package migrations embeds the goose migration scripts for the
// postgres backend.
package migrations

import "embed"

// FS holds the SQL migration files.
//
//go:embed *.sql
var FS embed.FS
