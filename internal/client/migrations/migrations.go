// Package migrations embeds the sqlite schema migrations for the client
// credential database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
