// Package migrations embeds the SQL schema migrations applied by goose at
// startup, one directory per dialect.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS
