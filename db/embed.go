// Package db embeds the audit database migrations.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
