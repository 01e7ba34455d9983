// Package migrations embeds the per-driver schema files so the binary
// deploys without external SQL assets.
package migrations

import "embed"

//go:embed sqlite/*.sql
var SqliteMigrations embed.FS

//go:embed postgres/*.sql
var PostgresMigrations embed.FS
