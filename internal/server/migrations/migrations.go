// Package migrations embeds the SQL schema applied by goose at server start.
// Each supported SQL dialect keeps its own directory.
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS

//go:embed sqlite/*.sql
var SQLite embed.FS
