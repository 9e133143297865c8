// Package migrations embeds the SQL migrations so the binaries do not depend on the working directory.
package migrations

import "embed"

//go:embed postgres/*.sql
var FS embed.FS

const PostgresDir = "postgres"
