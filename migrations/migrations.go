package migrations

import "embed"

// FS holds the postgres migrations so the binaries do not depend on the working directory.
//
//go:embed postgres/*.sql
var FS embed.FS
