package db

import (
	"github.com/kitworks/kittrack/internal/db/migrations"
)

// SchemaVersion returns the number of SQL migration files, which equals the
// current schema version. The health endpoint reports it so operators can
// spot instances running behind the expected schema.
func SchemaVersion() int {
	entries, err := migrations.FS.ReadDir(".")
	if err != nil {
		return 0
	}

	count := 0
	for _, e := range entries {
		if !e.IsDir() {
			count++
		}
	}

	return count
}
