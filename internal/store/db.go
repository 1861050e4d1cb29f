// Package store persists alignment results to sqlite. The alignment core
// never touches storage; the session layer and the CLI hand finished result
// records to this package.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the sqlite connection holding alignment records.
type DB struct {
	*sql.DB
}

// Open opens (or creates) the sqlite database at path without touching the
// schema; run MigrateUp to bring it to the current version.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %q: %w", path, err)
	}
	return &DB{db}, nil
}
