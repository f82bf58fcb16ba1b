package store

import (
	"database/sql"

	"github.com/cockroachdb/errors"
)

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// CreateSchema creates the database schema if it doesn't exist.
func CreateSchema(db *sql.DB) error {
	if err := createSchemaVersionTable(db); err != nil {
		return errors.Wrap(err, "creating schema_version table")
	}

	if err := createPagesTable(db); err != nil {
		return errors.Wrap(err, "creating pages table")
	}

	return nil
}

// ReadSchemaVersion returns the version recorded in db.
func ReadSchemaVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("SELECT version FROM schema_version").Scan(&version); err != nil {
		return 0, errors.Wrap(err, "reading schema version")
	}
	return version, nil
}

func createSchemaVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count)
	if err != nil {
		return err
	}

	if count == 0 {
		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion)
		return err
	}

	version, err := ReadSchemaVersion(db)
	if err != nil {
		return err
	}
	if version != SchemaVersion {
		return errors.Newf("unsupported schema version %d (want %d)", version, SchemaVersion)
	}
	return nil
}

func createPagesTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS pages (
			path TEXT PRIMARY KEY NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			source_id TEXT NOT NULL DEFAULT '',
			kind TEXT NOT NULL,
			content BLOB NOT NULL,
			created TEXT NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_pages_source_id ON pages(source_id)
	`)
	return err
}
