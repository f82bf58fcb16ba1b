package store

import (
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
	_ "modernc.org/sqlite"

	"github.com/srcweave/srcweave/pkg/types"
)

// SQLiteStore implements Store using SQLite. The site is kept in a single
// file and can be materialized later with Export.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-based store.
// Use ":memory:" for an in-memory database (useful for testing).
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	// Writers are serialized and an in-memory database lives in one connection.
	db.SetMaxOpenConns(1)

	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating schema")
	}

	return &SQLiteStore{db: db}, nil
}

// PutPage stores a page, replacing an older one with the same path.
func (s *SQLiteStore) PutPage(p *types.Page) error {
	if err := validatePath(p.Path); err != nil {
		return err
	}

	var sourceID string
	if !p.SourceID.IsZero() {
		sourceID = p.SourceID.Hex()
	}
	content := p.Content
	if content == nil {
		content = []byte{}
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO pages (path, source, source_id, kind, content, created)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		p.Path,
		p.Source,
		sourceID,
		p.Kind,
		content,
		p.Created.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return errors.Wrapf(err, "inserting page %s", p.Path)
	}
	return nil
}

// GetPage retrieves a page with its content.
func (s *SQLiteStore) GetPage(path string) (*types.Page, error) {
	row := s.db.QueryRow(`
		SELECT path, source, source_id, kind, created, content
		FROM pages
		WHERE path = ?
	`, path)

	p, err := scanPage(row, true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrPageNotFound, "%s", path)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPages returns page metadata ordered by path.
func (s *SQLiteStore) ListPages() ([]*types.Page, error) {
	rows, err := s.db.Query(`
		SELECT path, source, source_id, kind, created
		FROM pages
		ORDER BY path
	`)
	if err != nil {
		return nil, errors.Wrap(err, "querying pages")
	}
	defer rows.Close()

	pages := []*types.Page{}
	for rows.Next() {
		p, err := scanPage(rows, false)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating pages")
	}

	return pages, nil
}

// PageExists reports whether a page is stored under path.
func (s *SQLiteStore) PageExists(path string) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM pages WHERE path = ?", path).Scan(&count)
	if err != nil {
		return false, errors.Wrap(err, "checking page existence")
	}
	return count > 0, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPage(row rowScanner, withContent bool) (*types.Page, error) {
	var (
		p        types.Page
		sourceID string
		created  string
	)

	dest := []any{&p.Path, &p.Source, &sourceID, &p.Kind, &created}
	if withContent {
		dest = append(dest, &p.Content)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "scanning page")
	}

	if sourceID != "" {
		id, err := types.ParseBlobID(sourceID)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing source id of %s", p.Path)
		}
		p.SourceID = id
	}

	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing creation time of %s", p.Path)
	}
	p.Created = t

	return &p, nil
}
