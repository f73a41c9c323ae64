// Package sqlite archives dictionary builds in a SQLite database so earlier
// runs can be compared with the current one.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/xword/pkg/xword/ingest"
	"github.com/cognicore/xword/pkg/xword/lexicon"
)

// Build is one finished run of the builder.
type Build struct {
	ID        string
	Generated time.Time
	MinLen    int
	MaxLen    int
	Output    string
	Sources   []ingest.SourceReport
	Entries   []lexicon.Entry
}

// BuildInfo summarizes an archived build.
type BuildInfo struct {
	ID        string
	Generated time.Time
	MinLen    int
	MaxLen    int
	Output    string
	WordCount int
}

// Store wraps the database handle.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the archive at path with WAL mode enabled.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS builds (
	id TEXT PRIMARY KEY,
	generated_at TEXT NOT NULL,
	min_len INTEGER NOT NULL,
	max_len INTEGER NOT NULL,
	output TEXT,
	word_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS build_sources (
	build_id TEXT NOT NULL,
	file TEXT NOT NULL,
	priority INTEGER NOT NULL,
	description TEXT,
	status TEXT NOT NULL,
	parsed INTEGER NOT NULL,
	skipped INTEGER NOT NULL,
	qualifying INTEGER NOT NULL,
	unique_words INTEGER NOT NULL,
	duplicates INTEGER NOT NULL,
	new_words INTEGER NOT NULL,
	upgraded INTEGER NOT NULL,
	kept INTEGER NOT NULL,
	PRIMARY KEY(build_id, file),
	FOREIGN KEY(build_id) REFERENCES builds(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS words (
	build_id TEXT NOT NULL,
	word TEXT NOT NULL,
	score INTEGER NOT NULL,
	length INTEGER NOT NULL,
	PRIMARY KEY(build_id, word),
	FOREIGN KEY(build_id) REFERENCES builds(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_words_word ON words(word);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveBuild stores b atomically. Saving the same build ID twice fails.
func (s *Store) SaveBuild(ctx context.Context, b Build) error {
	if b.ID == "" {
		return errors.New("sqlite: build id required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
INSERT INTO builds (id, generated_at, min_len, max_len, output, word_count)
VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.Generated.UTC().Format(time.RFC3339), b.MinLen, b.MaxLen, b.Output, len(b.Entries))
	if err != nil {
		return fmt.Errorf("insert build %s: %w", b.ID, err)
	}

	if err := insertSources(ctx, tx, b.ID, b.Sources); err != nil {
		return err
	}
	if err := insertWords(ctx, tx, b.ID, b.Entries); err != nil {
		return err
	}

	return tx.Commit()
}

func insertSources(ctx context.Context, tx *sql.Tx, buildID string, sources []ingest.SourceReport) error {
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO build_sources (build_id, file, priority, description, status,
	parsed, skipped, qualifying, unique_words, duplicates, new_words, upgraded, kept)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, sr := range sources {
		_, err := stmt.ExecContext(ctx, buildID, sr.Source.File, sr.Source.Priority, sr.Source.Description,
			string(sr.Status), sr.Read.Parsed, sr.Read.Skipped, sr.Read.Qualifying, sr.Read.Unique,
			sr.Read.Duplicates, sr.Merge.NewWords, sr.Merge.UpgradedScores, sr.Merge.KeptExisting)
		if err != nil {
			return fmt.Errorf("insert source %s: %w", sr.Source.File, err)
		}
	}
	return nil
}

func insertWords(ctx context.Context, tx *sql.Tx, buildID string, entries []lexicon.Entry) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO words (build_id, word, score, length) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, buildID, e.Word, e.Score, len(e.Word)); err != nil {
			return fmt.Errorf("insert word %s: %w", e.Word, err)
		}
	}
	return nil
}

// Builds lists archived builds, newest first.
func (s *Store) Builds(ctx context.Context) ([]BuildInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, generated_at, min_len, max_len, output, word_count
FROM builds ORDER BY generated_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BuildInfo
	for rows.Next() {
		var (
			bi  BuildInfo
			gen string
			o   sql.NullString
		)
		if err := rows.Scan(&bi.ID, &gen, &bi.MinLen, &bi.MaxLen, &o, &bi.WordCount); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, gen); err == nil {
			bi.Generated = t
		}
		bi.Output = o.String
		out = append(out, bi)
	}
	return out, rows.Err()
}

// Words returns the entries of one build in dictionary order.
func (s *Store) Words(ctx context.Context, buildID string) ([]lexicon.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT word, score FROM words WHERE build_id = ? ORDER BY length, word`, buildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []lexicon.Entry
	for rows.Next() {
		var e lexicon.Entry
		if err := rows.Scan(&e.Word, &e.Score); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// SourceStats returns the per-source counters recorded for a build, in the
// order the sources were merged.
func (s *Store) SourceStats(ctx context.Context, buildID string) ([]ingest.SourceReport, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT file, priority, description, status, parsed, skipped, qualifying,
	unique_words, duplicates, new_words, upgraded, kept
FROM build_sources WHERE build_id = ? ORDER BY rowid`, buildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ingest.SourceReport
	for rows.Next() {
		var (
			sr     ingest.SourceReport
			desc   sql.NullString
			status string
		)
		err := rows.Scan(&sr.Source.File, &sr.Source.Priority, &desc, &status,
			&sr.Read.Parsed, &sr.Read.Skipped, &sr.Read.Qualifying, &sr.Read.Unique,
			&sr.Read.Duplicates, &sr.Merge.NewWords, &sr.Merge.UpgradedScores, &sr.Merge.KeptExisting)
		if err != nil {
			return nil, err
		}
		sr.Source.Description = desc.String
		sr.Status = ingest.Status(status)
		out = append(out, sr)
	}
	return out, rows.Err()
}
