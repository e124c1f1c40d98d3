package postings

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/akshara/internal/models"
)

// maxBoundParams mirrors storage's chunking limit: a "~900
// bound parameters per request", with one slot reserved for ac and one
// for family.
const maxBoundParams = 898

// SQLitePostingStore implements IndexStore using SQLite, one row per
// (family, ac, key) with the row_ids blob and its companion count column.
type SQLitePostingStore struct {
	db *sql.DB
}

// NewSQLitePostingStore opens or creates a SQLite database at dbPath and
// initializes the posting-list schema.
func NewSQLitePostingStore(dbPath string) (*SQLitePostingStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initPostingSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLitePostingStore{db: db}, nil
}

func initPostingSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS postings (
		family  TEXT    NOT NULL,
		ac      INTEGER NOT NULL,
		key     TEXT    NOT NULL,
		row_ids BLOB    NOT NULL,
		n       INTEGER NOT NULL,
		PRIMARY KEY (family, ac, key)
	);
	`
	_, err := db.Exec(schema)
	return err
}

// familyCode maps an IndexFamily onto its storage key, e.g. "strict_voter".
func familyCode(fam models.IndexFamily) string {
	return fam.Form.String() + "_" + fam.Field.String()
}

// Put inserts or replaces one posting-list entry. Exposed so the loadindex
// CLI path and tests can populate the store without round-tripping through
// a blob encoder; the engine itself never calls Put.
func (s *SQLitePostingStore) Put(ctx context.Context, fam models.IndexFamily, ac int, key string, rowIDsBlob []byte, n int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO postings (family, ac, key, row_ids, n) VALUES (?, ?, ?, ?, ?)`,
		familyCode(fam), ac, key, rowIDsBlob, n,
	)
	return err
}

// Lookup returns the posting rows for keys present in (fam, ac), chunking
// the IN (...) lookup to respect the bound-parameter limit.
func (s *SQLitePostingStore) Lookup(ctx context.Context, fam models.IndexFamily, ac int, keys []string) ([]models.PostingRow, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	var out []models.PostingRow
	for _, batch := range chunkKeys(keys, maxBoundParams) {
		q := `SELECT key, row_ids, n FROM postings WHERE family = ? AND ac = ? AND key IN (`
		args := make([]any, 0, len(batch)+2)
		args = append(args, familyCode(fam), ac)
		for i, k := range batch {
			if i > 0 {
				q += ", "
			}
			q += "?"
			args = append(args, k)
		}
		q += ")"

		rows, err := s.db.QueryContext(ctx, q, args...)
		if err != nil {
			return nil, fmt.Errorf("postings lookup: %w", err)
		}
		err = func() error {
			defer rows.Close()
			for rows.Next() {
				var r models.PostingRow
				if err := rows.Scan(&r.Key, &r.RowIDsBlob, &r.N); err != nil {
					return err
				}
				out = append(out, r)
			}
			return rows.Err()
		}()
		if err != nil {
			return nil, fmt.Errorf("postings lookup: %w", err)
		}
	}
	return out, nil
}

// Close closes the database connection.
func (s *SQLitePostingStore) Close() error {
	return s.db.Close()
}

func chunkKeys(keys []string, size int) [][]string {
	var out [][]string
	for i := 0; i < len(keys); i += size {
		end := i + size
		if end > len(keys) {
			end = len(keys)
		}
		out = append(out, keys[i:end])
	}
	return out
}
