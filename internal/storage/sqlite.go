// Package storage provides a SQLite-backed RowStore.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/akshara/internal/models"
)

// maxBoundParams is the chunk size multi-row IN (...) lookups respect, per
// a "~900 bound parameters per request" resource limit. One
// slot is reserved for the ac parameter.
const maxBoundParams = 899

// SQLiteRowStore implements RowStore using SQLite.
type SQLiteRowStore struct {
	db *sql.DB
}

// NewSQLiteRowStore opens or creates a SQLite database at dbPath and
// initializes the row schema. Parent directories are created if needed.
func NewSQLiteRowStore(dbPath string) (*SQLiteRowStore, error) {
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

	if err := initRowSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteRowStore{db: db}, nil
}

func initRowSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS rows (
		ac                 INTEGER NOT NULL,
		row_id             INTEGER NOT NULL,
		voter_name_raw     TEXT NOT NULL,
		relative_name_raw  TEXT NOT NULL,
		voter_name_norm    TEXT NOT NULL,
		relative_name_norm TEXT NOT NULL,
		serial_no          INTEGER NOT NULL,
		epic_no            TEXT,
		age                INTEGER,
		gender             TEXT,
		house_no           TEXT,
		part_no            INTEGER,
		PRIMARY KEY (ac, row_id)
	);

	CREATE INDEX IF NOT EXISTS idx_rows_ac ON rows(ac);
	`
	_, err := db.Exec(schema)
	return err
}

// FetchScoreRows returns the score-mode record for each of rowIDs present
// in ac, chunking the IN (...) lookup to respect the bound-parameter limit.
func (s *SQLiteRowStore) FetchScoreRows(ctx context.Context, ac int, rowIDs []int64) ([]models.ScoreRow, error) {
	var out []models.ScoreRow
	for _, batch := range chunkRowIDs(rowIDs, maxBoundParams) {
		query, args := inQuery(
			`SELECT row_id, voter_name_raw, relative_name_raw, voter_name_norm, relative_name_norm, serial_no
			 FROM rows WHERE ac = ? AND row_id IN (`, ac, batch)
		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("fetch score rows: %w", err)
		}
		err = func() error {
			defer rows.Close()
			for rows.Next() {
				var r models.ScoreRow
				if err := rows.Scan(&r.RowID, &r.VoterNameRaw, &r.RelativeNameRaw, &r.VoterNameNorm, &r.RelativeNameNorm, &r.SerialNo); err != nil {
					return err
				}
				out = append(out, r)
			}
			return rows.Err()
		}()
		if err != nil {
			return nil, fmt.Errorf("fetch score rows: %w", err)
		}
	}
	return out, nil
}

// FetchDisplayRows returns the display-mode record for each of rowIDs
// present in ac.
func (s *SQLiteRowStore) FetchDisplayRows(ctx context.Context, ac int, rowIDs []int64) ([]models.DisplayRow, error) {
	var out []models.DisplayRow
	for _, batch := range chunkRowIDs(rowIDs, maxBoundParams) {
		query, args := inQuery(
			`SELECT row_id, voter_name_raw, relative_name_raw, serial_no, epic_no, age, gender, house_no, part_no
			 FROM rows WHERE ac = ? AND row_id IN (`, ac, batch)
		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("fetch display rows: %w", err)
		}
		err = func() error {
			defer rows.Close()
			for rows.Next() {
				var r models.DisplayRow
				var epicNo, gender, houseNo sql.NullString
				var age, partNo sql.NullInt64
				if err := rows.Scan(&r.RowID, &r.VoterNameRaw, &r.RelativeNameRaw, &r.SerialNo, &epicNo, &age, &gender, &houseNo, &partNo); err != nil {
					return err
				}
				r.AC = ac
				r.EPICNo = epicNo.String
				r.Age = int(age.Int64)
				r.Gender = gender.String
				r.HouseNo = houseNo.String
				r.PartNo = int(partNo.Int64)
				out = append(out, r)
			}
			return rows.Err()
		}()
		if err != nil {
			return nil, fmt.Errorf("fetch display rows: %w", err)
		}
	}
	return out, nil
}

// InsertRow inserts or replaces one electoral-roll row. It exists for the
// offline loader, not for the engine's read path: RowStore never exposes
// writes, since scoring code has no business mutating rows.
func (s *SQLiteRowStore) InsertRow(ctx context.Context, ac int, row models.DisplayRow, voterNorm, relativeNorm string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO rows
			(ac, row_id, voter_name_raw, relative_name_raw, voter_name_norm, relative_name_norm,
			 serial_no, epic_no, age, gender, house_no, part_no)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ac, row.RowID, row.VoterNameRaw, row.RelativeNameRaw, voterNorm, relativeNorm,
		row.SerialNo, row.EPICNo, row.Age, row.Gender, row.HouseNo, row.PartNo,
	)
	if err != nil {
		return fmt.Errorf("insert row: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteRowStore) Close() error {
	return s.db.Close()
}

// chunkRowIDs splits rowIDs into batches of at most size elements.
func chunkRowIDs(rowIDs []int64, size int) [][]int64 {
	if len(rowIDs) == 0 {
		return nil
	}
	var out [][]int64
	for i := 0; i < len(rowIDs); i += size {
		end := i + size
		if end > len(rowIDs) {
			end = len(rowIDs)
		}
		out = append(out, rowIDs[i:end])
	}
	return out
}

// inQuery builds a prefix + "IN (?, ?, ...)" query and its bound args,
// with ac as the first parameter.
func inQuery(prefix string, ac int, batch []int64) (string, []any) {
	args := make([]any, 0, len(batch)+1)
	args = append(args, ac)
	q := prefix
	for i, id := range batch {
		if i > 0 {
			q += ", "
		}
		q += "?"
		args = append(args, id)
	}
	q += ")"
	return q, args
}
