// Package storage defines the row-store persistence interface the ranker
// reads candidate rows through.
package storage

import (
	"context"

	"github.com/hyperjump/akshara/internal/models"
)

// RowStore fetches candidate rows by (ac, row_id_list). The core only ever
// consumes the score-mode fetch; display-mode rows are fetched separately
// by callers that need the wider UI/export column set.
type RowStore interface {
	// FetchScoreRows returns the score-mode record for each of rowIDs
	// present in ac. Missing row ids are silently omitted, not errored.
	FetchScoreRows(ctx context.Context, ac int, rowIDs []int64) ([]models.ScoreRow, error)

	// FetchDisplayRows returns the display-mode record for each of rowIDs
	// present in ac.
	FetchDisplayRows(ctx context.Context, ac int, rowIDs []int64) ([]models.DisplayRow, error)

	Close() error
}
