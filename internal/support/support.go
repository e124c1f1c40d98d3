// Package support provides an operator-facing free-text lookup over raw
// name fields, separate from the ranked fuzzy-match path: a support
// engineer asking "does this string appear anywhere in AC 101" does not
// want phonetic/visual scoring, just a plain inverted-index hit list.
package support

import "context"

// RowDoc is the raw-text record indexed for operator lookup.
type RowDoc struct {
	AC              int
	RowID           int64
	VoterNameRaw    string
	RelativeNameRaw string
}

// Hit is a single lookup result: a row id and the index's match score.
type Hit struct {
	AC    int
	RowID int64
	Score float64
}

// RowIndex indexes and searches raw name text. It carries no ranking
// semantics of its own; it exists purely to answer "where does this text
// occur" for operator support tooling.
type RowIndex interface {
	Index(ctx context.Context, doc RowDoc) error
	Search(ctx context.Context, query string, limit int) ([]Hit, error)
	Delete(ctx context.Context, ac int, rowID int64) error
	Close() error

	// DocCount returns the total number of indexed rows.
	DocCount() (uint64, error)
	// GetTermDocFrequency returns the number of rows whose name fields
	// contain term.
	GetTermDocFrequency(term string) (int, error)
}
