// Package postings defines the posting-list index interface the candidate
// generator queries, and a SQLite-backed reference implementation.
package postings

import (
	"context"

	"github.com/hyperjump/akshara/internal/models"
)

// IndexStore looks up posting-list rows for a family/ac/key-list. The
// engine tolerates any of the four blob encodings internal/postings/codec
// decodes; IndexStore itself is purely I/O, no decode logic.
type IndexStore interface {
	// Lookup returns one PostingRow per key present in (family, ac). Keys
	// with no matching row are simply absent from the result — this is
	// not an error. The caller is free to chunk calls; IndexStore imposes
	// no per-call key limit beyond what the backing store requires.
	Lookup(ctx context.Context, fam models.IndexFamily, ac int, keys []string) ([]models.PostingRow, error)

	Close() error
}

// MaxKeysPerLookup is the per-request resource limit on key fan-out: excess keys
// in a single Lookup are silently dropped by the candidate generator
// before the call is made, not by IndexStore.
const MaxKeysPerLookup = 200
