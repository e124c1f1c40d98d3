// Package candidates implements the multi-index candidate generator (C4):
// it builds per-family key sets, queries the posting-list store, and
// merges the results into a candidate row-id set with per-family hit
// metadata.
package candidates

import (
	"context"
	"fmt"

	"github.com/hyperjump/akshara/internal/keys"
	"github.com/hyperjump/akshara/internal/models"
	"github.com/hyperjump/akshara/internal/postings"
	"github.com/hyperjump/akshara/internal/postings/codec"
)

// Generator queries the six posting-list index families and merges the
// results into a candidate set.
type Generator struct {
	store postings.IndexStore
}

// NewGenerator constructs a Generator over store.
func NewGenerator(store postings.IndexStore) *Generator {
	return &Generator{store: store}
}

// fieldsFor returns which name field(s) scope restricts the generator to.
func fieldsFor(scope models.Scope) []models.Field {
	switch scope {
	case models.ScopeVoter:
		return []models.Field{models.FieldVoter}
	case models.ScopeRelative:
		return []models.Field{models.FieldRelative}
	default:
		return []models.Field{models.FieldVoter, models.FieldRelative}
	}
}

// formsFor returns which normalized forms to query: strict and exact are
// always queried, loose only when exactOnly is false.
func formsFor(exactOnly bool) []models.NormForm {
	if exactOnly {
		return []models.NormForm{models.FormStrict, models.FormExact}
	}
	return []models.NormForm{models.FormStrict, models.FormExact, models.FormLoose}
}

// Generate queries every applicable index family for query/ac and returns
// the union candidate set with per-row metadata. Decode errors on
// individual posting-list blobs are collected and returned alongside the
// result rather than aborting generation — the offending key's
// contribution is simply dropped (spec's Decode-error taxonomy).
func (g *Generator) Generate(ctx context.Context, query string, ac int, opts models.RankOptions) (map[int64]*models.CandidateMeta, []error, error) {
	candidates := make(map[int64]*models.CandidateMeta)
	var decodeErrs []error

	for _, form := range formsFor(opts.ExactOnly) {
		allKeys := keys.BuildForForm(form, query, opts)
		if len(allKeys) > postings.MaxKeysPerLookup {
			allKeys = allKeys[:postings.MaxKeysPerLookup]
		}
		if len(allKeys) == 0 {
			continue
		}

		for _, field := range fieldsFor(opts.Scope) {
			fam := models.IndexFamily{Form: form, Field: field}

			rows, err := g.store.Lookup(ctx, fam, ac, allKeys)
			if err != nil {
				return nil, decodeErrs, fmt.Errorf("candidate generation: %w", err)
			}

			hitThisFamily := make(map[int64]struct{})
			for _, pr := range rows {
				ids, err := codec.Decode(pr.RowIDsBlob, pr.N)
				if err != nil {
					decodeErrs = append(decodeErrs, err)
					continue
				}
				for _, id := range ids {
					meta, ok := candidates[id]
					if !ok {
						meta = &models.CandidateMeta{}
						candidates[id] = meta
					}
					meta.RecordHit(fam)
					hitThisFamily[id] = struct{}{}
				}
			}

			total := len(allKeys)
			for id := range hitThisFamily {
				meta := candidates[id]
				if meta.HitCount[indexOf(fam)] == total {
					meta.SetAndHit(fam, true)
				}
			}
		}
	}

	return candidates, decodeErrs, nil
}

func indexOf(fam models.IndexFamily) int {
	for i, f := range models.AllIndexFamilies {
		if f == fam {
			return i
		}
	}
	return -1
}
