package ranking

import (
	"sort"

	"github.com/hyperjump/akshara/internal/models"
	"github.com/hyperjump/akshara/internal/normalize"
)

// Ranker scores candidate rows against a query per the mode hierarchy in
// the mode hierarchy: EXACT scenarios first, then — unless the caller asked for
// exact-only matching — the three decreasing-fidelity TYPO families.
type Ranker struct {
	opts models.RankOptions
}

// NewRanker constructs a Ranker over opts.
func NewRanker(opts models.RankOptions) *Ranker {
	return &Ranker{opts: opts}
}

// scoreOneField ranks a single name field (voter or relative) against the
// query, returning ok=false if the field fails to qualify under every mode
// the options permit.
func (r *Ranker) scoreOneField(query, name string, serial, rowID int64) (models.RankKey, string, bool) {
	qTokens := normalize.Tokenize(normalize.NormStrict, query)
	cTokens := normalize.Tokenize(normalize.NormStrict, name)
	if len(qTokens) == 0 || len(cTokens) == 0 {
		return models.RankKey{}, "", false
	}

	if key, breadcrumb, ok := scoreExact(qTokens, cTokens, serial, rowID); ok {
		return key, breadcrumb, true
	}
	if r.opts.ExactOnly {
		return models.RankKey{}, "", false
	}

	if len(qTokens) == 1 {
		return scoreSingleWordTypo(qTokens[0], cTokens, r.opts, serial, rowID)
	}
	return scoreMultiWordTypo(qTokens, cTokens, r.opts, serial, rowID)
}

// Score ranks one candidate row against the query, honoring scope. When
// scope is anywhere, both fields are scored and the lexicographically
// smaller key wins; ties favor the voter field.
func (r *Ranker) Score(query string, row models.ScoreRow) (models.RankedResult, bool) {
	var best *models.RankKey
	var bestField models.Scope

	tryField := func(scope models.Scope, name string) {
		key, _, ok := r.scoreOneField(query, name, row.SerialNo, row.RowID)
		if !ok {
			return
		}
		key.Field = scope
		if best == nil || key.Compare(*best) < 0 {
			best = &key
			bestField = scope
		}
	}

	switch r.opts.Scope {
	case models.ScopeVoter:
		tryField(models.ScopeVoter, row.VoterNameNorm)
	case models.ScopeRelative:
		tryField(models.ScopeRelative, row.RelativeNameNorm)
	default:
		tryField(models.ScopeVoter, row.VoterNameNorm)
		tryField(models.ScopeRelative, row.RelativeNameNorm)
	}

	if best == nil {
		return models.RankedResult{}, false
	}
	return models.RankedResult{Row: row, Key: *best, Field: bestField}, true
}

// ScoreRows scores every row, discards disqualified rows, and returns the
// survivors sorted by RankKey ascending (best first).
func (r *Ranker) ScoreRows(query string, rows []models.ScoreRow) []*models.RankedResult {
	results := make([]*models.RankedResult, 0, len(rows))
	for _, row := range rows {
		if res, ok := r.Score(query, row); ok {
			rr := res
			results = append(results, &rr)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Key.Compare(results[j].Key) < 0
	})
	return results
}

// TopN returns the best n results, or all of them if there are fewer.
func TopN(results []*models.RankedResult, n int) []*models.RankedResult {
	if n >= len(results) {
		return results
	}
	return results[:n]
}
