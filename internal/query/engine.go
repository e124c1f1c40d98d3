// Package query orchestrates candidate generation and ranking across a
// query's AC scope: it fans candidate generation, row fetch, and ranking
// out across ACs, merges the per-AC results into a single ordered
// response, and surfaces progress and partial failures.
package query

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/akshara/internal/candidates"
	"github.com/hyperjump/akshara/internal/models"
	"github.com/hyperjump/akshara/internal/postings"
	"github.com/hyperjump/akshara/internal/ranking"
	"github.com/hyperjump/akshara/internal/storage"
)

// Phase identifies a stage of query execution, reported through Progress.
type Phase string

const (
	PhaseCandidates Phase = "candidates"
	PhaseFetch      Phase = "fetch"
	PhaseRank       Phase = "rank"
	PhaseMerge      Phase = "merge"
)

// Progress is a per-AC throttling callback: phase, done/total AC count,
// and the running candidate count for that AC.
type Progress func(ac int, phase Phase, done, total, candidateCount int)

// Engine runs one fuzzy-match request across the AC scope it is given. It
// holds no per-request state; a single Engine is reused across requests.
type Engine struct {
	rows     storage.RowStore
	postings postings.IndexStore
	logger   *zap.Logger
}

// NewEngine constructs an Engine over the given row and posting-list
// stores.
func NewEngine(rows storage.RowStore, idx postings.IndexStore, logger *zap.Logger) *Engine {
	return &Engine{rows: rows, postings: idx, logger: logger}
}

// acResult is one AC's outcome: either a slice of ranked results, or a
// store error that does not abort the other ACs.
type acResult struct {
	ac      int
	results []*models.RankedResult
	err     error
}

// Search runs q across every AC in q.ACs, ranks each AC's rows
// independently and in parallel, then sequentially merges the per-AC
// results into a single ascending-RankKey order. Per-AC errors are
// collected into the response's Failures rather than aborting the whole
// request.
func (e *Engine) Search(ctx context.Context, q *models.SearchQuery, progress Progress) (*models.SearchResponse, error) {
	start := time.Now()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	gen := candidates.NewGenerator(e.postings)
	ranker := ranking.NewRanker(q.Options)
	opts := q.Options

	acResults := make([]acResult, len(q.ACs))
	var wg sync.WaitGroup
	total := len(q.ACs)

	for i, ac := range q.ACs {
		wg.Add(1)
		go func(i, ac int) {
			defer wg.Done()
			results, err := e.searchOneAC(ctx, ac, q.Query, opts, gen, ranker, progress, i, total)
			acResults[i] = acResult{ac: ac, results: results, err: err}
		}(i, ac)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil //nolint:nilerr // cancellation: not an error, no partial result
	}

	merged, failures := mergeACResults(acResults)

	pageResults := merged
	if q.Limit > 0 && q.Limit < len(pageResults) {
		pageResults = pageResults[:q.Limit]
	}

	resp := &models.SearchResponse{
		Query:     q.Query,
		Results:   pageResults,
		Total:     len(merged),
		QueryTime: time.Since(start).Milliseconds(),
		Failures:  failures,
	}
	return resp, nil
}

// searchOneAC runs candidate generation, row fetch, and ranking for a
// single AC. Decode errors on individual posting-list keys are logged and
// do not fail the AC; only a Lookup/FetchScoreRows I/O error does.
func (e *Engine) searchOneAC(
	ctx context.Context,
	ac int,
	queryText string,
	opts models.RankOptions,
	gen *candidates.Generator,
	ranker *ranking.Ranker,
	progress Progress,
	index, total int,
) ([]*models.RankedResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil
	}

	candMeta, decodeErrs, err := gen.Generate(ctx, queryText, ac, opts)
	if err != nil {
		return nil, fmt.Errorf("ac %d: candidate generation: %w", ac, err)
	}
	for _, derr := range decodeErrs {
		if e.logger != nil {
			e.logger.Warn("posting-list decode error", zap.Int("ac", ac), zap.Error(derr))
		}
	}
	report(progress, ac, PhaseCandidates, index, total, len(candMeta))

	if ctx.Err() != nil {
		return nil, nil
	}
	if len(candMeta) == 0 {
		report(progress, ac, PhaseRank, index, total, 0)
		return nil, nil
	}

	rowIDs := make([]int64, 0, len(candMeta))
	for id := range candMeta {
		rowIDs = append(rowIDs, id)
	}

	rows, err := e.rows.FetchScoreRows(ctx, ac, rowIDs)
	if err != nil {
		return nil, fmt.Errorf("ac %d: row fetch: %w", ac, err)
	}
	report(progress, ac, PhaseFetch, index, total, len(rows))

	if ctx.Err() != nil {
		return nil, nil
	}

	results := ranker.ScoreRows(queryText, rows)
	report(progress, ac, PhaseRank, index, total, len(results))
	return results, nil
}

// mergeACResults concatenates every AC's survivors and sorts once by
// RankKey — the sequential reduction step after the per-AC fan-out.
func mergeACResults(acResults []acResult) ([]*models.RankedResult, []models.PartialFailure) {
	var merged []*models.RankedResult
	var failures []models.PartialFailure
	for _, ar := range acResults {
		if ar.err != nil {
			failures = append(failures, models.PartialFailure{AC: ar.ac, Err: ar.err.Error()})
			continue
		}
		merged = append(merged, ar.results...)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Key.Compare(merged[j].Key) < 0
	})
	return merged, failures
}

func report(progress Progress, ac int, phase Phase, done, total, count int) {
	if progress != nil {
		progress(ac, phase, done, total, count)
	}
}
