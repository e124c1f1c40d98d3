package query

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/hyperjump/akshara/internal/keys"
	"github.com/hyperjump/akshara/internal/models"
)

// fakePostingStore is an in-memory IndexStore keyed by (family, ac, key).
type fakePostingStore struct {
	rows map[models.IndexFamily]map[int]map[string]models.PostingRow
}

func newFakePostingStore() *fakePostingStore {
	return &fakePostingStore{rows: make(map[models.IndexFamily]map[int]map[string]models.PostingRow)}
}

func packU32(vals ...uint32) []byte {
	out := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[i*4:], v)
	}
	return out
}

func (f *fakePostingStore) put(fam models.IndexFamily, ac int, key string, rowIDs ...uint32) {
	if f.rows[fam] == nil {
		f.rows[fam] = make(map[int]map[string]models.PostingRow)
	}
	if f.rows[fam][ac] == nil {
		f.rows[fam][ac] = make(map[string]models.PostingRow)
	}
	prev := f.rows[fam][ac][key]
	f.rows[fam][ac][key] = models.PostingRow{Key: key, RowIDsBlob: append(prev.RowIDsBlob, packU32(rowIDs...)...), N: prev.N + len(rowIDs)}
}

func (f *fakePostingStore) Lookup(ctx context.Context, fam models.IndexFamily, ac int, keys []string) ([]models.PostingRow, error) {
	var out []models.PostingRow
	for _, k := range keys {
		if row, ok := f.rows[fam][ac][k]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakePostingStore) Close() error { return nil }

// fakeRowStore is an in-memory RowStore keyed by (ac, row_id).
type fakeRowStore struct {
	rows map[int]map[int64]models.ScoreRow
}

func newFakeRowStore() *fakeRowStore {
	return &fakeRowStore{rows: make(map[int]map[int64]models.ScoreRow)}
}

func (f *fakeRowStore) put(ac int, row models.ScoreRow) {
	if f.rows[ac] == nil {
		f.rows[ac] = make(map[int64]models.ScoreRow)
	}
	f.rows[ac][row.RowID] = row
}

func (f *fakeRowStore) FetchScoreRows(ctx context.Context, ac int, rowIDs []int64) ([]models.ScoreRow, error) {
	var out []models.ScoreRow
	for _, id := range rowIDs {
		if row, ok := f.rows[ac][id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeRowStore) FetchDisplayRows(ctx context.Context, ac int, rowIDs []int64) ([]models.DisplayRow, error) {
	return nil, nil
}

func (f *fakeRowStore) Close() error { return nil }

// seedExactMatch makes name an EXACT-scenario candidate for ac/rowID by
// seeding every key the strict-form key builder produces for it.
func seedExactMatch(postings *fakePostingStore, rows *fakeRowStore, ac int, rowID int64, name string, serial int64) {
	opts := models.DefaultRankOptions()
	for _, k := range keys.BuildForForm(models.FormStrict, name, opts) {
		postings.put(models.IndexFamily{Form: models.FormStrict, Field: models.FieldVoter}, ac, k, uint32(rowID))
	}
	rows.put(ac, models.ScoreRow{RowID: rowID, VoterNameRaw: name, VoterNameNorm: name, SerialNo: serial})
}

func TestEngineSearchSingleAC(t *testing.T) {
	postings := newFakePostingStore()
	rowStore := newFakeRowStore()
	seedExactMatch(postings, rowStore, 101, 1, "राम कुमार", 10)
	seedExactMatch(postings, rowStore, 101, 2, "राम", 20)

	eng := NewEngine(rowStore, postings, nil)
	opts := models.DefaultRankOptions()
	opts.Scope = models.ScopeVoter
	q := &models.SearchQuery{Query: "राम", ACs: []int{101}, Options: opts, Limit: 20}

	resp, err := eng.Search(context.Background(), q, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("Search() returned %d results, want 2", len(resp.Results))
	}
	if resp.Results[0].Row.RowID != 2 {
		t.Errorf("Results[0].Row.RowID = %d, want 2 (bare राम, no suffix)", resp.Results[0].Row.RowID)
	}
}

func TestEngineSearchMergesAcrossACs(t *testing.T) {
	postings := newFakePostingStore()
	rowStore := newFakeRowStore()
	seedExactMatch(postings, rowStore, 101, 1, "राम कुमार", 1)
	seedExactMatch(postings, rowStore, 102, 1, "राम", 1)

	eng := NewEngine(rowStore, postings, nil)
	opts := models.DefaultRankOptions()
	opts.Scope = models.ScopeVoter
	q := &models.SearchQuery{Query: "राम", ACs: []int{101, 102}, Options: opts, Limit: 20}

	resp, err := eng.Search(context.Background(), q, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("Search() returned %d results, want 2 across both ACs", len(resp.Results))
	}
	if resp.Results[0].Row.RowID != 1 || len(resp.Results[0].Row.VoterNameRaw) == 0 {
		t.Fatalf("unexpected first result %+v", resp.Results[0])
	}
	// AC 102's bare "राम" (suffixCount 0) must outrank AC 101's "राम कुमार" (suffixCount 1).
	if resp.Results[0].Row.VoterNameRaw != "राम" {
		t.Errorf("Results[0].Row.VoterNameRaw = %q, want राम (the suffix-free match)", resp.Results[0].Row.VoterNameRaw)
	}
}

func TestEngineSearchReportsProgress(t *testing.T) {
	postings := newFakePostingStore()
	rowStore := newFakeRowStore()
	seedExactMatch(postings, rowStore, 101, 1, "राम", 1)

	eng := NewEngine(rowStore, postings, nil)
	opts := models.DefaultRankOptions()
	opts.Scope = models.ScopeVoter
	q := &models.SearchQuery{Query: "राम", ACs: []int{101}, Options: opts, Limit: 20}

	var phases []Phase
	_, err := eng.Search(context.Background(), q, func(ac int, phase Phase, done, total, count int) {
		phases = append(phases, phase)
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(phases) == 0 {
		t.Errorf("expected at least one progress callback")
	}
}

func TestEngineSearchValidatesQuery(t *testing.T) {
	eng := NewEngine(newFakeRowStore(), newFakePostingStore(), nil)
	_, err := eng.Search(context.Background(), &models.SearchQuery{Query: "", ACs: []int{101}}, nil)
	if err == nil {
		t.Errorf("Search() with empty query should return a validation error")
	}
}

func TestEngineSearchNoCandidatesReturnsEmpty(t *testing.T) {
	eng := NewEngine(newFakeRowStore(), newFakePostingStore(), nil)
	opts := models.DefaultRankOptions()
	q := &models.SearchQuery{Query: "राम", ACs: []int{101}, Options: opts, Limit: 20}

	resp, err := eng.Search(context.Background(), q, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Results) != 0 {
		t.Errorf("Search() with no seeded data = %d results, want 0", len(resp.Results))
	}
}
