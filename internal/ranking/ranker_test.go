package ranking

import (
	"testing"

	"github.com/hyperjump/akshara/internal/models"
)

func TestScoreExactMatchWins(t *testing.T) {
	opts := models.DefaultRankOptions()
	opts.Scope = models.ScopeVoter
	r := NewRanker(opts)

	rowA := models.ScoreRow{RowID: 1, VoterNameNorm: "राम कुमार", SerialNo: 10}
	rowB := models.ScoreRow{RowID: 2, VoterNameNorm: "राम", SerialNo: 20}
	rowC := models.ScoreRow{RowID: 3, VoterNameNorm: "रामलाल शर्मा", SerialNo: 30}

	resA, okA := r.Score("राम", rowA)
	resB, okB := r.Score("राम", rowB)
	if !okA || !okB {
		t.Fatalf("both exact-prefix rows should qualify: okA=%v okB=%v", okA, okB)
	}
	if resB.Key.Compare(resA.Key) >= 0 {
		t.Errorf("row B (bare राम, suffixCount 0) should outrank row A (राम कुमार, suffixCount 1); keys A=%v B=%v", resA.Key.Elems, resB.Key.Elems)
	}
	if resA.Key.Elems[0] != 0 {
		t.Errorf("row A should match in EXACT mode, got mode %d", resA.Key.Elems[0])
	}

	resC, okC := r.Score("राम", rowC)
	if okC && resC.Key.Compare(resA.Key) < 0 {
		t.Errorf("row C (रामलाल शर्मा) must not outrank an EXACT match")
	}
}

func TestScoreExactOnlySuppressesTypoFamilies(t *testing.T) {
	opts := models.DefaultRankOptions()
	opts.Scope = models.ScopeVoter
	opts.ExactOnly = true
	r := NewRanker(opts)

	row := models.ScoreRow{RowID: 1, VoterNameNorm: "रामा", SerialNo: 1}
	_, ok := r.Score("राम", row)
	if ok {
		t.Errorf("exactOnly should disqualify a row that only matches via a TYPO family")
	}
}

func TestScoreAnywhereScopePrefersVoterOnTie(t *testing.T) {
	opts := models.DefaultRankOptions()
	opts.Scope = models.ScopeAnywhere
	r := NewRanker(opts)

	row := models.ScoreRow{RowID: 1, VoterNameNorm: "राम", RelativeNameNorm: "राम", SerialNo: 1}
	res, ok := r.Score("राम", row)
	if !ok {
		t.Fatalf("row should match on both fields")
	}
	if res.Field != models.ScopeVoter {
		t.Errorf("Score() with tied voter/relative keys should favor voter, got %v", res.Field)
	}
}

func TestScoreAnywhereScopePicksSmallerKey(t *testing.T) {
	opts := models.DefaultRankOptions()
	opts.Scope = models.ScopeAnywhere
	r := NewRanker(opts)

	// Relative name matches exactly; voter name only matches via a typo
	// family. Anywhere scope must pick the relative field's better key.
	row := models.ScoreRow{RowID: 1, VoterNameNorm: "रामा", RelativeNameNorm: "राम", SerialNo: 1}
	res, ok := r.Score("राम", row)
	if !ok {
		t.Fatalf("row should qualify via the relative field")
	}
	if res.Field != models.ScopeRelative {
		t.Errorf("Score() should pick the relative field's EXACT match over the voter field's typo match, got %v", res.Field)
	}
}

func TestScoreRowsSortsAscendingByKey(t *testing.T) {
	opts := models.DefaultRankOptions()
	opts.Scope = models.ScopeVoter
	r := NewRanker(opts)

	rows := []models.ScoreRow{
		{RowID: 1, VoterNameNorm: "राम कुमार", SerialNo: 10},
		{RowID: 2, VoterNameNorm: "राम", SerialNo: 20},
	}
	results := r.ScoreRows("राम", rows)
	if len(results) != 2 {
		t.Fatalf("ScoreRows() = %d results, want 2", len(results))
	}
	if results[0].Row.RowID != 2 {
		t.Errorf("ScoreRows()[0].Row.RowID = %d, want 2 (bare राम ranks first)", results[0].Row.RowID)
	}
}

func TestScoreNoMatchDisqualifies(t *testing.T) {
	opts := models.DefaultRankOptions()
	opts.Scope = models.ScopeVoter
	r := NewRanker(opts)

	row := models.ScoreRow{RowID: 1, VoterNameNorm: "श्याम लाल", SerialNo: 1}
	_, ok := r.Score("जगदीश", row)
	if ok {
		t.Errorf("Score() should disqualify a row with no plausible relation to the query")
	}
}
