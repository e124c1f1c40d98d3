package main

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/hyperjump/akshara/internal/keys"
	"github.com/hyperjump/akshara/internal/models"
	"github.com/hyperjump/akshara/internal/postings"
	"github.com/hyperjump/akshara/internal/storage"
)

func newTestStores(t *testing.T) (*storage.SQLiteRowStore, *postings.SQLitePostingStore) {
	t.Helper()
	dir := t.TempDir()
	rows, err := storage.NewSQLiteRowStore(dir + "/rows.db")
	if err != nil {
		t.Fatalf("NewSQLiteRowStore: %v", err)
	}
	t.Cleanup(func() { rows.Close() })
	idx, err := postings.NewSQLitePostingStore(dir + "/postings.db")
	if err != nil {
		t.Fatalf("NewSQLitePostingStore: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return rows, idx
}

func TestLoadCSVInsertsRowsAndBuildsPostings(t *testing.T) {
	rows, idx := newTestStores(t)
	ctx := context.Background()
	csvData := "1,राम कुमार,श्याम लाल,ABC1234567,45,M,12,7\n" +
		"2,सीता देवी,राम कुमार,ABC7654321,38,F,13,7\n"

	n, err := loadCSV(ctx, strings.NewReader(csvData), 101, rows, idx, nil, models.DefaultRankOptions(), zap.NewNop())
	if err != nil {
		t.Fatalf("loadCSV: %v", err)
	}
	if n != 2 {
		t.Fatalf("loadCSV rows = %d, want 2", n)
	}

	fetched, err := rows.FetchScoreRows(ctx, 101, []int64{1, 2})
	if err != nil {
		t.Fatalf("FetchScoreRows: %v", err)
	}
	if len(fetched) != 2 {
		t.Fatalf("FetchScoreRows returned %d rows, want 2", len(fetched))
	}

	opts := models.DefaultRankOptions()
	keySet := keys.BuildForForm(models.FormStrict, "राम कुमार", opts)
	got, err := idx.Lookup(ctx, models.IndexFamily{Form: models.FormStrict, Field: models.FieldVoter}, 101, keySet)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(got) == 0 {
		t.Error("expected at least one posting-list hit for the indexed voter name")
	}
}

func TestLoadCSVRejectsMalformedRow(t *testing.T) {
	rows, idx := newTestStores(t)
	_, err := loadCSV(context.Background(), strings.NewReader("1,only,three,fields\n"), 101, rows, idx, nil, models.DefaultRankOptions(), zap.NewNop())
	if err == nil {
		t.Error("loadCSV should reject a row with the wrong column count")
	}
}
