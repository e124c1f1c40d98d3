package main

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/akshara/internal/models"
)

func TestWriteShortlist(t *testing.T) {
	response := &models.SearchResponse{
		Query: "राम कुमार",
		Total: 2,
		Results: []*models.RankedResult{
			{Row: models.ScoreRow{RowID: 1, SerialNo: 10, VoterNameRaw: "राम कुमार"}, Field: models.ScopeVoter},
			{Row: models.ScoreRow{RowID: 2, SerialNo: 11, RelativeNameRaw: "राम कुमार"}, Field: models.ScopeRelative},
		},
	}

	path := filepath.Join(t.TempDir(), "shortlist.xlsx")
	if err := writeShortlist(path, response); err != nil {
		t.Fatalf("writeShortlist: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Shortlist")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("GetRows returned %d rows, want 3 (header + 2 results)", len(rows))
	}
	if rows[0][0] != "Rank" {
		t.Errorf("header row[0] = %q, want Rank", rows[0][0])
	}
	if rows[1][3] != "राम कुमार" {
		t.Errorf("row 1 voter name = %q, want राम कुमार", rows[1][3])
	}
	if rows[2][4] != "राम कुमार" {
		t.Errorf("row 2 relative name = %q, want राम कुमार", rows[2][4])
	}
}
