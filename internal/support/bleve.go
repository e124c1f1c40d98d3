package support

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
)

// BleveRowIndex implements RowIndex using Bleve: open the index at path if
// it already exists, otherwise build a fresh one from the mapping below.
type BleveRowIndex struct {
	index bleve.Index
}

// NewBleveRowIndex creates or opens a Bleve index at path over the two raw
// name fields.
func NewBleveRowIndex(path string) (*BleveRowIndex, error) {
	im := bleve.NewIndexMapping()

	rowMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = standard.Name
	rowMapping.AddFieldMappingsAt("voter_name_raw", textFieldMapping)
	rowMapping.AddFieldMappingsAt("relative_name_raw", textFieldMapping)
	im.AddDocumentMapping("row", rowMapping)
	im.DefaultType = "row"
	im.DefaultMapping = rowMapping

	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open support index: %w", openErr)
		}
		return &BleveRowIndex{index: index}, nil
	}

	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create support index: %w", err)
	}
	return &BleveRowIndex{index: index}, nil
}

// docID is the Bleve document id for a row: "ac:row_id".
func docID(ac int, rowID int64) string {
	return fmt.Sprintf("%d:%d", ac, rowID)
}

func parseDocID(id string) (ac int, rowID int64, ok bool) {
	parts := strings.SplitN(id, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	acVal, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	rowVal, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return acVal, rowVal, true
}

// Index indexes one row for operator free-text lookup.
func (b *BleveRowIndex) Index(ctx context.Context, doc RowDoc) error {
	return b.index.Index(docID(doc.AC, doc.RowID), map[string]string{
		"voter_name_raw":    doc.VoterNameRaw,
		"relative_name_raw": doc.RelativeNameRaw,
	})
}

// Search runs a plain match query over both name fields.
func (b *BleveRowIndex) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	q := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequest(q)
	req.Size = limit
	results, err := b.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("support search failed: %w", err)
	}
	out := make([]Hit, 0, len(results.Hits))
	for _, hit := range results.Hits {
		ac, rowID, ok := parseDocID(hit.ID)
		if !ok {
			continue
		}
		out = append(out, Hit{AC: ac, RowID: rowID, Score: hit.Score})
	}
	return out, nil
}

// Delete removes a row from the index.
func (b *BleveRowIndex) Delete(ctx context.Context, ac int, rowID int64) error {
	return b.index.Delete(docID(ac, rowID))
}

// Close closes the Bleve index.
func (b *BleveRowIndex) Close() error {
	return b.index.Close()
}

// DocCount returns the total number of indexed rows.
func (b *BleveRowIndex) DocCount() (uint64, error) {
	return b.index.DocCount()
}

// GetTermDocFrequency returns the number of rows containing term, counting
// unique documents across both name fields.
func (b *BleveRowIndex) GetTermDocFrequency(term string) (int, error) {
	q := bleve.NewMatchQuery(term)
	req := bleve.NewSearchRequest(q)
	req.Size = 10000
	results, err := b.index.Search(req)
	if err != nil {
		return 0, fmt.Errorf("failed to search for term frequency: %w", err)
	}
	return int(results.Total), nil
}

// GetAllTerms returns all unique terms across both name fields, for
// keyword.SpellChecker's TermDictionary.
func (b *BleveRowIndex) GetAllTerms() ([]string, error) {
	terms := make([]string, 0)
	seen := make(map[string]struct{})

	for _, field := range []string{"voter_name_raw", "relative_name_raw"} {
		dict, err := b.index.FieldDict(field)
		if err != nil {
			continue
		}
		for {
			entry, err := dict.Next()
			if err != nil || entry == nil {
				break
			}
			if _, ok := seen[entry.Term]; !ok {
				terms = append(terms, entry.Term)
				seen[entry.Term] = struct{}{}
			}
		}
		dict.Close()
	}
	return terms, nil
}

// ContainsTerm reports whether term occurs in any indexed row.
func (b *BleveRowIndex) ContainsTerm(term string) (bool, error) {
	freq, err := b.GetTermDocFrequency(term)
	if err != nil {
		return false, err
	}
	return freq > 0, nil
}

// GetTermFrequency is an alias for GetTermDocFrequency, satisfying
// keyword.TermDictionary.
func (b *BleveRowIndex) GetTermFrequency(term string) (int, error) {
	return b.GetTermDocFrequency(term)
}
