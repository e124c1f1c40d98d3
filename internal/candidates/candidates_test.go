package candidates

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/hyperjump/akshara/internal/keys"
	"github.com/hyperjump/akshara/internal/models"
)

// fakeStore is an in-memory IndexStore keyed by (family, ac, key).
type fakeStore struct {
	rows map[models.IndexFamily]map[int]map[string]models.PostingRow
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[models.IndexFamily]map[int]map[string]models.PostingRow)}
}

func packU32(vals ...uint32) []byte {
	out := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[i*4:], v)
	}
	return out
}

func (f *fakeStore) put(fam models.IndexFamily, ac int, key string, rowIDs ...uint32) {
	if f.rows[fam] == nil {
		f.rows[fam] = make(map[int]map[string]models.PostingRow)
	}
	if f.rows[fam][ac] == nil {
		f.rows[fam][ac] = make(map[string]models.PostingRow)
	}
	f.rows[fam][ac][key] = models.PostingRow{Key: key, RowIDsBlob: packU32(rowIDs...), N: len(rowIDs)}
}

func (f *fakeStore) Lookup(ctx context.Context, fam models.IndexFamily, ac int, keys []string) ([]models.PostingRow, error) {
	var out []models.PostingRow
	for _, k := range keys {
		if row, ok := f.rows[fam][ac][k]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeStore) Close() error { return nil }

func TestGenerateSingleWordStrictAndExactOnly(t *testing.T) {
	store := newFakeStore()
	store.put(models.IndexFamily{Form: models.FormStrict, Field: models.FieldVoter}, 101, "राम", 1, 2)
	// NormExact("राम") = "रAम" (ा folds to the A bucket); the exact family's
	// default prefix length is 2, so the built key truncates to "रA".
	store.put(models.IndexFamily{Form: models.FormExact, Field: models.FieldVoter}, 101, "रA", 1, 3)

	opts := models.DefaultRankOptions()
	opts.Scope = models.ScopeVoter
	opts.ExactOnly = true

	g := NewGenerator(store)
	got, decodeErrs, err := g.Generate(context.Background(), "राम", 101, opts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(decodeErrs) != 0 {
		t.Fatalf("unexpected decode errors: %v", decodeErrs)
	}
	if len(got) != 3 {
		t.Fatalf("Generate() produced %d candidates, want 3 (union of {1,2} and {1,3})", len(got))
	}
	if _, ok := got[1]; !ok {
		t.Errorf("candidate 1 should be present (hit by both families)")
	}
	meta1 := got[1]
	strictIdx := models.IndexFamily{Form: models.FormStrict, Field: models.FieldVoter}
	exactIdx := models.IndexFamily{Form: models.FormExact, Field: models.FieldVoter}
	if meta1.HitCount[indexOf(strictIdx)] != 1 || meta1.HitCount[indexOf(exactIdx)] != 1 {
		t.Errorf("candidate 1 HitCount = %+v, want 1 hit in both strict and exact voter families", meta1.HitCount)
	}
}

func TestGenerateExactOnlySkipsLooseFamily(t *testing.T) {
	store := newFakeStore()
	// NormLoose("राम") folds र to क (confusable group) giving "कAम"; the
	// loose family's default prefix length is 2, truncating to "कA".
	store.put(models.IndexFamily{Form: models.FormLoose, Field: models.FieldVoter}, 101, "कA", 9)

	opts := models.DefaultRankOptions()
	opts.Scope = models.ScopeVoter
	opts.ExactOnly = true

	g := NewGenerator(store)
	got, _, err := g.Generate(context.Background(), "राम", 101, opts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Generate() with ExactOnly=true should never query the loose family, got %+v", got)
	}
}

func TestGenerateNonExactQueriesLooseFamily(t *testing.T) {
	store := newFakeStore()
	store.put(models.IndexFamily{Form: models.FormLoose, Field: models.FieldVoter}, 101, "कA", 9)

	opts := models.DefaultRankOptions()
	opts.Scope = models.ScopeVoter
	opts.ExactOnly = false

	g := NewGenerator(store)
	got, _, err := g.Generate(context.Background(), "राम", 101, opts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, ok := got[9]; !ok {
		t.Errorf("Generate() with ExactOnly=false should query the loose family, got %+v", got)
	}
}

func TestGenerateScopeRestrictsFields(t *testing.T) {
	store := newFakeStore()
	store.put(models.IndexFamily{Form: models.FormStrict, Field: models.FieldVoter}, 101, "राम", 1)
	store.put(models.IndexFamily{Form: models.FormStrict, Field: models.FieldRelative}, 101, "राम", 2)

	opts := models.DefaultRankOptions()
	opts.Scope = models.ScopeVoter
	opts.ExactOnly = true

	g := NewGenerator(store)
	got, _, err := g.Generate(context.Background(), "राम", 101, opts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, ok := got[2]; ok {
		t.Errorf("Generate() with Scope=voter should not touch the relative family, got %+v", got)
	}
	if _, ok := got[1]; !ok {
		t.Errorf("Generate() with Scope=voter should find the voter-family hit")
	}
}

func TestGenerateScopeAnywhereQueriesBothFields(t *testing.T) {
	store := newFakeStore()
	store.put(models.IndexFamily{Form: models.FormStrict, Field: models.FieldVoter}, 101, "राम", 1)
	store.put(models.IndexFamily{Form: models.FormStrict, Field: models.FieldRelative}, 101, "राम", 2)

	opts := models.DefaultRankOptions()
	opts.Scope = models.ScopeAnywhere
	opts.ExactOnly = true

	g := NewGenerator(store)
	got, _, err := g.Generate(context.Background(), "राम", 101, opts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, ok := got[1]; !ok {
		t.Errorf("Generate() with Scope=anywhere should find the voter hit, got %+v", got)
	}
	if _, ok := got[2]; !ok {
		t.Errorf("Generate() with Scope=anywhere should find the relative hit, got %+v", got)
	}
}

func TestGenerateAndHitSetWhenRowMatchesEveryQueriedKey(t *testing.T) {
	store := newFakeStore()
	fam := models.IndexFamily{Form: models.FormStrict, Field: models.FieldVoter}
	// "राम कुमार" tokenizes to two tokens; with PrefixLenStrict=3 every key
	// is cut to its first three runes, so the key set is exactly
	// {"राम", "कुम"}: the join and full-concat variants both truncate to "राम".
	// Seed row 5 under every key this query will build so its and_hit bit
	// for (strict, voter) ends up true.
	opts := models.DefaultRankOptions()
	opts.Scope = models.ScopeVoter
	opts.ExactOnly = true

	g := NewGenerator(store)
	built := keys.BuildForForm(models.FormStrict, "राम कुमार", opts)
	for _, k := range built {
		store.put(fam, 101, k, 5)
	}

	got, _, err := g.Generate(context.Background(), "राम कुमार", 101, opts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	meta, ok := got[5]
	if !ok {
		t.Fatalf("candidate 5 should be present")
	}
	if !meta.AndHit[indexOf(fam)] {
		t.Errorf("AndHit for strict/voter should be true when every queried key hit row 5; HitCount=%+v", meta.HitCount)
	}
}
