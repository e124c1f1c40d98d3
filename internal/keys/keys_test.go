package keys

import (
	"reflect"
	"testing"

	"github.com/hyperjump/akshara/internal/models"
	"github.com/hyperjump/akshara/internal/normalize"
)

func TestBuildSingleToken(t *testing.T) {
	got := Build(normalize.NormStrict, 3, "रामकुमार")
	want := []string{"राम"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Build() = %v, want %v", got, want)
	}
}

func TestBuildTwoTokensIncludesJoinAndFullConcat(t *testing.T) {
	got := Build(normalize.NormStrict, 3, "राम कुमार")
	seen := toSet(got)
	if _, ok := seen["राम"]; !ok {
		t.Errorf("Build() missing per-token prefix %q, got %v", "राम", got)
	}
	if _, ok := seen["कुम"]; !ok {
		t.Errorf("Build() missing per-token prefix %q, got %v", "कुम", got)
	}
	joined := prefix("रामकुमार", 3)
	if _, ok := seen[joined]; !ok {
		t.Errorf("Build() missing full-concat prefix %q, got %v", joined, got)
	}
}

func TestBuildFourTokensIncludesSpacelessCollapse(t *testing.T) {
	got := Build(normalize.NormStrict, 3, "अ ब स द")
	seen := toSet(got)
	// join variant merging tokens 0,1: "अब स द" -> spaceless "अबसद"
	if _, ok := seen[prefix("अबसद", 3)]; !ok {
		t.Errorf("Build() missing spaceless-collapsed variant, got %v", got)
	}
}

func TestBuildEmpty(t *testing.T) {
	if got := Build(normalize.NormStrict, 3, ""); got != nil {
		t.Errorf("Build(\"\") = %v, want nil", got)
	}
}

func TestBuildDeduplicates(t *testing.T) {
	got := Build(normalize.NormStrict, 3, "राम राम")
	count := 0
	for _, k := range got {
		if k == "राम" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Build() contains %d copies of %q, want 1 (deduplicated)", count, "राम")
	}
}

func TestBuildAllCoversThreeForms(t *testing.T) {
	all := BuildAll("राम कुमार", models.DefaultRankOptions())
	for _, form := range []models.NormForm{models.FormStrict, models.FormExact, models.FormLoose} {
		if len(all[form]) == 0 {
			t.Errorf("BuildAll()[%v] is empty", form)
		}
	}
}

func toSet(keys []string) map[string]struct{} {
	s := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}
