package ranking

import "testing"

func TestBuildTargetsSingleToken(t *testing.T) {
	targets := buildTargets([]string{"राम"})
	if len(targets) != 1 {
		t.Fatalf("buildTargets(single token) = %d targets, want 1 (no join/fulljoin possible)", len(targets))
	}
	if targets[0].kind != kindToken || targets[0].text != "राम" {
		t.Errorf("buildTargets(single token)[0] = %+v", targets[0])
	}
}

func TestBuildTargetsTwoTokens(t *testing.T) {
	targets := buildTargets([]string{"राम", "कुमार"})
	// 2 tokens + 1 join2 + 1 fulljoin = 4 targets.
	if len(targets) != 4 {
		t.Fatalf("buildTargets(2 tokens) = %d targets, want 4", len(targets))
	}
}

func TestMatchSingleWordExactPrefersTokenOverJoin(t *testing.T) {
	m := matchSingleWordExact("राम", []string{"राम", "कुमार"})
	if !m.OK || m.ScenarioID != 0 || m.KindRank != int(kindToken) || m.Pos != 0 {
		t.Errorf("matchSingleWordExact(राम, [राम कुमार]) = %+v, want scenario 0, TOKEN at pos 0", m)
	}
	if m.SuffixCount != 1 {
		t.Errorf("matchSingleWordExact SuffixCount = %d, want 1 (one extra candidate token)", m.SuffixCount)
	}
}

func TestMatchSingleWordExactSoleTokenIsScenario0(t *testing.T) {
	m := matchSingleWordExact("राम", []string{"राम"})
	if !m.OK || m.ScenarioID != 0 || m.SuffixCount != 0 {
		t.Errorf("matchSingleWordExact(राम, [राम]) = %+v, want scenario 0, suffixCount 0", m)
	}
}

func TestMatchSingleWordExactNoMatch(t *testing.T) {
	m := matchSingleWordExact("राम", []string{"रामलाल", "शर्मा"})
	if m.OK {
		t.Errorf("matchSingleWordExact should fail when no target equals the query, got %+v", m)
	}
}

func TestMatchSingleWordExactFirstTokenScenario(t *testing.T) {
	m := matchSingleWordExact("सीता", []string{"सीता", "देवी"})
	if !m.OK || m.ScenarioID != 0 || m.KindRank != int(kindToken) {
		t.Errorf("matchSingleWordExact(सीता, [सीता देवी]) = %+v, want scenario 0 via the TOKEN target", m)
	}
}

func TestMatchMultiWordExactRequiresPrefixMatch(t *testing.T) {
	m := matchMultiWordExact([]string{"राम", "कुमार"}, []string{"राम", "कुमार", "सिंह"})
	if !m.OK || m.ScenarioID != 10 || m.SuffixCount != 1 {
		t.Errorf("matchMultiWordExact = %+v, want scenario 10, suffixCount 1", m)
	}
}

func TestMatchMultiWordExactFailsOnMismatch(t *testing.T) {
	m := matchMultiWordExact([]string{"राम", "कुमार"}, []string{"राम", "सिंह"})
	if m.OK {
		t.Errorf("matchMultiWordExact should fail when tokens diverge, got %+v", m)
	}
}

func TestMatchMultiWordExactFailsWhenCandidateShorter(t *testing.T) {
	m := matchMultiWordExact([]string{"राम", "कुमार", "सिंह"}, []string{"राम", "कुमार"})
	if m.OK {
		t.Errorf("matchMultiWordExact should fail when candidate has fewer tokens than the query, got %+v", m)
	}
}
