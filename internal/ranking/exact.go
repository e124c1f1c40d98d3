package ranking

import "strings"

// targetKind classifies a candidate-derived EXACT-scenario target.
// Ordinal value doubles as the kindRank the exact-scenario mode sorts by.
type targetKind int

const (
	kindToken targetKind = iota
	kindJoin2
	kindFullJoin
)

type target struct {
	kind targetKind
	pos  int
	text string
}

// buildTargets enumerates a candidate token sequence's EXACT-scenario
// targets: every single token, every adjacent 2-token concatenation, and
// (candidate length >= 2) the full concatenation of all tokens.
func buildTargets(cTokens []string) []target {
	targets := make([]target, 0, 2*len(cTokens))
	for i, tok := range cTokens {
		targets = append(targets, target{kindToken, i, tok})
	}
	for i := 0; i+1 < len(cTokens); i++ {
		targets = append(targets, target{kindJoin2, i, cTokens[i] + cTokens[i+1]})
	}
	if len(cTokens) >= 2 {
		targets = append(targets, target{kindFullJoin, 0, strings.Join(cTokens, "")})
	}
	return targets
}

// betterTarget reports whether a ranks ahead of b by (kindRank, position).
func betterTarget(a, b target) bool {
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	return a.pos < b.pos
}

// exactMatch is the outcome of EXACT scenario detection for one field.
type exactMatch struct {
	OK           bool
	ScenarioID   int
	KindRank     int
	Pos          int
	SuffixCount  int
}

// matchSingleWordExact handles the single-token query path:
// prefer an exact target match (scenario 0), falling back to a first-token
// match with a suffix count (scenario 1). Because cTokens[0] is itself a
// TOKEN target, a first-token match is always reported as scenario 0; the
// scenario-1 branch is never reached.
func matchSingleWordExact(q string, cTokens []string) exactMatch {
	targets := buildTargets(cTokens)

	var best *target
	for i := range targets {
		if targets[i].text != q {
			continue
		}
		if best == nil || betterTarget(targets[i], *best) {
			t := targets[i]
			best = &t
		}
	}
	if best != nil {
		return exactMatch{
			OK:          true,
			ScenarioID:  0,
			KindRank:    int(best.kind),
			Pos:         best.pos,
			SuffixCount: len(cTokens) - 1,
		}
	}

	if len(cTokens) > 0 && cTokens[0] == q {
		return exactMatch{
			OK:          true,
			ScenarioID:  1,
			KindRank:    0,
			Pos:         0,
			SuffixCount: len(cTokens) - 1,
		}
	}

	return exactMatch{}
}

// matchMultiWordExact implements the multi-token EXACT path: the candidate
// must start with the query's tokens, elementwise, in order.
func matchMultiWordExact(qTokens, cTokens []string) exactMatch {
	if len(cTokens) < len(qTokens) {
		return exactMatch{}
	}
	for i, q := range qTokens {
		if cTokens[i] != q {
			return exactMatch{}
		}
	}
	return exactMatch{
		OK:          true,
		ScenarioID:  10,
		KindRank:    0,
		Pos:         0,
		SuffixCount: len(cTokens) - len(qTokens),
	}
}
