package ranking

import (
	"github.com/hyperjump/akshara/internal/confusion"
	"github.com/hyperjump/akshara/internal/entity"
	"github.com/hyperjump/akshara/internal/normalize"
)

// fullResult is the outcome of a word-level FULL comparison.
type fullResult struct {
	OK              bool
	ConMismatches   int
	MatraMismatches int
	TypeBucket      int
}

// tally counts, per equivalence tier, how many aligned entity pairs fell
// into it; shared by compareFull, comparePrefixFallback and
// compareAddOutside so all three compute typeBucket the same way.
type tally struct {
	phonetic, visualP0, visualP1, visualP2 int
}

func (t tally) bucket() int {
	return typeBucket(t.phonetic, t.visualP0, t.visualP1, t.visualP2)
}

func (t *tally) record(typ confusion.Type) bool {
	switch typ {
	case confusion.Phonetic:
		t.phonetic++
	case confusion.VisualP0:
		t.visualP0++
	case confusion.VisualP1:
		t.visualP1++
	case confusion.VisualP2:
		t.visualP2++
	default:
		return false
	}
	return true
}

// compareFull performs the full typo-tolerant comparison: aligned entity-by-entity
// comparison with no length slack. allowSubs=false means an exact
// entity-for-entity match is required (matra differences still tolerated).
func compareFull(qWord, cWord string, allowSubs bool, maxConPerWord int) fullResult {
	marksDiff := abs(normalize.CountMarks(qWord) - normalize.CountMarks(cWord))
	qEnt := entity.Segment(normalize.StripMarks(qWord))
	cEnt := entity.Segment(normalize.StripMarks(cWord))
	if len(qEnt) != len(cEnt) {
		return fullResult{}
	}

	var t tally
	conMismatches, matraMismatches := 0, 0
	for i := range qEnt {
		a, b := qEnt[i], cEnt[i]
		if a == b {
			continue
		}
		if entity.IsMatraLike(a) || entity.IsMatraLike(b) {
			matraMismatches++
			continue
		}
		if !allowSubs {
			return fullResult{}
		}
		if !t.record(confusion.SubstType(a, b)) {
			return fullResult{}
		}
		conMismatches++
	}
	matraMismatches += marksDiff

	if conMismatches > maxConPerWord {
		return fullResult{}
	}

	return fullResult{
		OK:              true,
		ConMismatches:   conMismatches,
		MatraMismatches: matraMismatches,
		TypeBucket:      t.bucket(),
	}
}

// pfResult is the outcome of a word-level PREFIX-FALLBACK comparison.
type pfResult struct {
	OK              bool
	Subs            int
	MatraMismatches int
	TypeBucket      int
	Extra           int // entities in cWord beyond the aligned prefix
}

// comparePrefixFallback is the prefix-only fallback scenario. Applies only when the
// query word segments into 2 or 3 entities; the caller is responsible for
// that precondition. maxSubs is the substitution cap for the word's
// entity count (1 for len 2, 2 for len 3).
func comparePrefixFallback(qWord, cWord string, maxSubs, maxSuffixSlop int) pfResult {
	marksDiff := abs(normalize.CountMarks(qWord) - normalize.CountMarks(cWord))
	qEnt := entity.Segment(normalize.StripMarks(qWord))
	cEnt := entity.Segment(normalize.StripMarks(cWord))

	if len(cEnt) < len(qEnt) {
		return pfResult{}
	}
	extra := len(cEnt) - len(qEnt)
	if extra > maxSuffixSlop {
		return pfResult{}
	}

	var t tally
	subs, matraMismatches := 0, 0
	for i := range qEnt {
		a, b := qEnt[i], cEnt[i]
		if a == b {
			continue
		}
		if entity.IsMatraLike(a) || entity.IsMatraLike(b) {
			matraMismatches++
			continue
		}
		if !t.record(confusion.SubstType(a, b)) {
			return pfResult{}
		}
		subs++
	}
	matraMismatches += marksDiff

	if subs > maxSubs {
		return pfResult{}
	}

	return pfResult{
		OK:              true,
		Subs:            subs,
		MatraMismatches: matraMismatches,
		TypeBucket:      t.bucket(),
		Extra:           extra,
	}
}

// aoResult is the outcome of a word-level ADD/OUTSIDE comparison.
type aoResult struct {
	OK              bool
	Additions       int
	OutsideSubs     int
	MatraMismatches int
	TypeBucket      int
}

// compareAddOutside is the lowest-fidelity fallback family:
// the candidate word may be longer than the query word by up to maxAdd
// entities (pass a value >= the candidate length to leave it effectively
// unlimited), and substitutions within the aligned prefix that match no
// curated relation are tolerated up to outsideCap.
func compareAddOutside(qWord, cWord string, maxAdd, outsideCap int) aoResult {
	marksDiff := abs(normalize.CountMarks(qWord) - normalize.CountMarks(cWord))
	qEnt := entity.Segment(normalize.StripMarks(qWord))
	cEnt := entity.Segment(normalize.StripMarks(cWord))

	if len(cEnt) < len(qEnt) {
		return aoResult{}
	}
	additions := len(cEnt) - len(qEnt)
	if additions > maxAdd {
		return aoResult{}
	}

	var t tally
	outsideSubs, matraMismatches := 0, 0
	for i := range qEnt {
		a, b := qEnt[i], cEnt[i]
		if a == b {
			continue
		}
		if entity.IsMatraLike(a) || entity.IsMatraLike(b) {
			matraMismatches++
			continue
		}
		if !t.record(confusion.SubstType(a, b)) {
			outsideSubs++
		}
	}
	matraMismatches += marksDiff

	if outsideSubs > outsideCap {
		return aoResult{}
	}

	return aoResult{
		OK:              true,
		Additions:       additions,
		OutsideSubs:     outsideSubs,
		MatraMismatches: matraMismatches,
		TypeBucket:      t.bucket(),
	}
}
