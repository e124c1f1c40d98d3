package ranking

import (
	"math"

	"github.com/hyperjump/akshara/internal/entity"
	"github.com/hyperjump/akshara/internal/models"
	"github.com/hyperjump/akshara/internal/normalize"
)

const unlimited = math.MaxInt32

func qEntLen(word string) int {
	return len(entity.Segment(normalize.StripMarks(word)))
}

// weight gives earlier query words more influence over a position-weighted
// sum: the first of k words carries weight k, the last carries weight 1.
func weight(k, i int) int {
	return k - i
}

// profileBucket maps the per-word "does this word carry a consonant
// mismatch" pattern onto a small non-negative integer. Earlier words are
// weighted more heavily so that, for equal mismatch counts, a mismatch in
// an earlier word ranks worse — this generalizes the twelve named typing
// profiles (1/4/7 for one/two/three-or-more query words) to any word
// count while staying monotonic and deterministic.
func profileBucket(hasMismatch []bool) int {
	b := 0
	n := len(hasMismatch)
	for i, m := range hasMismatch {
		if m {
			b |= 1 << (n - 1 - i)
		}
	}
	return b
}

func severity(conMismatches, typeBucket, matraMismatches int) int {
	return conMismatches*1_000_000 + typeBucket*10_000 + matraMismatches
}

// scoreExact handles mode 0 for both single- and multi-word queries.
func scoreExact(qTokens, cTokens []string, serial, rowID int64) (models.RankKey, string, bool) {
	var m exactMatch
	if len(qTokens) == 1 {
		m = matchSingleWordExact(qTokens[0], cTokens)
	} else {
		m = matchMultiWordExact(qTokens, cTokens)
	}
	if !m.OK {
		return models.RankKey{}, "", false
	}
	key := models.RankKey{
		Elems:      []int64{0, int64(m.ScenarioID), int64(m.KindRank), int64(m.Pos), int64(m.SuffixCount), int64(len(cTokens)), serial},
		Breadcrumb: "exact",
		RowID:      rowID,
	}
	return key, "exact", true
}

// scoreSingleWordTypo handles the k=1 fuzzy path: compare against every
// TOKEN/JOIN2/FULLJOIN target of the candidate, keep the minimum FULL key,
// falling through to ADD/OUTSIDE targets when no FULL target qualifies.
func scoreSingleWordTypo(qWord string, cTokens []string, opts models.RankOptions, serial, rowID int64) (models.RankKey, string, bool) {
	targets := buildTargets(cTokens)
	total := len(cTokens)

	var best *models.RankKey
	var breadcrumb string
	consider := func(k models.RankKey, b string) {
		if best == nil || k.Compare(*best) < 0 {
			kk := k
			best = &kk
			breadcrumb = b
		}
	}

	for _, tg := range targets {
		res := compareFull(qWord, tg.text, true, opts.MaxConPerWord)
		if !res.OK {
			continue
		}
		span := spanOf(tg.kind, total)
		suffixCount := total - span
		key := models.RankKey{
			Elems:      []int64{1, 0, 0, int64(severity(res.ConMismatches, res.TypeBucket, res.MatraMismatches)), int64(suffixCount), int64(total), serial},
			Breadcrumb: "typo_full",
			RowID:      rowID,
		}
		consider(key, "typo_full")
	}
	if best != nil {
		return *best, breadcrumb, true
	}

	outsideCap := opts.OutsideCapsByQLen(qEntLen(qWord))
	for _, tg := range targets {
		res := compareAddOutside(qWord, tg.text, unlimited, outsideCap)
		if !res.OK {
			continue
		}
		span := spanOf(tg.kind, total)
		suffixCount := total - span
		key := models.RankKey{
			Elems: []int64{
				1, 2,
				int64(res.OutsideSubs), int64(res.Additions),
				int64(res.TypeBucket), int64(res.MatraMismatches),
				int64(suffixCount), int64(total), serial,
			},
			Breadcrumb: "typo_ao",
			RowID:      rowID,
		}
		consider(key, "typo_ao")
	}
	if best != nil {
		return *best, breadcrumb, true
	}
	return models.RankKey{}, "", false
}

func spanOf(kind targetKind, totalTokens int) int {
	switch kind {
	case kindToken:
		return 1
	case kindJoin2:
		return 2
	default:
		return totalTokens
	}
}

// scoreMultiWordTypo handles k>=2: FULL word-by-word, else PF, else AO,
// aligning query token i against candidate token i and treating any
// candidate tokens beyond position k-1 as the suffix count.
func scoreMultiWordTypo(qTokens, cTokens []string, opts models.RankOptions, serial, rowID int64) (models.RankKey, string, bool) {
	k := len(qTokens)
	m := len(cTokens)
	if m < k {
		return models.RankKey{}, "", false
	}
	suffixCount := m - k

	if key, ok := scoreFullMulti(qTokens, cTokens, opts, suffixCount, serial, rowID); ok {
		return key, "typo_full", true
	}
	if key, ok := scorePFMulti(qTokens, cTokens, opts, suffixCount, serial, rowID); ok {
		return key, "typo_pf", true
	}
	if key, ok := scoreAOMulti(qTokens, cTokens, opts, suffixCount, serial, rowID); ok {
		return key, "typo_ao", true
	}
	return models.RankKey{}, "", false
}

func totalConCap(k int, opts models.RankOptions) int {
	if k <= 2 {
		return opts.MaxConTotal2W
	}
	return opts.MaxConTotal3PlusW
}

func scoreFullMulti(qTokens, cTokens []string, opts models.RankOptions, suffixCount int, serial, rowID int64) (models.RankKey, bool) {
	k := len(qTokens)
	hasMismatch := make([]bool, k)
	totalCon := 0
	totalSeverity := 0

	for i := 0; i < k; i++ {
		res := compareFull(qTokens[i], cTokens[i], true, opts.MaxConPerWord)
		if !res.OK {
			return models.RankKey{}, false
		}
		hasMismatch[i] = res.ConMismatches > 0
		totalCon += res.ConMismatches
		totalSeverity += severity(res.ConMismatches, res.TypeBucket, res.MatraMismatches)
	}
	if totalCon > totalConCap(k, opts) {
		return models.RankKey{}, false
	}

	bucket := profileBucket(hasMismatch)
	key := models.RankKey{
		Elems:      []int64{1, 0, int64(bucket), int64(totalSeverity), int64(suffixCount), int64(len(cTokens)), serial},
		Breadcrumb: "typo_full",
		RowID:      rowID,
	}
	return key, true
}

func scorePFMulti(qTokens, cTokens []string, opts models.RankOptions, suffixCount int, serial, rowID int64) (models.RankKey, bool) {
	k := len(qTokens)
	subsSum, typeSum, matraSum, extraSum := 0, 0, 0, 0

	for i := 0; i < k; i++ {
		w := weight(k, i)
		qLen := qEntLen(qTokens[i])

		switch qLen {
		case 2:
			res := comparePrefixFallback(qTokens[i], cTokens[i], opts.PFMaxSubsFor2W, opts.PFMaxExtraSuffixPerWord)
			if !res.OK {
				return models.RankKey{}, false
			}
			subsSum += res.Subs * w
			typeSum += res.TypeBucket * w
			matraSum += res.MatraMismatches * w
			extraSum += res.Extra
		case 3:
			res := comparePrefixFallback(qTokens[i], cTokens[i], opts.PFMaxSubsFor3W, opts.PFMaxExtraSuffixPerWord)
			if !res.OK {
				return models.RankKey{}, false
			}
			subsSum += res.Subs * w
			typeSum += res.TypeBucket * w
			matraSum += res.MatraMismatches * w
			extraSum += res.Extra
		default:
			// Words outside the {2,3}-entity precondition must already
			// match exactly for PF to admit the candidate.
			if qTokens[i] != cTokens[i] {
				return models.RankKey{}, false
			}
		}
	}
	extraSum *= opts.PFGlobalExtraMultiplier

	key := models.RankKey{
		Elems:      []int64{1, 1, int64(subsSum), int64(typeSum), int64(matraSum), int64(extraSum), int64(suffixCount), int64(len(cTokens)), serial},
		Breadcrumb: "typo_pf",
		RowID:      rowID,
	}
	return key, true
}

func scoreAOMulti(qTokens, cTokens []string, opts models.RankOptions, suffixCount int, serial, rowID int64) (models.RankKey, bool) {
	k := len(qTokens)
	outsideTotal, addTotal, typeSum, matraSum := 0, 0, 0, 0

	for i := 0; i < k; i++ {
		w := weight(k, i)
		maxAdd := unlimited
		if i == 0 {
			maxAdd = opts.AddFirstWordMaxAddInMulti
		}
		outsideCap := opts.OutsideCapsByQLen(qEntLen(qTokens[i]))

		res := compareAddOutside(qTokens[i], cTokens[i], maxAdd, outsideCap)
		if !res.OK {
			return models.RankKey{}, false
		}

		addWeighted := res.Additions * w
		if i == 0 {
			addWeighted *= 2
		}
		addTotal += addWeighted
		outsideTotal += res.OutsideSubs * w
		typeSum += res.TypeBucket * w
		matraSum += res.MatraMismatches * w
	}

	key := models.RankKey{
		Elems:      []int64{1, 2, int64(outsideTotal), int64(addTotal), int64(typeSum), int64(matraSum), int64(suffixCount), int64(len(cTokens)), serial},
		Breadcrumb: "typo_ao",
		RowID:      rowID,
	}
	return key, true
}
