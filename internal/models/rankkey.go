package models

// RankKey is a short tuple of integers in strict lexicographic order —
// lower is better. Its length and the meaning of each element depend on
// which mode/family produced it (see the ranking package), but comparison
// never needs to know that: elementwise lexicographic order on Elems,
// shorter-prefix-wins if one is a strict prefix of the other, and RowID as
// the final tiebreaker, is sufficient because the mode/family discriminator
// always lives in the first two elements and differs whenever the shapes
// diverge.
type RankKey struct {
	Elems      []int64
	Field      Scope
	Breadcrumb string
	RowID      int64
}

// Compare returns -1, 0, or 1 as a sorts before, equal to, or after b.
func (a RankKey) Compare(b RankKey) int {
	n := len(a.Elems)
	if len(b.Elems) < n {
		n = len(b.Elems)
	}
	for i := 0; i < n; i++ {
		if a.Elems[i] != b.Elems[i] {
			if a.Elems[i] < b.Elems[i] {
				return -1
			}
			return 1
		}
	}
	if len(a.Elems) != len(b.Elems) {
		if len(a.Elems) < len(b.Elems) {
			return -1
		}
		return 1
	}
	if a.RowID != b.RowID {
		if a.RowID < b.RowID {
			return -1
		}
		return 1
	}
	return 0
}

// Less reports whether a sorts strictly before b.
func (a RankKey) Less(b RankKey) bool {
	return a.Compare(b) < 0
}
