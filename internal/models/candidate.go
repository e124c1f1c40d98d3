package models

// NormForm identifies one of the three parallel normalized string forms.
type NormForm int

const (
	FormStrict NormForm = iota
	FormExact
	FormLoose
)

func (f NormForm) String() string {
	switch f {
	case FormStrict:
		return "strict"
	case FormExact:
		return "exact"
	case FormLoose:
		return "loose"
	default:
		return "unknown"
	}
}

// Field identifies which name field a posting-list family indexes.
type Field int

const (
	FieldVoter Field = iota
	FieldRelative
)

func (f Field) String() string {
	if f == FieldRelative {
		return "relative"
	}
	return "voter"
}

// IndexFamily is one of the six posting-list families: {strict,exact,loose}
// x {voter,relative}.
type IndexFamily struct {
	Form  NormForm
	Field Field
}

// AllIndexFamilies enumerates the six families in a fixed order, used as
// the canonical ordering for CandidateMeta's per-family counters.
var AllIndexFamilies = [6]IndexFamily{
	{FormStrict, FieldVoter}, {FormStrict, FieldRelative},
	{FormExact, FieldVoter}, {FormExact, FieldRelative},
	{FormLoose, FieldVoter}, {FormLoose, FieldRelative},
}

func (fam IndexFamily) index() int {
	for i, f := range AllIndexFamilies {
		if f == fam {
			return i
		}
	}
	return -1
}

// CandidateMeta carries the twelve per-candidate counters: a hit count
// and an and_hit flag for each of the six posting-list families, zero/false
// where that family was not queried.
type CandidateMeta struct {
	HitCount [6]int
	AndHit   [6]bool
}

// RecordHit increments the hit counter for fam and returns the incremented
// value.
func (m *CandidateMeta) RecordHit(fam IndexFamily) int {
	i := fam.index()
	if i < 0 {
		return 0
	}
	m.HitCount[i]++
	return m.HitCount[i]
}

// SetAndHit sets the and_hit bit for fam.
func (m *CandidateMeta) SetAndHit(fam IndexFamily, v bool) {
	if i := fam.index(); i >= 0 {
		m.AndHit[i] = v
	}
}

// PostingRow is one row returned by an IndexStore lookup: an opaque
// row_ids blob plus its companion count column.
type PostingRow struct {
	Key         string
	RowIDsBlob  []byte
	N           int
}
