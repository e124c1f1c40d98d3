// Package confusion defines the curated phonetic and visual equivalence
// relations over Devanagari entities, and the entity vocabulary derived
// from them. The relations are fixed at init time and never mutated
// afterward, so they can be shared by reference across concurrent requests.
package confusion

import "sort"

// Type classifies how two entities relate to each other, in order of
// decreasing equivalence strength.
type Type int

const (
	// Exact means the two entities are identical.
	Exact Type = iota
	// Phonetic means the entities are in the same phonetic confusion group.
	Phonetic
	// VisualP0 is the strongest visual confusability tier.
	VisualP0
	// VisualP1 is the middle visual confusability tier.
	VisualP1
	// VisualP2 is the weakest visual confusability tier.
	VisualP2
	// Other means no curated relation holds between the entities.
	Other
)

func (t Type) String() string {
	switch t {
	case Exact:
		return "exact"
	case Phonetic:
		return "phonetic"
	case VisualP0:
		return "visual_p0"
	case VisualP1:
		return "visual_p1"
	case VisualP2:
		return "visual_p2"
	default:
		return "other"
	}
}

// relation is an equivalence-class-style grouping: entities in the same
// group are mutually related. Built once from group lists, never mutated.
type relation struct {
	groupOf map[string][]int
}

func buildRelation(groups [][]string) relation {
	r := relation{groupOf: make(map[string][]int)}
	for gid, group := range groups {
		for _, entity := range group {
			r.groupOf[entity] = append(r.groupOf[entity], gid)
		}
	}
	return r
}

func (r relation) related(a, b string) bool {
	if a == b {
		return false
	}
	for _, ga := range r.groupOf[a] {
		for _, gb := range r.groupOf[b] {
			if ga == gb {
				return true
			}
		}
	}
	return false
}

func (r relation) vocabulary() []string {
	seen := make(map[string]struct{}, len(r.groupOf))
	for e := range r.groupOf {
		seen[e] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for e := range seen {
		out = append(out, e)
	}
	return out
}

// PhoneticGroups are entities that sound alike and are routinely
// substituted for one another by typists and OCR alike. Curated from the
// canonical mined confusable examples plus the common stop/sibilant
// confusions that show up in Hindi name data.
var PhoneticGroups = [][]string{
	{"क", "ख"},
	{"ग", "घ"},
	{"ड", "ढ", "द", "ध", "त", "थ"},
	{"ब", "भ", "व"},
	{"स", "श", "ष"},
	{"ज", "झ"},
	{"च", "छ"},
	{"प", "फ"},
	{"न", "ण"},
	// Independent-vowel confusions at the raw (pre-fold) entity level.
	{"अ", "आ"},
	{"इ", "ई"},
	{"उ", "ऊ"},
	{"ए", "ऐ"},
	{"ओ", "औ"},
	// A common conjunct OCR confusion.
	{"क्ष", "क्श"},
}

// VisualP0Groups are the strongest visual confusability tier: glyphs easily
// swapped by OCR or careless handwriting recognition. The specification
// names {"क","र","ख"} as the canonical example; we keep it and add the
// handful of other strong look-alikes this engine was tuned against.
var VisualP0Groups = [][]string{
	{"क", "र", "ख"},
	{"म", "ल"},
	{"भ", "म"},
}

// VisualP1Groups are a middle visual confusability tier.
var VisualP1Groups = [][]string{
	{"ट", "ठ"},
	{"प", "य"},
	{"ऱ", "र"},
}

// VisualP2Groups are the weakest, most speculative visual confusability tier.
var VisualP2Groups = [][]string{
	{"घ", "ध"},
	{"भ", "थ"},
	{"ळ", "ल", "ण"},
}

// IndependentVowels are the curated set of Devanagari independent vowels
// that belong in the entity vocabulary regardless of whether they appear
// in a substitution group.
var IndependentVowels = []string{
	"अ", "आ", "इ", "ई", "उ", "ऊ", "ऋ", "ॠ", "ऌ", "ॡ", "ए", "ऐ", "ओ", "औ",
}

// Digits are the small set of Devanagari numerals included in the entity
// vocabulary so numeric tokens (house numbers embedded in names, etc.)
// segment cleanly instead of falling back to codepoint singletons.
var Digits = []string{
	"०", "१", "२", "३", "४", "५", "६", "७", "८", "९",
}

var (
	phonetic = buildRelation(PhoneticGroups)
	visualP0 = buildRelation(VisualP0Groups)
	visualP1 = buildRelation(VisualP1Groups)
	visualP2 = buildRelation(VisualP2Groups)
)

// SubstType classifies the relation between two entities, in order of
// preference: Exact, Phonetic, VisualP0, VisualP1, VisualP2, else Other.
func SubstType(a, b string) Type {
	if a == b {
		return Exact
	}
	if phonetic.related(a, b) {
		return Phonetic
	}
	if visualP0.related(a, b) {
		return VisualP0
	}
	if visualP1.related(a, b) {
		return VisualP1
	}
	if visualP2.related(a, b) {
		return VisualP2
	}
	return Other
}

// Vocabulary returns the union of every entity appearing in any
// phonetic/visual group, plus the independent vowels and digits, sorted by
// descending codepoint length (so greedy-longest-match segmentation can try
// longer entities first) and then lexicographically for determinism.
func Vocabulary() []string {
	seen := make(map[string]struct{})
	add := func(entities []string) {
		for _, e := range entities {
			seen[e] = struct{}{}
		}
	}
	add(phonetic.vocabulary())
	add(visualP0.vocabulary())
	add(visualP1.vocabulary())
	add(visualP2.vocabulary())
	add(IndependentVowels)
	add(Digits)

	out := make([]string, 0, len(seen))
	for e := range seen {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := len([]rune(out[i])), len([]rune(out[j]))
		if li != lj {
			return li > lj
		}
		return out[i] < out[j]
	})
	return out
}
