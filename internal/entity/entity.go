// Package entity segments Devanagari words into the engine's curated
// entities: maximal multi-codepoint substrings drawn from a fixed
// vocabulary, with any leftover codepoint falling back to a singleton.
package entity

import (
	"sort"
	"strings"

	"github.com/hyperjump/akshara/internal/confusion"
)

// Matras are the Devanagari vowel signs (matras) that attach to a
// consonant. A matra-like entity is always a single codepoint drawn from
// this set.
var Matras = map[string]struct{}{
	"ा": {}, "ि": {}, "ी": {}, "ु": {}, "ू": {}, "ृ": {}, "ॄ": {},
	"ॢ": {}, "ॣ": {}, "े": {}, "ै": {}, "ो": {}, "ौ": {},
}

var vocabulary []string

func init() {
	vocabulary = confusion.Vocabulary()
	// Belt-and-suspenders: Vocabulary() already sorts by descending
	// length, but re-sort here in case callers ever mutate the curated
	// group tables and re-trigger init ordering changes.
	sort.Slice(vocabulary, func(i, j int) bool {
		li, lj := len([]rune(vocabulary[i])), len([]rune(vocabulary[j]))
		if li != lj {
			return li > lj
		}
		return vocabulary[i] < vocabulary[j]
	})
}

// IsMatraLike reports whether entity is a single-codepoint vowel sign.
func IsMatraLike(e string) bool {
	if len([]rune(e)) != 1 {
		return false
	}
	_, ok := Matras[e]
	return ok
}

// Segment splits word into a sequence of entities via deterministic,
// greedy-longest-match over the curated vocabulary: at each position, the
// longest vocabulary entity that matches is consumed; failing any match,
// one codepoint is consumed as a singleton entity. The function is total
// (never fails) and the concatenation of the result always equals word.
func Segment(word string) []string {
	runes := []rune(word)
	n := len(runes)
	entities := make([]string, 0, n)

	for i := 0; i < n; {
		matched := ""
		for _, candidate := range vocabulary {
			cl := len([]rune(candidate))
			if i+cl > n {
				continue
			}
			if string(runes[i:i+cl]) == candidate {
				matched = candidate
				break
			}
		}
		if matched != "" {
			entities = append(entities, matched)
			i += len([]rune(matched))
			continue
		}
		entities = append(entities, string(runes[i]))
		i++
	}
	return entities
}

// Join concatenates a sequence of entities back into a string. Exists
// mainly to make the segmentation round-trip invariant easy to state in
// tests: Join(Segment(s)) == s.
func Join(entities []string) string {
	return strings.Join(entities, "")
}
