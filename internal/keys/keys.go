// Package keys builds the prefix keys a query is looked up by in the
// posting-list indexes: per-token prefixes, adjacent-pair join variants,
// the full-concatenation variant, and — for four or more tokens — a
// spaceless collapse of every join variant.
package keys

import (
	"sort"
	"strings"

	"github.com/hyperjump/akshara/internal/models"
	"github.com/hyperjump/akshara/internal/normalize"
)

func prefix(s string, p int) string {
	runes := []rune(s)
	if len(runes) <= p {
		return s
	}
	return string(runes[:p])
}

// Build produces the deduplicated, sorted key set for one normalizer/prefix
// pair.
func Build(norm normalize.Func, p int, query string) []string {
	tokens := normalize.Tokenize(norm, query)
	if len(tokens) == 0 {
		return nil
	}

	seen := make(map[string]struct{})
	add := func(s string) { seen[prefix(s, p)] = struct{}{} }

	for _, tok := range tokens {
		add(tok)
	}

	n := len(tokens)
	if n >= 2 {
		variants := make([]string, 0, n)
		for i := 0; i < n-1; i++ {
			merged := make([]string, 0, n-1)
			merged = append(merged, tokens[:i]...)
			merged = append(merged, tokens[i]+tokens[i+1])
			merged = append(merged, tokens[i+2:]...)
			variants = append(variants, strings.Join(merged, " "))
		}
		variants = append(variants, strings.Join(tokens, ""))

		for _, v := range variants {
			add(v)
		}
		if n >= 4 {
			for _, v := range variants {
				add(strings.ReplaceAll(v, " ", ""))
			}
		}
	}

	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// prefixLenFor returns the indexing resolution for a normalized form.
func prefixLenFor(form models.NormForm, opts models.RankOptions) int {
	switch form {
	case models.FormStrict:
		return opts.PrefixLenStrict
	case models.FormExact:
		return opts.PrefixLenExact
	default:
		return opts.PrefixLenLoose
	}
}

func normalizerFor(form models.NormForm) normalize.Func {
	switch form {
	case models.FormStrict:
		return normalize.NormStrict
	case models.FormExact:
		return normalize.NormExact
	default:
		return normalize.NormLoose
	}
}

// BuildForForm builds the key set for a single normalized form using the
// prefix length opts configures for it.
func BuildForForm(form models.NormForm, query string, opts models.RankOptions) []string {
	return Build(normalizerFor(form), prefixLenFor(form, opts), query)
}

// BuildAll builds the key sets for every form the candidate generator may
// need, keyed by NormForm. Callers that only need a subset (per
// exactOnly/scope policy) should call BuildForForm directly instead.
func BuildAll(query string, opts models.RankOptions) map[models.NormForm][]string {
	out := make(map[models.NormForm][]string, 3)
	for _, form := range []models.NormForm{models.FormStrict, models.FormExact, models.FormLoose} {
		out[form] = BuildForForm(form, query, opts)
	}
	return out
}
