package cmusearch

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ngramSize is the width of the sliding window the tokenizer produces.
// The source system calls these windows "trigrams"; they are in fact
// 4 characters wide. This spec keeps the 4 as specified and the name
// as inherited, rather than renaming a widely used term mid-codebase.
const ngramSize = 4

// caseFolder performs full Unicode lowercase mapping, not the simple
// ASCII-only folding strings.ToLower applies to some scripts.
var caseFolder = cases.Lower(language.Und)

// foldCase normalizes and lowercases text the same way for both
// indexed field values and queries, so the two sides of a match
// always compare equal byte-for-byte.
func foldCase(s string) string {
	return caseFolder.String(norm.NFKC.String(s))
}

// tokenize produces the ordered sequence of 4-character n-grams for
// text: a case-folded, NFKC-normalized sliding window over Unicode
// code points, stepping one character at a time. No punctuation
// stripping, no whitespace collapsing, no stemming — total and
// deterministic for any input, including the empty string.
//
// A string of rune-length L yields max(0, L-3) n-grams. The window is
// over characters, not bytes, so multi-byte runes count once.
func tokenize(text string) []string {
	runes := []rune(foldCase(text))
	if len(runes) < ngramSize {
		return nil
	}
	grams := make([]string, 0, len(runes)-ngramSize+1)
	for i := 0; i <= len(runes)-ngramSize; i++ {
		grams = append(grams, string(runes[i:i+ngramSize]))
	}
	return grams
}

// countNgrams tokenizes text and returns both the total n-gram count
// (the field length, §3) and the per-n-gram occurrence count (the
// term frequency multiset the builder folds into posting lists, §4.2).
func countNgrams(text string) (length int, counts map[string]int) {
	grams := tokenize(text)
	if len(grams) == 0 {
		return 0, nil
	}
	counts = make(map[string]int, len(grams))
	for _, g := range grams {
		counts[g]++
	}
	return len(grams), counts
}

// tokenizeQuery produces the deduplicated n-gram set for a query
// string together with each n-gram's query-side occurrence count.
// A query shorter than ngramSize characters (after folding) yields an
// empty set — callers must special-case that into an empty result
// list rather than treating it as "match everything".
func tokenizeQuery(query string) map[string]int {
	_, counts := countNgrams(query)
	return counts
}
