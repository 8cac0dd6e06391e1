package cmusearch

import (
	"container/heap"
	"math"
	"sort"
	"sync"
)

// resultHeapPool reduces allocations across repeated top-k searches,
// mirroring the teacher's heapPool in bm25_index.go.
var resultHeapPool = sync.Pool{
	New: func() any {
		h := &resultHeap{}
		heap.Init(h)
		return h
	},
}

// BM25 parameters (§4.4). k1 controls term-frequency saturation, b
// controls document-length normalization.
const (
	k1 = 1.2
	b  = 0.75
)

// Result is one ranked hit: the document's composite key, its BM25F
// score, and a copy of its stored fields for the caller to render.
type Result struct {
	SourceID string
	DocID    string
	Score    float64
	Document Document
}

// idf computes log((N - df + 0.5) / (df + 0.5) + 1), the "+1 inside
// the log" form that keeps IDF non-negative even when a term is very
// common (§4.4, §9 "Open questions" — kept as specified, not clamped).
func idf(n, df int) float64 {
	N, DF := float64(n), float64(df)
	return math.Log((N-DF+0.5)/(DF+0.5) + 1.0)
}

// bm25Term scores a single (query n-gram, document, field) triple
// using the standard BM25 term-frequency/length-normalization formula.
func bm25Term(termFreq, fieldLen int, avgFieldLen float64, idfVal float64) float64 {
	if avgFieldLen == 0 {
		return 0
	}
	tf := float64(termFreq)
	dl := float64(fieldLen)
	return idfVal * (tf * (k1 + 1)) / (tf + k1*(1-b+b*dl/avgFieldLen))
}

// search ranks every candidate document against query and returns up
// to n results in descending score order, tie-broken by source_id then
// doc_id ascending (§4.4). Deterministic: identical query against an
// identical Store always produces bit-identical output, including
// ordering.
//
// A query that case-folds and tokenizes to fewer than 4 characters
// produces an empty n-gram set Q, and search returns no results (§4.1,
// §8 boundary behavior) — this is not "match everything".
func search(store *Store, query string, n int) []Result {
	q := tokenizeQuery(query)
	if len(q) == 0 {
		return []Result{}
	}

	scores := make(map[docKey]float64)

	// Visit fields and query n-grams in sorted order so every document's
	// score is summed in the same floating-point order on every call.
	ngrams := make([]string, 0, len(q))
	for g := range q {
		ngrams = append(ngrams, g)
	}
	sort.Strings(ngrams)

	for sourceID, weights := range store.weights {
		N := store.docCountFor(sourceID)
		if N == 0 {
			continue
		}
		fields := make([]string, 0, len(weights))
		for f := range weights {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, field := range fields {
			weight := weights[field]
			if weight == 0 {
				continue
			}
			avgLen := store.avgFieldLenFor(sourceID, field)
			if avgLen == 0 {
				continue
			}
			for _, ngram := range ngrams {
				postings := store.postingsFor(sourceID, field, ngram)
				if len(postings) == 0 {
					continue
				}
				df := store.docFreqFor(sourceID, field, ngram)
				idfVal := idf(N, df)
				for _, p := range postings {
					fieldLen := store.fieldLengthFor(sourceID, p.DocID, field)
					contribution := weight * bm25Term(p.TermFreq, fieldLen, avgLen, idfVal)
					scores[docKey{sourceID, p.DocID}] += contribution
				}
			}
		}
	}

	candidates := make([]Result, 0, len(scores))
	for key, score := range scores {
		if score <= 0 {
			continue
		}
		doc, _ := store.documentFor(key.source, key.doc)
		candidates = append(candidates, Result{
			SourceID: key.source,
			DocID:    key.doc,
			Score:    score,
			Document: doc,
		})
	}

	k := sanitizeK(n, len(candidates))
	if k == len(candidates) {
		sortResults(candidates)
		return limitResults(candidates, n)
	}
	return topK(candidates, k)
}

// sortResults orders results by score descending, tie-broken by
// source_id ascending then doc_id ascending (§4.4) so that two
// identically scored documents always come out in the same order.
func sortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		return less(results[j], results[i])
	})
}

// less reports whether a ranks below b in final output order: a has
// the lower score, or an equal score and a lexicographically later
// (source_id, doc_id). This is min-heap order (the weakest result
// sorts first) and also the comparator sortResults uses, so the two
// selection paths can never disagree on ordering.
func less(a, b Result) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	if a.SourceID != b.SourceID {
		return a.SourceID > b.SourceID
	}
	return a.DocID > b.DocID
}

// topK selects the k highest-ranked candidates using a bounded
// min-heap instead of sorting the full candidate set, the same
// strategy the teacher's bm25_index_search.go uses for top-k search:
// push until the heap holds k elements, then only replace the root
// when a new candidate outranks it.
func topK(candidates []Result, k int) []Result {
	if k == 0 {
		return []Result{}
	}
	h := resultHeapPool.Get().(*resultHeap)
	*h = (*h)[:0]
	defer func() {
		*h = (*h)[:0]
		resultHeapPool.Put(h)
	}()

	for _, c := range candidates {
		if h.Len() < k {
			heap.Push(h, c)
		} else if less((*h)[0], c) {
			heap.Pop(h)
			heap.Push(h, c)
		}
	}

	out := make([]Result, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(h).(Result)
	}
	return out
}

// resultHeap is a min-heap of Results: the weakest-ranked candidate
// (by less) sits at the root, so topK can evict it in O(log k) when a
// stronger candidate arrives.
type resultHeap []Result

func (h resultHeap) Len() int           { return len(h) }
func (h resultHeap) Less(i, j int) bool { return less(h[i], h[j]) }
func (h resultHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *resultHeap) Push(x any)        { *h = append(*h, x.(Result)) }
func (h *resultHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
