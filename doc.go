/*
Package cmusearch implements an in-process, trigram-based full-text
search engine for fuzzy substring and keyword queries over a modest
corpus of short, structured documents.

# Overview

CMUSearch indexes documents grouped into named sources, each with its
own per-field weight table. At query time it tokenizes the query into
4-character n-grams, finds every document that shares at least one
n-gram with the query in a weighted field, and ranks the candidates
with a BM25F-style score that sums per-field contributions.

# Quick Start

	sources := cmusearch.Sources{
	    "courses": {
	        "17-651": cmusearch.Document{
	            "courseID": "17-651",
	            "name":     "Models of Software Systems",
	        },
	    },
	}
	config := cmusearch.Config{
	    "courses": {"courseID": 0.6, "name": 0.2},
	}

	engine := cmusearch.NewEngine()
	if err := engine.InitEngine(sources, config); err != nil {
	    log.Fatal(err)
	}

	results, err := engine.SearchDocs("models", 10)
	if err != nil {
	    log.Fatal(err)
	}
	for _, r := range results {
	    fmt.Printf("%s/%s: %.4f\n", r.SourceID, r.DocID, r.Score)
	}

# Tokenization

Text is NFKC-normalized and case-folded, then swept with a 4-character
sliding window over Unicode code points. The engine is described as
"trigram-based" (a carryover from the system this engine was
distilled from) although the window is 4 characters wide; in code the
windows are called n-grams. See ngram.go. No stemming, no punctuation stripping, no
whitespace collapsing — tokenize is total and deterministic for any
input, including the empty string.

# Ranking

Search uses BM25F: IDF computed per (source, field, n-gram) with the
"+1 inside the log" form that keeps it non-negative, a standard
term-frequency-saturation/length-normalization TF component
(k1 = 1.2, b = 0.75), and a sum over every weighted field of
weight(source, field) times the per-field BM25 contribution. See
ranker.go.

# Persistence

GetCachableIndex encodes the built index — posting lists, field-length
and document-frequency tables, average field lengths — into a single
opaque, versioned string. InitEngineFromCache decodes it back into an
equivalent, fully functional engine without retokenizing anything,
given the same sources and config used to build it originally. See
serializer.go.

# Concurrency

Engine is single-writer at build/restore time and read-only at query
time. Multiple goroutines may call SearchDocs concurrently against the
same Engine; InitEngine and InitEngineFromCache build into a local
Store and only then swap it in, so a search in flight during a rebuild
always sees one complete store or the other, never a partially built
one.

# Non-goals

Stemming, spelling correction, phrase queries with positional
proximity, boolean operators, incremental index updates, concurrent
mutation, and distributed operation are all out of scope. The engine
consumes documents and configuration already parsed into memory; host
concerns like fetching documents, persisting the cached blob across
restarts, and coordinating multiple consumers belong to the caller.
*/
package cmusearch
