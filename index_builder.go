package cmusearch

import (
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring"
)

// validateConfig checks the §6 precondition that config and sources
// agree on their set of source ids, and that no weight is negative
// (§6 "negative weights are rejected"). It is the only way Build can
// fail on in-memory input, per §4.2's contract.
func validateConfig(sources Sources, config Config) error {
	for sourceID, weights := range config {
		if _, ok := sources[sourceID]; !ok {
			return fmt.Errorf("%w: source %q in config has no documents", ErrInvalidConfig, sourceID)
		}
		for field, weight := range weights {
			if weight < 0 {
				return fmt.Errorf("%w: source %q field %q has negative weight %v", ErrInvalidConfig, sourceID, field, weight)
			}
		}
	}
	for sourceID := range sources {
		if _, ok := config[sourceID]; !ok {
			return fmt.Errorf("%w: source %q has documents but no config entry", ErrInvalidConfig, sourceID)
		}
	}
	return nil
}

// Build consumes the document corpus and configuration and produces a
// fully populated Store (§4.2). It fails only when sources and config
// disagree or a weight is negative; once validated, build cannot fail.
func Build(sources Sources, config Config) (*Store, error) {
	if err := validateConfig(sources, config); err != nil {
		return nil, err
	}

	store := &Store{
		postings:    make(map[fieldKey]*roaring.Bitmap),
		tf:          make(map[fieldKey]map[uint32]int),
		fieldLength: make(map[lengthKey]int),
		avgFieldLen: make(map[avgKey]float64),
		docCount:    make(map[string]int),
		weights:     make(map[string]FieldWeights),
		docs:        make(map[docKey]Document),
		interner:    newDocInterner(),
	}

	// Intern doc ids in lexicographic (source, doc_id) order so that
	// roaring-bitmap iteration order already matches the §3 "posting
	// lists sorted by doc_id" invariant, with no separate sort pass.
	type orderedKey struct{ source, doc string }
	var ordered []orderedKey
	for sourceID, docs := range sources {
		for docID := range docs {
			ordered = append(ordered, orderedKey{sourceID, docID})
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].source != ordered[j].source {
			return ordered[i].source < ordered[j].source
		}
		return ordered[i].doc < ordered[j].doc
	})
	for _, k := range ordered {
		store.interner.intern(docKey{k.source, k.doc})
	}

	// running totals for avgFieldLen, computed over all documents in
	// the source including those contributing zero tokens (§4.2 step 3).
	fieldLenTotal := make(map[avgKey]int)

	for sourceID, docs := range sources {
		weights := config[sourceID]
		store.weights[sourceID] = weights
		store.docCount[sourceID] = len(docs)
		store.totalDocs += len(docs)

		for docID, doc := range docs {
			dk := docKey{sourceID, docID}
			store.docs[dk] = doc
			id, _ := store.interner.lookup(dk)

			for field := range weights {
				value, present := doc[field]
				length := 0
				var counts map[string]int
				if present {
					length, counts = countNgrams(value)
				}

				store.fieldLength[lengthKey{sourceID, id, field}] = length
				fieldLenTotal[avgKey{sourceID, field}] += length

				for ngram, c := range counts {
					fk := fieldKey{sourceID, field, ngram}
					if store.postings[fk] == nil {
						store.postings[fk] = roaring.New()
						store.tf[fk] = make(map[uint32]int)
					}
					store.postings[fk].Add(id)
					store.tf[fk][id] = c
				}
			}
		}
	}

	for sourceID, docs := range sources {
		n := len(docs)
		if n == 0 {
			continue
		}
		for field := range config[sourceID] {
			total := fieldLenTotal[avgKey{sourceID, field}]
			store.avgFieldLen[avgKey{sourceID, field}] = float64(total) / float64(n)
		}
	}

	return store, nil
}
