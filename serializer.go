package cmusearch

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring"
)

// currentSchemaVersion is carried in every encoded index so a decoder
// can reject a cache written by an incompatible future (or past)
// version instead of silently misinterpreting it (§4.5, §7).
const currentSchemaVersion = 1

// encodedStore is the self-describing wire form of a Store. It carries
// exactly the "expensive" parts §4.5 calls out — posting lists, field
// lengths, doc/avg counts, doc-frequency tables (the last derived
// implicitly from posting-list length, §3) — and nothing a decoder can
// cheaply recompute from the sources/config the caller reattaches.
//
// Doc ids here are the original (source_id, doc_id) strings, not the
// Store's internal interned uint32s: persisting the portable identity
// instead of an internal numbering keeps the format stable independent
// of interning order.
type encodedStore struct {
	Version int             `json:"version"`
	Sources []encodedSource `json:"sources"`
}

type encodedSource struct {
	SourceID string          `json:"source_id"`
	DocCount int             `json:"doc_count"`
	Fields   []encodedField  `json:"fields"`
}

type encodedField struct {
	Field       string                      `json:"field"`
	AvgFieldLen float64                     `json:"avg_field_len"`
	Lengths     map[string]int              `json:"lengths,omitempty"`
	Postings    map[string][]encodedPosting `json:"postings,omitempty"`
}

type encodedPosting struct {
	DocID string `json:"doc_id"`
	TF    int    `json:"tf"`
}

// Encode produces the opaque, self-contained string form of store that
// get_cachable_index exposes (§4.5, §6). The result is valid UTF-8 and
// carries a schema version tag for forward-compatibility checking.
func Encode(store *Store) (string, error) {
	enc := encodedStore{Version: currentSchemaVersion}

	sourceIDs := make([]string, 0, len(store.weights))
	for sourceID := range store.weights {
		sourceIDs = append(sourceIDs, sourceID)
	}
	sort.Strings(sourceIDs)

	for _, sourceID := range sourceIDs {
		es := encodedSource{
			SourceID: sourceID,
			DocCount: store.docCount[sourceID],
		}

		fields := make([]string, 0, len(store.weights[sourceID]))
		for field := range store.weights[sourceID] {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		for _, field := range fields {
			ef := encodedField{
				Field:       field,
				AvgFieldLen: store.avgFieldLen[avgKey{sourceID, field}],
			}

			lengths := make(map[string]int)
			for id := 0; id < store.interner.count(); id++ {
				key := store.interner.key(uint32(id))
				if key.source != sourceID {
					continue
				}
				if l := store.fieldLength[lengthKey{sourceID, uint32(id), field}]; l > 0 {
					lengths[key.doc] = l
				}
			}
			if len(lengths) > 0 {
				ef.Lengths = lengths
			}

			postings := make(map[string][]encodedPosting)
			for fk := range store.postings {
				if fk.source != sourceID || fk.field != field {
					continue
				}
				list := store.postingsFor(sourceID, field, fk.ngram)
				if len(list) == 0 {
					continue
				}
				entries := make([]encodedPosting, len(list))
				for i, p := range list {
					entries[i] = encodedPosting{DocID: p.DocID, TF: p.TermFreq}
				}
				postings[fk.ngram] = entries
			}
			if len(postings) > 0 {
				ef.Postings = postings
			}

			es.Fields = append(es.Fields, ef)
		}

		enc.Sources = append(enc.Sources, es)
	}

	data, err := json.Marshal(enc)
	if err != nil {
		return "", fmt.Errorf("%w: encoding index: %v", ErrInputMalformed, err)
	}
	return string(data), nil
}

// Decode reconstructs a Store from a string produced by Encode,
// reattaching sources (for result payloads) and config (for field
// weights at search time) without recomputing any n-grams (§4.5).
//
// Decode fails with ErrVersionMismatch if the encoded schema version is
// not one this build understands, with ErrInputMalformed if the string
// is not valid JSON for the expected shape, and with ErrInvalidConfig
// if sources and config disagree the same way Build requires.
func Decode(data string, sources Sources, config Config) (*Store, error) {
	var enc encodedStore
	if err := json.Unmarshal([]byte(data), &enc); err != nil {
		return nil, fmt.Errorf("%w: decoding index: %v", ErrInputMalformed, err)
	}
	if enc.Version != currentSchemaVersion {
		return nil, fmt.Errorf("%w: index schema version %d, want %d", ErrVersionMismatch, enc.Version, currentSchemaVersion)
	}
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

	// Intern doc ids from the reattached sources in the same
	// lexicographic order Build uses, so postings added below keep
	// the §3 "sorted by doc_id" invariant via bitmap iteration order.
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

	for sourceID, docs := range sources {
		store.weights[sourceID] = config[sourceID]
		store.docCount[sourceID] = len(docs)
		store.totalDocs += len(docs)
		for docID, doc := range docs {
			store.docs[docKey{sourceID, docID}] = doc
		}
	}

	for _, es := range enc.Sources {
		for _, ef := range es.Fields {
			store.avgFieldLen[avgKey{es.SourceID, ef.Field}] = ef.AvgFieldLen

			for docID, length := range ef.Lengths {
				id, ok := store.interner.lookup(docKey{es.SourceID, docID})
				if !ok {
					return nil, fmt.Errorf("%w: encoded index references unknown document %q in source %q", ErrInputMalformed, docID, es.SourceID)
				}
				store.fieldLength[lengthKey{es.SourceID, id, ef.Field}] = length
			}

			for ngram, postings := range ef.Postings {
				fk := fieldKey{es.SourceID, ef.Field, ngram}
				bm := roaring.New()
				tfs := make(map[uint32]int, len(postings))
				for _, p := range postings {
					id, ok := store.interner.lookup(docKey{es.SourceID, p.DocID})
					if !ok {
						return nil, fmt.Errorf("%w: encoded index references unknown document %q in source %q", ErrInputMalformed, p.DocID, es.SourceID)
					}
					bm.Add(id)
					tfs[id] = p.TF
				}
				store.postings[fk] = bm
				store.tf[fk] = tfs
			}
		}
	}

	return store, nil
}
