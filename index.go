package cmusearch

import "github.com/RoaringBitmap/roaring"

// Document is a mapping from field name to field value for a single
// document (§3). Field sets may differ across documents in the same
// source; a field absent from the map is treated as absent, not as
// an empty string.
type Document map[string]string

// Sources is the document corpus: source_id -> doc_id -> Document.
type Sources map[string]map[string]Document

// FieldWeights maps a field name to its non-negative weight within a
// source.
type FieldWeights map[string]float64

// Config maps source_id to that source's field-weight table (§3).
type Config map[string]FieldWeights

// fieldKey identifies a posting list: the (source, field, n-gram)
// triple postings and document-frequency are keyed by (§3).
type fieldKey struct {
	source string
	field  string
	ngram  string
}

// lengthKey identifies a single (source, doc, field) field-length
// table entry (§3).
type lengthKey struct {
	source string
	doc    uint32
	field  string
}

// avgKey identifies a (source, field) average-field-length entry.
type avgKey struct {
	source string
	field  string
}

// Posting is one entry in a posting list: a document and how many
// times the n-gram occurs in the given field of that document (§3).
type Posting struct {
	SourceID string
	DocID    string
	TermFreq int
}

// Store is the passive, read-only container the builder and the
// serializer's decoder both produce (§4.3). It is built once and never
// mutated; every accessor is safe for concurrent readers by
// construction, since nothing here is ever written after Build/Decode
// returns.
type Store struct {
	interner *docInterner

	// postings holds, for each (source, field, ngram), the bitmap of
	// interned doc ids whose field contains that n-gram at least once.
	// Doc ids are interned in lexicographic (source, doc_id) order, so
	// bitmap iteration order already satisfies the "posting lists are
	// sorted by doc_id" invariant (§3) without a separate sort step.
	postings map[fieldKey]*roaring.Bitmap

	// tf holds the term frequency for each doc id that appears in the
	// corresponding postings bitmap. A tf value is always > 0 (§3).
	tf map[fieldKey]map[uint32]int

	// fieldLength holds, for every (source, doc, field) the document's
	// weight table names, the total n-gram count produced for that
	// field's value (0 if the field was absent from the document).
	fieldLength map[lengthKey]int

	avgFieldLen map[avgKey]float64
	docCount    map[string]int // per source_id
	totalDocs   int

	weights map[string]FieldWeights // source_id -> field -> weight
	docs    map[docKey]Document     // for result payload projection
}

// postingsFor returns the ordered posting list for (source, field,
// ngram), or nil if the n-gram was never indexed there. The returned
// slice is strictly sorted by DocID ascending (§3, §8).
func (s *Store) postingsFor(source, field, ngram string) []Posting {
	bm := s.postings[fieldKey{source, field, ngram}]
	if bm == nil {
		return nil
	}
	tf := s.tf[fieldKey{source, field, ngram}]
	out := make([]Posting, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		id := it.Next()
		key := s.interner.key(id)
		out = append(out, Posting{
			SourceID: key.source,
			DocID:    key.doc,
			TermFreq: tf[id],
		})
	}
	return out
}

// docFreqFor returns the document frequency of an n-gram in a
// (source, field): the number of distinct documents whose field
// contains it at least once. Equal to the cardinality of the n-gram's
// posting bitmap, which keeps the §3 invariant "document frequency
// equals the length of the deduped posting list" true by construction.
func (s *Store) docFreqFor(source, field, ngram string) int {
	bm := s.postings[fieldKey{source, field, ngram}]
	if bm == nil {
		return 0
	}
	return int(bm.GetCardinality())
}

// fieldLengthFor returns field_length[source, doc, field], or 0 if the
// document, source, or field is unknown.
func (s *Store) fieldLengthFor(source, doc, field string) int {
	id, ok := s.interner.lookup(docKey{source, doc})
	if !ok {
		return 0
	}
	return s.fieldLength[lengthKey{source, id, field}]
}

// avgFieldLenFor returns avg_field_len[source, field], or 0 if the
// source/field pair has no recorded average (guards §4.4's
// division-by-zero edge case at the call site).
func (s *Store) avgFieldLenFor(source, field string) float64 {
	return s.avgFieldLen[avgKey{source, field}]
}

// docCountFor returns the number of documents indexed for source, or
// the total document count across all sources if source is "".
func (s *Store) docCountFor(source string) int {
	if source == "" {
		return s.totalDocs
	}
	return s.docCount[source]
}

// documentFor returns a copy of the stored fields for (source, doc),
// and whether the document exists in the store.
func (s *Store) documentFor(source, doc string) (Document, bool) {
	d, ok := s.docs[docKey{source, doc}]
	if !ok {
		return nil, false
	}
	cp := make(Document, len(d))
	for k, v := range d {
		cp[k] = v
	}
	return cp, true
}
