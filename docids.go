package cmusearch

// docKey is the composite (source_id, doc_id) identity of a document
// (§3). Interning it to a dense uint32 lets posting lists live in
// roaring bitmaps the way the teacher's native uint32 doc-id space
// does, without requiring the caller's ids to already be integers.
type docKey struct {
	source string
	doc    string
}

// docInterner maps docKeys to dense uint32 ids and back. Built once
// during index construction and never mutated afterward, matching the
// store's single-writer-at-build, read-only-at-query lifecycle (§5).
type docInterner struct {
	ids  map[docKey]uint32
	keys []docKey
}

func newDocInterner() *docInterner {
	return &docInterner{ids: make(map[docKey]uint32)}
}

// intern returns the id for key, allocating a new one if key has not
// been seen before. ids are assigned in first-seen order starting at 0.
func (n *docInterner) intern(key docKey) uint32 {
	if id, ok := n.ids[key]; ok {
		return id
	}
	id := uint32(len(n.keys))
	n.ids[key] = id
	n.keys = append(n.keys, key)
	return id
}

// lookup returns the id already assigned to key, if any.
func (n *docInterner) lookup(key docKey) (uint32, bool) {
	id, ok := n.ids[key]
	return id, ok
}

// key returns the docKey for a previously interned id. Panics if id
// was never assigned by this interner, since that indicates a bug in
// the caller rather than a recoverable input error.
func (n *docInterner) key(id uint32) docKey {
	return n.keys[id]
}

// count returns the number of distinct documents interned.
func (n *docInterner) count() int {
	return len(n.keys)
}
