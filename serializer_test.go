package cmusearch

import (
	"errors"
	"reflect"
	"testing"
)

// Spec scenario 5: encoding then decoding an index and re-running the
// same query must reproduce byte-for-byte identical top-k results.
func TestEncodeDecodeRoundTripPreservesSearch(t *testing.T) {
	sources, config := coursesFixture()
	store, err := Build(sources, config)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	before := search(store, "systems", 20)

	encoded, err := Encode(store)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	restored, err := Decode(encoded, sources, config)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	after := search(restored, "systems", 20)

	if !reflect.DeepEqual(before, after) {
		t.Errorf("search results differ after round trip:\nbefore: %+v\nafter:  %+v", before, after)
	}
}

func TestEncodeDecodeRoundTripPreservesInvariants(t *testing.T) {
	sources, config := coursesFixture()
	store, err := Build(sources, config)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	encoded, err := Encode(store)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	restored, err := Decode(encoded, sources, config)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	for _, ngram := range tokenize("Models of Software Systems") {
		want := store.docFreqFor("courses", "name", ngram)
		got := restored.docFreqFor("courses", "name", ngram)
		if want != got {
			t.Errorf("docFreqFor(%q) after decode = %d, want %d", ngram, got, want)
		}
	}

	if restored.avgFieldLenFor("courses", "name") != store.avgFieldLenFor("courses", "name") {
		t.Errorf("avgFieldLenFor mismatch after decode")
	}
	if restored.docCountFor("courses") != store.docCountFor("courses") {
		t.Errorf("docCountFor mismatch after decode")
	}
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	sources, config := coursesFixture()
	_, err := Decode(`{"version":999,"sources":[]}`, sources, config)
	if !errors.Is(err, ErrVersionMismatch) {
		t.Errorf("Decode with unknown version = %v, want ErrVersionMismatch", err)
	}
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	sources, config := coursesFixture()
	_, err := Decode(`not valid json at all`, sources, config)
	if !errors.Is(err, ErrInputMalformed) {
		t.Errorf("Decode with malformed JSON = %v, want ErrInputMalformed", err)
	}
}

func TestDecodePropagatesInvalidConfig(t *testing.T) {
	sources, _ := coursesFixture()
	store, err := Build(sources, Config{"courses": {"courseID": 0.6, "name": 0.2}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	encoded, err := Encode(store)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	mismatched := Config{"rooms": {"name": 1.0}}
	_, err = Decode(encoded, sources, mismatched)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Decode with mismatched config = %v, want ErrInvalidConfig", err)
	}
}

func TestDecodeRejectsUnknownDocumentReference(t *testing.T) {
	sources, config := coursesFixture()
	store, err := Build(sources, config)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	encoded, err := Encode(store)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Decoding against a sources map missing a document the encoded
	// blob refers to must fail rather than silently drop postings.
	trimmed := Sources{
		"courses": {
			"17-651": sources["courses"]["17-651"],
		},
	}
	_, err = Decode(encoded, trimmed, config)
	if !errors.Is(err, ErrInputMalformed) {
		t.Errorf("Decode against a trimmed source set = %v, want ErrInputMalformed", err)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	sources, config := coursesFixture()
	store, err := Build(sources, config)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	a, err := Encode(store)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	b, err := Encode(store)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if a != b {
		t.Error("Encode produced different output across two calls against the same store")
	}
}
