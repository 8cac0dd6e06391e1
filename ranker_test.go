package cmusearch

import "testing"

// Spec scenario 1: a single course matching its own course id ranks
// first with a positive score.
func TestSearchScenario1_CourseIDMatch(t *testing.T) {
	sources := Sources{
		"courses": {
			"17-651": Document{
				"courseID": "17-651",
				"name":     "Models of Software Systems",
			},
		},
	}
	config := Config{"courses": {"courseID": 0.6, "name": 0.2}}

	store, err := Build(sources, config)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	results := search(store, "17-651", 10)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].DocID != "17-651" || results[0].Score <= 0 {
		t.Errorf("results[0] = %+v, want doc 17-651 with positive score", results[0])
	}
}

// Spec scenario 2: a 4-character query ("mode") matches via a single
// shared n-gram in the name field.
func TestSearchScenario2_SingleNgramMatch(t *testing.T) {
	sources := Sources{
		"courses": {
			"17-651": Document{
				"courseID": "17-651",
				"name":     "Models of Software Systems",
			},
		},
	}
	config := Config{"courses": {"courseID": 0.6, "name": 0.2}}

	store, err := Build(sources, config)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	results := search(store, "mode", 10)
	if len(results) != 1 {
		t.Fatalf("expected 1 result for query \"mode\", got %d", len(results))
	}
}

// Spec scenario 3: two documents with identical text tie-break by
// doc_id ascending, with identical scores.
func TestSearchScenario3_TieBreakByDocID(t *testing.T) {
	sources := Sources{
		"courses": {
			"b-doc": Document{"name": "Introduction to Algorithms"},
			"a-doc": Document{"name": "Introduction to Algorithms"},
		},
	}
	config := Config{"courses": {"name": 1.0}}

	store, err := Build(sources, config)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	results := search(store, "algorithms", 10)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Score != results[1].Score {
		t.Errorf("expected identical scores, got %v and %v", results[0].Score, results[1].Score)
	}
	if results[0].DocID != "a-doc" || results[1].DocID != "b-doc" {
		t.Errorf("expected tie-break order [a-doc, b-doc], got [%s, %s]", results[0].DocID, results[1].DocID)
	}
}

// Spec scenario 4: query "sustain" matches "Sustainable Energy" via
// shared n-grams.
func TestSearchScenario4_SustainableEnergy(t *testing.T) {
	sources := Sources{
		"courses": {
			"19-101": Document{"name": "Sustainable Energy"},
		},
	}
	config := Config{"courses": {"name": 1.0}}

	store, err := Build(sources, config)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	results := search(store, "sustain", 10)
	if len(results) != 1 || results[0].Score <= 0 {
		t.Fatalf("expected a positive-score match for \"sustain\", got %+v", results)
	}
}

// Spec scenario 6: a 3-character query always returns an empty result
// list regardless of corpus content.
func TestSearchScenario6_ShortQueryIsEmpty(t *testing.T) {
	sources := Sources{
		"courses": {
			"17-651": Document{"name": "abc"},
		},
	}
	config := Config{"courses": {"name": 1.0}}

	store, err := Build(sources, config)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	results := search(store, "abc", 10)
	if len(results) != 0 {
		t.Errorf("expected empty results for 3-character query, got %v", results)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	sources, config := coursesFixture()
	store, err := Build(sources, config)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got := search(store, "", 10); len(got) != 0 {
		t.Errorf("search(\"\") = %v, want empty", got)
	}
}

func TestSearchNZeroReturnsEmpty(t *testing.T) {
	sources, config := coursesFixture()
	store, err := Build(sources, config)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got := search(store, "systems", 0)
	if len(got) != 0 {
		t.Errorf("search with n=0 = %v, want empty", got)
	}
}

func TestSearchNExceedsCandidateCount(t *testing.T) {
	sources, config := coursesFixture()
	store, err := Build(sources, config)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got := search(store, "systems", 1000)
	if len(got) == 0 {
		t.Fatal("expected at least one result for \"systems\"")
	}
	// Both fixture courses contain "systems" in their name field.
	if len(got) != 2 {
		t.Errorf("search with large n = %d results, want exactly the candidate count (2)", len(got))
	}
}

func TestSearchNonMatchingDocumentAbsent(t *testing.T) {
	sources := Sources{
		"courses": {
			"d1": Document{"name": "completely unrelated text"},
			"d2": Document{"name": "zzzzzzzzzzzzzzzzzzzzzzzz"},
		},
	}
	config := Config{"courses": {"name": 1.0}}

	store, err := Build(sources, config)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	results := search(store, "completely", 10)
	for _, r := range results {
		if r.DocID == "d2" {
			t.Errorf("d2 shares no n-gram with the query and must not appear in results: %+v", r)
		}
	}
}

func TestSearchFieldWeightingOrdersResults(t *testing.T) {
	// Two documents both match, but one matches through a heavily
	// weighted field and should rank first.
	sources := Sources{
		"courses": {
			"heavy": Document{"courseID": "roboticsxyz", "name": "unrelated filler text"},
			"light": Document{"courseID": "zzzzzzzzzzz", "name": "roboticsxyz appears here"},
		},
	}
	config := Config{"courses": {"courseID": 5.0, "name": 0.1}}

	store, err := Build(sources, config)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	results := search(store, "roboticsxyz", 10)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].DocID != "heavy" {
		t.Errorf("expected the heavily weighted field's match to rank first, got %+v", results)
	}
}

func TestSearchMultiSourceCorpus(t *testing.T) {
	sources := Sources{
		"courses": {
			"17-651": Document{"name": "Models of Software Systems"},
		},
		"rooms": {
			"gates-100": Document{"name": "Gates Systems Lab"},
		},
	}
	config := Config{
		"courses": {"name": 1.0},
		"rooms":   {"name": 1.0},
	}

	store, err := Build(sources, config)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	results := search(store, "systems", 10)
	if len(results) != 2 {
		t.Fatalf("expected results from both sources, got %d: %+v", len(results), results)
	}
}
