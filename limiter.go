package cmusearch

// sanitizeK clamps k into [0, maxResults].
//
// Unlike a "0 means unlimited" convention, n = 0 here means exactly
// zero results (spec: "search with n = 0 returns an empty list"). A
// negative n is treated the same as zero rather than as unlimited.
func sanitizeK(k, maxResults int) int {
	if k < 0 {
		return 0
	}
	if k > maxResults {
		return maxResults
	}
	return k
}

// limitResults truncates results to the first k entries, after
// sanitizing k against the slice length. results must already be
// sorted in the desired order.
func limitResults(results []Result, k int) []Result {
	k = sanitizeK(k, len(results))
	return results[:k]
}
