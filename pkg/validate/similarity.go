package validate

// Similarity computes a character-level similarity score in [0.0, 1.0]
// between two raw entity names. Both names are normalized the same way as
// Key before comparison; the score is a symmetric longest-common-subsequence
// ratio: 1.0 for identical normalized strings, 0.0 for disjoint ones.
//
// This is exposed for callers that need approximate matching beyond the
// grouper's exact-key matching, such as deduplicating near-duplicate names
// across differently formatted sources. The default grouping path does not
// use it; see WithFuzzyGrouping.
func Similarity(name1, name2 string) float64 {
	return ratio(Key(name1), Key(name2))
}

// ratio is the LCS-based similarity of two already-normalized strings:
// 2*LCS(a,b) / (len(a)+len(b)). Two empty strings are identical (1.0).
func ratio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	return 2.0 * float64(lcs(a, b)) / float64(len(a)+len(b))
}

// lcs returns the length of the longest common subsequence of a and b,
// using a rolling single-row table.
func lcs(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
