// Package similarity implements the non-numeric match metrics the fuzzy
// scorer dispatches to: normalized edit-distance string similarity and
// greedy best-match array similarity.
package similarity

import "strings"

// StringSimilarity returns a graded similarity in [0,1] between two strings.
// Both inputs are trimmed and case-folded before comparison. Two empty
// strings are identical (1.0); otherwise the score is
// 1 - levenshtein(s1,s2)/max(len(s1),len(s2)).
func StringSimilarity(s1, s2 string) float64 {
	s1 = strings.ToLower(strings.TrimSpace(s1))
	s2 = strings.ToLower(strings.TrimSpace(s2))
	return levenshteinRatio(s1, s2)
}

// levenshteinRatio computes the normalized similarity of two already-prepared
// strings.
func levenshteinRatio(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	maxLen := len(r1)
	if len(r2) > maxLen {
		maxLen = len(r2)
	}
	if maxLen == 0 {
		return 1.0
	}

	distance := levenshtein(r1, r2)
	return 1.0 - float64(distance)/float64(maxLen)
}

// levenshtein computes the edit distance with unit insertion, deletion, and
// substitution costs using single-row dynamic programming.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(curr[j-1]+1, minInt(prev[j]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
