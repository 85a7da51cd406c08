package ui

import (
	"slices"
	"strings"
)

const (
	// DefaultMaxDistance is the largest edit distance FindSimilar accepts
	DefaultMaxDistance = 3
	// DefaultMaxSuggestions caps the number of suggestions
	DefaultMaxSuggestions = 3
)

// FindSimilar returns the candidates closest to target by case-insensitive
// Levenshtein distance, closest first.
//
// Example:
//
//	FindSimilar("post", []string{"posts", "people", "comments"}) // ["posts", "people"]
func FindSimilar(target string, candidates []string) []string {
	type match struct {
		value    string
		distance int
	}

	target = strings.ToLower(target)
	var matches []match
	for _, candidate := range candidates {
		if d := LevenshteinDistance(target, strings.ToLower(candidate)); d <= DefaultMaxDistance {
			matches = append(matches, match{value: candidate, distance: d})
		}
	}

	slices.SortStableFunc(matches, func(a, b match) int {
		return a.distance - b.distance
	})

	result := make([]string, 0, DefaultMaxSuggestions)
	for _, m := range matches {
		if len(result) == DefaultMaxSuggestions {
			break
		}
		result = append(result, m.value)
	}
	return result
}

// LevenshteinDistance is the number of single-rune insertions, deletions or
// substitutions that turn a into b.
//
//	LevenshteinDistance("kitten", "sitting") // 3
func LevenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
