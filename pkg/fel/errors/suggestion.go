package errors

import (
	"fmt"
	"strings"
)

// SuggestFunction suggests a registered function name when an unknown name
// is called. It uses Levenshtein distance to find the closest match.
func SuggestFunction(unknown string, known []string) string {
	if len(known) == 0 {
		return ""
	}

	minDistance := 1000
	var bestMatch string

	for _, name := range known {
		dist := levenshteinDistance(unknown, name)
		if dist < minDistance {
			minDistance = dist
			bestMatch = name
		}
	}

	// Only suggest when the candidate is close enough to be a likely typo.
	if minDistance <= 2 {
		return fmt.Sprintf("did you mean '%s'?", bestMatch)
	}

	if len(known) > 6 {
		return fmt.Sprintf("known functions include: %s, ...", strings.Join(known[:6], ", "))
	}
	return fmt.Sprintf("known functions: %s", strings.Join(known, ", "))
}

// levenshteinDistance computes the edit distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}
