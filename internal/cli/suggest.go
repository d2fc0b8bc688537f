package cli

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance is the largest edit distance still offered as a
// suggestion.
const maxSuggestDistance = 2

// suggest returns the candidate closest to input, or "" when none is within
// maxSuggestDistance. Ties go to the earlier candidate.
func suggest(input string, candidates []string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(strings.ToLower(input), strings.ToLower(c)); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// unknownValue formats the error message for a value outside candidates.
func unknownValue(kind, input string, candidates []string) string {
	if s := suggest(input, candidates); s != "" {
		return fmt.Sprintf("unknown %s %q: did you mean %q?", kind, input, s)
	}
	return fmt.Sprintf("unknown %s %q: must be one of %v", kind, input, candidates)
}
