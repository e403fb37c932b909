package textutil

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, " ")
	return name
}

// ClosestMatch returns the index of the candidate most similar to `name`
// (jaro-winkler over normalized names) and its score. Returns -1 when there
// are no candidates.
func ClosestMatch(name string, candidates []string) (int, float64) {
	name = NormalizeName(name)
	best := -1
	bestScore := -1.0
	for i, c := range candidates {
		c = NormalizeName(c)
		var score float64
		if strings.Contains(c, name) && name != "" {
			score = 1
		} else {
			score = matchr.JaroWinkler(name, c, true)
		}
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best < 0 {
		return -1, 0
	}
	return best, bestScore
}
