package validator

import (
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// FuzzyThreshold is the minimum similarity for a fuzzy correction.
const FuzzyThreshold = 0.7

// Normalize lowercases, trims and collapses whitespace.
func Normalize(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = strings.Trim(s, ".!?,;:\"'")
	return strings.Join(strings.Fields(s), " ")
}

// canonical strips filler phrasing and resolves aliases.
func canonical(normalized string) string {
	s := normalized
	for stripped := true; stripped; {
		stripped = false
		for _, prefix := range fillerPrefixes {
			if strings.HasPrefix(s, prefix) && len(s) > len(prefix) {
				s = strings.TrimPrefix(s, prefix)
				stripped = true
				break
			}
		}
	}
	if alias, ok := hobbyAliases[s]; ok {
		return alias
	}
	return s
}

// Similarity is 1 - distance/maxLen using the optimal string alignment
// distance, so a single transposition ("giutar") costs one edit.
func Similarity(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1
	}
	dist := edlib.OSADamerauLevenshteinDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}

func exactMatch(s string) (string, bool) {
	if knownHobbySet[s] {
		return s, true
	}
	return "", false
}

// fuzzyMatch returns the most similar known hobby at or above the threshold.
func fuzzyMatch(s string) (string, float64, bool) {
	best, bestScore := "", 0.0
	for _, h := range KnownHobbies {
		if score := Similarity(s, h); score > bestScore {
			best, bestScore = h, score
		}
	}
	if bestScore >= FuzzyThreshold {
		return best, bestScore, true
	}
	return "", bestScore, false
}

// substringMatch finds a known hobby containing the input as whole words, or
// contained in it.
// The longest hobby wins; inputs shorter than 3 characters never match.
func substringMatch(s string) (string, bool) {
	if len(s) < 3 {
		return "", false
	}
	best := ""
	for _, h := range KnownHobbies {
		if (containsPhrase(s, h) || containsPhrase(h, s)) && len(h) > len(best) {
			best = h
		}
	}
	return best, best != ""
}
