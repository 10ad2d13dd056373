package separator

import "strings"

// candidates are tried in order; earlier entries win ties.
var candidates = []struct {
	literal string
	needle  string
}{
	{literal: `\n`, needle: "\n"},
	{literal: ",", needle: ","},
	{literal: ";", needle: ";"},
	{literal: `\t`, needle: "\t"},
	{literal: "|", needle: "|"},
}

// Guess returns the separator literal that occurs most often in text. It
// reports false when none of the candidates appear.
func Guess(text string) (string, bool) {
	best, bestCount := "", 0
	for _, candidate := range candidates {
		count := strings.Count(text, candidate.needle)
		if count > bestCount {
			best, bestCount = candidate.literal, count
		}
	}
	return best, bestCount > 0
}

// GuessWarning formats the message surfaced when a separator was guessed.
func GuessWarning(literal string) string {
	return "No separator configured, auto-guessing separator " + quoteLiteral(literal) + "."
}

func quoteLiteral(literal string) string {
	return `"` + literal + `"`
}
