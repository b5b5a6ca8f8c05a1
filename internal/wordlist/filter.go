package wordlist

// Bounds on practice word length, inclusive.
const (
	MinWordLen = 3
	MaxWordLen = 9
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// PracticeWord keeps lowercase ASCII words of MinWordLen to MaxWordLen letters.
func PracticeWord(word string) bool {
	if len(word) < MinWordLen || len(word) > MaxWordLen {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}

// Filter returns the words accepted by keep, dropping duplicates while
// preserving first-seen order.
func Filter(words []string, keep FilterFunc) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, word := range words {
		if !keep(word) {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}
	return out
}
