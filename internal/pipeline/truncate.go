package pipeline

import "unicode/utf8"

// DefaultTruncateLimit is the number of characters sent to the summarizer.
const DefaultTruncateLimit = 10000

// Truncate cuts text to its first limit characters (runes).
// It is a plain character cut with no regard for words or sentences.
func Truncate(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	count := 0
	for i := range text {
		if count == limit {
			return text[:i]
		}
		count++
	}
	return text
}
