package extraction

import (
	"strings"
	"unicode"
)

const (
	// DefaultMaxDescriptionLen bounds a single description.
	DefaultMaxDescriptionLen = 10000
	// DefaultMaxBatchLen bounds a batch of postings taken together.
	DefaultMaxBatchLen = 50000
)

// Normalize lowercases the input, removes control characters, collapses
// whitespace runs to a single space and trims the result. A run of
// control characters acts as a separator rather than vanishing, so
// "go\x00lang" becomes "go lang" instead of fusing into one token.
// maxLen > 0 truncates the input (in runes) before normalization.
// Normalizing an already-normalized string is a no-op.
func Normalize(s string, maxLen int) string {
	if s == "" {
		return ""
	}
	if maxLen > 0 {
		runes := []rune(s)
		if len(runes) > maxLen {
			s = string(runes[:maxLen])
		}
	}

	var b strings.Builder
	b.Grow(len(s))

	pendingSpace := false
	wrote := false
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			pendingSpace = wrote
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(unicode.ToLower(r))
		wrote = true
	}
	return b.String()
}
