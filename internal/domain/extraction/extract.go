package extraction

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"skill-radar/internal/domain/taxonomy"
)

// Result maps canonical skill names to occurrence counts for one input.
// Counts are always >= 1; skills not found have no entry.
type Result map[string]int

func (r Result) Total() int {
	total := 0
	for _, c := range r {
		total += c
	}
	return total
}

// Extractor scans normalized text for taxonomy phrases.
type Extractor struct {
	idx *taxonomy.Index
}

func NewExtractor(idx *taxonomy.Index) *Extractor {
	if idx == nil {
		idx = taxonomy.Default()
	}
	return &Extractor{idx: idx}
}

func (e *Extractor) Taxonomy() *taxonomy.Index {
	if e == nil {
		return nil
	}
	return e.idx
}

// Extract counts phrase matches in text, which must already be normalized
// (see Normalize). Aliases are tried longest-first and each match claims
// its span of text, so a shorter alias never scores inside a longer one:
// "java" does not match within "javascript". Multi-word aliases match
// only as contiguous, word-boundary-delimited phrases. Text with no
// recognizable skills yields an empty Result.
func (e *Extractor) Extract(text string) Result {
	out := Result{}
	if e == nil || e.idx == nil || text == "" {
		return out
	}

	claimed := make([]bool, len(text))
	for _, alias := range e.idx.OrderedAliases() {
		phrase := alias.Phrase
		if len(phrase) > len(text) {
			continue
		}
		from := 0
		for {
			i := strings.Index(text[from:], phrase)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(phrase)
			from = start + 1

			if !boundaryBefore(text, start) || !boundaryAfter(text, end) {
				continue
			}
			if spanClaimed(claimed, start, end) {
				continue
			}
			claim(claimed, start, end)
			out[alias.Canonical]++
		}
	}
	return out
}

func boundaryBefore(text string, start int) bool {
	if start == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:start])
	return !isWordRune(r)
}

func boundaryAfter(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[end:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func spanClaimed(claimed []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if claimed[i] {
			return true
		}
	}
	return false
}

func claim(claimed []bool, start, end int) {
	for i := start; i < end; i++ {
		claimed[i] = true
	}
}
