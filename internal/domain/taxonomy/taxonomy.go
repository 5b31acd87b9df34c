package taxonomy

import (
	"sort"
	"strings"
)

// Entry is one canonical skill plus the alias phrases that resolve to it.
// Reference data only: entries are loaded once at startup and never mutated.
type Entry struct {
	Canonical string
	Category  string
	Aliases   []string
}

// Alias is a single lowercase phrase bound to its canonical skill name.
type Alias struct {
	Phrase    string
	Canonical string
}

// Index is the immutable lookup structure built from a set of entries.
// It is shared freely across concurrent requests without locking.
type Index struct {
	entries map[string]Entry
	aliases []Alias
}

func NewIndex(entries []Entry) *Index {
	byCanonical := make(map[string]Entry, len(entries))
	phraseTo := make(map[string]string)

	for _, e := range entries {
		canonical := strings.TrimSpace(e.Canonical)
		if canonical == "" {
			continue
		}
		byCanonical[canonical] = Entry{
			Canonical: canonical,
			Category:  strings.TrimSpace(e.Category),
			Aliases:   append([]string(nil), e.Aliases...),
		}

		// The canonical name itself is always a recognized phrase.
		phraseTo[strings.ToLower(canonical)] = canonical
		for _, a := range e.Aliases {
			a = strings.ToLower(strings.TrimSpace(a))
			if a == "" {
				continue
			}
			// Duplicate phrases across entries: last entry wins.
			phraseTo[a] = canonical
		}
	}

	aliases := make([]Alias, 0, len(phraseTo))
	for phrase, canonical := range phraseTo {
		aliases = append(aliases, Alias{Phrase: phrase, Canonical: canonical})
	}

	// Longest phrase first so "javascript" claims text before "java" is
	// even considered; ties ordered lexicographically so matching is
	// deterministic regardless of entry order.
	sort.Slice(aliases, func(i, j int) bool {
		if len(aliases[i].Phrase) != len(aliases[j].Phrase) {
			return len(aliases[i].Phrase) > len(aliases[j].Phrase)
		}
		return aliases[i].Phrase < aliases[j].Phrase
	})

	return &Index{entries: byCanonical, aliases: aliases}
}

// OrderedAliases returns every known phrase sorted longest-first.
// The returned slice is shared; callers must not modify it.
func (idx *Index) OrderedAliases() []Alias {
	if idx == nil {
		return nil
	}
	return idx.aliases
}

// Category returns the category of a canonical skill, or "" if unknown.
func (idx *Index) Category(canonical string) string {
	if idx == nil {
		return ""
	}
	return idx.entries[canonical].Category
}

func (idx *Index) Has(canonical string) bool {
	if idx == nil {
		return false
	}
	_, ok := idx.entries[canonical]
	return ok
}

// Canonicals lists all canonical skill names sorted ascending.
func (idx *Index) Canonicals() []string {
	if idx == nil {
		return nil
	}
	out := make([]string, 0, len(idx.entries))
	for name := range idx.entries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}
