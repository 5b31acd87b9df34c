package extraction

import (
	"reflect"
	"testing"

	"skill-radar/internal/domain/taxonomy"
)

func testIndex() *taxonomy.Index {
	return taxonomy.NewIndex([]taxonomy.Entry{
		{Canonical: "Java", Category: "language", Aliases: []string{"java"}},
		{Canonical: "JavaScript", Category: "language", Aliases: []string{"javascript", "js"}},
		{Canonical: "Go", Category: "language", Aliases: []string{"golang"}},
		{Canonical: "Machine Learning", Category: "technique", Aliases: []string{"machine learning", "ml"}},
		{Canonical: "PostgreSQL", Category: "database", Aliases: []string{"postgres", "postgresql"}},
	})
}

func TestExtract_LongerAliasSuppressesShorter(t *testing.T) {
	e := NewExtractor(testIndex())

	got := e.Extract("we use javascript on the frontend")
	if got["JavaScript"] != 1 {
		t.Fatalf("expected JavaScript count 1, got %d", got["JavaScript"])
	}
	if _, ok := got["Java"]; ok {
		t.Fatalf("java must not match inside javascript: %v", got)
	}
}

func TestExtract_WordBoundaries(t *testing.T) {
	e := NewExtractor(testIndex())

	if got := e.Extract("scalability matters"); len(got) != 0 {
		t.Fatalf("no skill should match inside 'scalability', got %v", got)
	}
	got := e.Extract("experience with go... and java!")
	if _, ok := got["Java"]; !ok {
		t.Fatalf("java adjacent to punctuation should match, got %v", got)
	}
}

func TestExtract_MultiWordPhrase(t *testing.T) {
	e := NewExtractor(testIndex())

	got := e.Extract("hands-on machine learning experience")
	if got["Machine Learning"] != 1 {
		t.Fatalf("expected one machine learning match, got %v", got)
	}

	// Words present but not contiguous must not match the phrase.
	got = e.Extract("machine operators keep learning")
	if _, ok := got["Machine Learning"]; ok {
		t.Fatalf("non-contiguous words must not match a phrase, got %v", got)
	}
}

func TestExtract_CountsEveryOccurrence(t *testing.T) {
	e := NewExtractor(testIndex())

	got := e.Extract("postgres tuning, postgres replication and postgresql backups")
	if got["PostgreSQL"] != 3 {
		t.Fatalf("expected PostgreSQL count 3, got %d", got["PostgreSQL"])
	}
	if got.Total() != 3 {
		t.Fatalf("expected total 3, got %d", got.Total())
	}
}

func TestExtract_VariationsResolveToCanonical(t *testing.T) {
	e := NewExtractor(testIndex())

	got := e.Extract("golang services with js tooling")
	want := Result{"Go": 1, "JavaScript": 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtract_DeterministicAcrossEntryOrder(t *testing.T) {
	forward := NewExtractor(testIndex())
	reversed := NewExtractor(taxonomy.NewIndex([]taxonomy.Entry{
		{Canonical: "PostgreSQL", Category: "database", Aliases: []string{"postgres", "postgresql"}},
		{Canonical: "Machine Learning", Category: "technique", Aliases: []string{"machine learning", "ml"}},
		{Canonical: "Go", Category: "language", Aliases: []string{"golang"}},
		{Canonical: "JavaScript", Category: "language", Aliases: []string{"javascript", "js"}},
		{Canonical: "Java", Category: "language", Aliases: []string{"java"}},
	}))

	text := "java and javascript, golang, machine learning, postgres"
	a := forward.Extract(text)
	b := reversed.Extract(text)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("extraction depends on entry order: %v vs %v", a, b)
	}
}

func TestExtract_NoMatches(t *testing.T) {
	e := NewExtractor(testIndex())
	got := e.Extract("we value teamwork and communication")
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
	if got == nil {
		t.Fatal("expected empty map, got nil")
	}
}

func TestExtract_NilReceiver(t *testing.T) {
	var e *Extractor
	if got := e.Extract("golang"); len(got) != 0 {
		t.Fatalf("nil extractor should return empty result, got %v", got)
	}
}
