package extraction

import "testing"

func TestNormalize_LowercasesAndCollapsesWhitespace(t *testing.T) {
	got := Normalize("  Senior   Backend\tEngineer \n Go  ", 0)
	want := "senior backend engineer go"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNormalize_DropsControlCharacters(t *testing.T) {
	got := Normalize("go\x00lang\x07 dev", 0)
	want := "go lang dev"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNormalize_TruncatesByRunes(t *testing.T) {
	got := Normalize("héllo world", 5)
	want := "héllo"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNormalize_Empty(t *testing.T) {
	if got := Normalize("", 100); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
	if got := Normalize("   \t\n ", 0); got != "" {
		t.Fatalf("expected empty string for whitespace-only input, got %q", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Senior GO Developer (Remote)",
		"  python,   django & postgres  ",
		"CI/CD\tpipelines\r\nand kubernetes",
	}
	for _, in := range inputs {
		once := Normalize(in, 0)
		twice := Normalize(once, 0)
		if once != twice {
			t.Fatalf("normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
