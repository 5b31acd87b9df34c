package ingestion

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func boardServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/jobs", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a class="job-link" href="/jobs/1">Backend Engineer</a>
			<a class="job-link" href="/jobs/2">Data Scientist</a>
			<a class="job-link" href="/jobs/1">Backend Engineer (duplicate)</a>
			<a class="other" href="/about">About us</a>
		</body></html>`)
	})
	mux.HandleFunc("/jobs/1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div class="description">Golang and PostgreSQL required</div></body></html>`)
	})
	mux.HandleFunc("/jobs/2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div class="description">Python and Machine Learning</div></body></html>`)
	})
	return httptest.NewServer(mux)
}

func TestBoardSource_Texts(t *testing.T) {
	srv := boardServer(t)
	defer srv.Close()

	src := NewBoardSource(BoardTarget{
		SourceName:         "test-board",
		BaseURL:            srv.URL,
		ListURL:            srv.URL + "/jobs",
		LinkSelector:       "a.job-link",
		DetailBodySelector: "div.description",
	}, nil)

	texts, err := src.Texts(context.Background(), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Duplicate links are visited once; the non-matching selector is skipped.
	if len(texts) != 2 {
		t.Fatalf("expected 2 detail bodies, got %d: %v", len(texts), texts)
	}
	if !strings.Contains(texts[0], "Golang and PostgreSQL") {
		t.Fatalf("unexpected first body: %q", texts[0])
	}
}

func TestBoardSource_EmptyBoardIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>no links here</body></html>`)
	}))
	defer srv.Close()

	src := NewBoardSource(BoardTarget{
		SourceName: "empty-board",
		BaseURL:    srv.URL,
		ListURL:    srv.URL,
	}, nil)

	if _, err := src.Texts(context.Background(), "", ""); err == nil {
		t.Fatal("expected an error for a board with no postings")
	}
}

func TestBoardSource_CancelledContext(t *testing.T) {
	srv := boardServer(t)
	defer srv.Close()

	src := NewBoardSource(BoardTarget{
		SourceName: "test-board",
		BaseURL:    srv.URL,
		ListURL:    srv.URL + "/jobs",
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := src.Texts(ctx, "", ""); err == nil {
		t.Fatal("expected an error from a cancelled context")
	}
}

func TestBoardSource_Defaults(t *testing.T) {
	src := NewBoardSource(BoardTarget{ListURL: "https://jobs.example.com/list"}, nil)
	if src.Name() != "board" {
		t.Fatalf("expected default name, got %q", src.Name())
	}
	if src.allowedHost != "jobs.example.com" {
		t.Fatalf("expected host from list URL, got %q", src.allowedHost)
	}
}

func TestHostFromBaseURL(t *testing.T) {
	cases := map[string]string{
		"https://example.com/jobs":  "example.com",
		"http://localhost:8080":     "localhost",
		"http://127.0.0.1:9999/x":   "127.0.0.1",
		"not a url at all ://// no": "",
	}
	for in, want := range cases {
		if got := hostFromBaseURL(in); got != want {
			t.Fatalf("hostFromBaseURL(%q) = %q, want %q", in, got, want)
		}
	}
}
