package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GitHubSource searches public repositories and feeds their metadata
// (name, description, topics, language) into skill extraction. On rate
// limiting or network failure it falls back to a canned result set so
// local runs keep working without credentials.
type GitHubSource struct {
	client   *http.Client
	apiBase  string
	maxRepos int
	useMock  bool
	logger   *log.Logger
}

func NewGitHubSource(maxRepos int, useMock bool, logger *log.Logger) *GitHubSource {
	if maxRepos <= 0 {
		maxRepos = 10
	}
	if logger == nil {
		logger = log.Default()
	}
	return &GitHubSource{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		apiBase:  "https://api.github.com",
		maxRepos: maxRepos,
		useMock:  useMock,
		logger:   logger,
	}
}

func (s *GitHubSource) Name() string { return "github" }

type repoSearchResponse struct {
	Items []repoItem `json:"items"`
}

type repoItem struct {
	FullName    string   `json:"full_name"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Topics      []string `json:"topics"`
	Stars       int      `json:"stargazers_count"`
}

func (s *GitHubSource) Texts(ctx context.Context, role, industry string) ([]string, error) {
	if s.useMock {
		return repoTexts(mockRepositories(role, industry, s.maxRepos)), nil
	}

	items, err := s.searchRepositories(ctx, role, industry)
	if err != nil {
		s.logger.Printf("github search failed, using mock repositories | err=%v", err)
		items = mockRepositories(role, industry, s.maxRepos)
	}
	return repoTexts(items), nil
}

func (s *GitHubSource) searchRepositories(ctx context.Context, role, industry string) ([]repoItem, error) {
	perPage := s.maxRepos
	if perPage > 100 {
		perPage = 100
	}

	q := url.Values{}
	q.Set("q", buildSearchQuery(role, industry))
	q.Set("sort", "stars")
	q.Set("order", "desc")
	q.Set("per_page", fmt.Sprintf("%d", perPage))

	reqURL := strings.TrimRight(s.apiBase, "/") + "/search/repositories?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("github rate limited")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github search status %d", resp.StatusCode)
	}

	var parsed repoSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	if len(parsed.Items) > s.maxRepos {
		parsed.Items = parsed.Items[:s.maxRepos]
	}
	return parsed.Items, nil
}

// buildSearchQuery combines industry topics with role keywords, falling
// back to a popularity filter when neither yields anything usable.
func buildSearchQuery(role, industry string) string {
	parts := make([]string, 0, 3)

	industryKw := extractKeywords(industry)
	if len(industryKw) > 2 {
		industryKw = industryKw[:2]
	}
	for _, kw := range industryKw {
		parts = append(parts, "topic:"+kw)
	}

	roleKw := extractKeywords(role)
	if len(roleKw) > 3 {
		roleKw = roleKw[:3]
	}
	if len(roleKw) > 0 {
		parts = append(parts, "("+strings.Join(roleKw, " OR ")+")")
	}

	if len(parts) == 0 {
		return "stars:>100"
	}
	return strings.Join(parts, " ")
}

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true,
}

func extractKeywords(text string) []string {
	out := make([]string, 0)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if len(w) <= 2 || stopWords[w] {
			continue
		}
		out = append(out, w)
	}
	return out
}

func repoTexts(items []repoItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		var b strings.Builder
		b.WriteString(it.FullName)
		if it.Description != "" {
			b.WriteString(" ")
			b.WriteString(it.Description)
		}
		if it.Language != "" {
			b.WriteString(" ")
			b.WriteString(it.Language)
		}
		if len(it.Topics) > 0 {
			b.WriteString(" ")
			b.WriteString(strings.Join(it.Topics, " "))
		}
		text := strings.TrimSpace(b.String())
		if text != "" {
			out = append(out, text)
		}
	}
	return out
}

func mockRepositories(role, industry string, limit int) []repoItem {
	items := []repoItem{
		{FullName: "awesome/payment-gateway", Description: "Payment systems service in Go with PostgreSQL and Redis", Language: "Go", Topics: []string{"fintech", "microservices", "docker"}},
		{FullName: "example/react-dashboard", Description: "Analytics dashboard built with React, TypeScript and Next.js", Language: "TypeScript", Topics: []string{"react", "frontend"}},
		{FullName: "sample/ml-pipeline", Description: "Machine Learning pipeline with Python, Kafka and Kubernetes", Language: "Python", Topics: []string{"machine-learning", "data"}},
		{FullName: "demo/api-server", Description: "REST API server with Node.js, Express and MongoDB", Language: "JavaScript", Topics: []string{"backend", "rest"}},
		{FullName: "infra/deploy-tools", Description: "CI/CD and Terraform automation for AWS and GCP", Language: "Go", Topics: []string{"devops", "terraform"}},
	}
	_ = role
	_ = industry
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
