package ingestion

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

// BoardTarget describes one job board to scrape: a listing page with
// links to detail pages whose body text feeds skill extraction.
type BoardTarget struct {
	SourceName         string
	BaseURL            string
	ListURL            string
	LinkSelector       string
	DetailBodySelector string
	Pages              int
	// Headless switches listing discovery to a browser for boards that
	// render their listings with JavaScript.
	Headless bool
}

type BoardSource struct {
	target      BoardTarget
	allowedHost string
	logger      *log.Logger
}

func NewBoardSource(target BoardTarget, logger *log.Logger) *BoardSource {
	if strings.TrimSpace(target.LinkSelector) == "" {
		target.LinkSelector = "a"
	}
	if strings.TrimSpace(target.DetailBodySelector) == "" {
		target.DetailBodySelector = "body"
	}
	if target.Pages <= 0 {
		target.Pages = 1
	}
	if strings.TrimSpace(target.BaseURL) == "" {
		target.BaseURL = target.ListURL
	}
	if logger == nil {
		logger = log.Default()
	}
	return &BoardSource{
		target:      target,
		allowedHost: hostFromBaseURL(target.BaseURL),
		logger:      logger,
	}
}

func (s *BoardSource) Name() string {
	name := strings.TrimSpace(s.target.SourceName)
	if name == "" {
		name = "board"
	}
	return name
}

// Texts collects detail-page bodies. Role and industry do not filter
// here; boards are scraped whole and categorization happens at ingest.
func (s *BoardSource) Texts(ctx context.Context, role, industry string) ([]string, error) {
	_ = role
	_ = industry

	out := make([]string, 0)
	for page := 1; page <= s.target.Pages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		listURL := s.target.ListURL
		if strings.Contains(listURL, "%d") {
			listURL = fmt.Sprintf(listURL, page)
		}

		links, err := s.collectLinks(ctx, listURL)
		if err != nil {
			s.logger.Printf("board list page failed | source=%s page=%d err=%v", s.Name(), page, err)
			continue
		}

		for _, link := range links {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			body, err := s.fetchDetail(ctx, link)
			if err != nil {
				s.logger.Printf("board detail failed | source=%s url=%s err=%v", s.Name(), link, err)
				continue
			}
			if strings.TrimSpace(body) != "" {
				out = append(out, body)
			}
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("board %s yielded no postings", s.Name())
	}
	return out, nil
}

func (s *BoardSource) collectLinks(ctx context.Context, listURL string) ([]string, error) {
	if s.target.Headless {
		return s.collectLinksHeadless(ctx, listURL)
	}

	c := s.newCollector()

	seen := map[string]struct{}{}
	links := make([]string, 0)
	c.OnHTML(s.target.LinkSelector, func(e *colly.HTMLElement) {
		href := strings.TrimSpace(e.Attr("href"))
		if href == "" {
			return
		}
		abs := e.Request.AbsoluteURL(href)
		if abs == "" {
			return
		}
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		links = append(links, abs)
	})

	if err := c.Visit(listURL); err != nil {
		return nil, err
	}
	c.Wait()
	return links, nil
}

func (s *BoardSource) fetchDetail(ctx context.Context, detailURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c := s.newCollector()

	var body string
	c.OnHTML(s.target.DetailBodySelector, func(e *colly.HTMLElement) {
		if body == "" {
			body = e.Text
		}
	})

	if err := c.Visit(detailURL); err != nil {
		return "", err
	}
	c.Wait()
	return body, nil
}

// Cancellation is checked between fetches; individual requests are
// bounded by the collector's request timeout.
func (s *BoardSource) newCollector() *colly.Collector {
	opts := []colly.CollectorOption{
		colly.Async(false),
	}
	if s.allowedHost != "" {
		opts = append(opts, colly.AllowedDomains(s.allowedHost))
	}
	c := colly.NewCollector(opts...)
	c.SetRequestTimeout(20 * time.Second)
	return c
}

func hostFromBaseURL(base string) string {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil || u.Host == "" {
		return ""
	}
	host := u.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return host
}
