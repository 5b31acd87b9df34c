package ingestion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// collectLinksHeadless discovers listing links through a headless
// browser, for boards that only render their listings client-side.
func (s *BoardSource) collectLinksHeadless(ctx context.Context, listURL string) ([]string, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, 25*time.Second)
	defer reqCancel()

	var hrefs []string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(listURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.EvaluateAsDevTools(`Array.from(document.querySelectorAll('a[href]'))
			.map(a => a.href)
			.filter(h => !!h)`, &hrefs),
	)
	if err != nil {
		return nil, err
	}

	base := strings.TrimRight(s.target.BaseURL, "/")
	seen := map[string]struct{}{}
	out := make([]string, 0, len(hrefs))
	for _, h := range hrefs {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if strings.HasPrefix(h, "/") {
			h = base + h
		}
		if s.allowedHost != "" && hostFromBaseURL(h) != s.allowedHost {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no listing links found (headless)")
	}
	return out, nil
}
