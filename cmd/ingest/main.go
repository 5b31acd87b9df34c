package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"skill-radar/internal/app"
	"skill-radar/internal/config"
	"skill-radar/internal/ingestion"
)

func main() {
	role := flag.String("role", "", "role category to ingest for")
	industry := flag.String("industry", "", "industry category to ingest for")
	region := flag.String("region", "", "region category to ingest for")
	period := flag.Int("period", 1, "time period to record counts under")
	workers := flag.Int("workers", 2, "number of concurrent source workers")
	rate := flag.Int("rate", 0, "max source fetches per second (0 = unthrottled)")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall run timeout")
	boardURL := flag.String("board-url", "", "optional job board listing URL to scrape")
	boardLinkSel := flag.String("board-link-selector", "a", "CSS selector for detail links on the listing page")
	boardBodySel := flag.String("board-body-selector", "body", "CSS selector for the posting body on detail pages")
	boardPages := flag.Int("board-pages", 1, "listing pages to walk (URL may contain %d)")
	boardHeadless := flag.Bool("board-headless", false, "discover board listings with a headless browser")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to build container: %v", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Printf("cleanup error: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	sources := []ingestion.Source{
		ingestion.NewPostingsSource(0),
		ingestion.NewGitHubSource(0, false, c.Logger),
	}
	if *boardURL != "" {
		sources = append(sources, ingestion.NewBoardSource(ingestion.BoardTarget{
			SourceName:         "board",
			ListURL:            *boardURL,
			LinkSelector:       *boardLinkSel,
			DetailBodySelector: *boardBodySel,
			Pages:              *boardPages,
			Headless:           *boardHeadless,
		}, c.Logger))
	}
	report, err := c.Runner.Run(ctx, sources, ingestion.RunParams{
		Role:       *role,
		Industry:   *industry,
		Region:     *region,
		Period:     *period,
		Workers:    *workers,
		RatePerSec: *rate,
	})
	if err != nil {
		log.Fatalf("ingestion run failed: %v", err)
	}

	fmt.Printf("run %s finished in %s\n", report.RunID, report.Elapsed)
	for _, sr := range report.Sources {
		status := "ok"
		if sr.Err != nil {
			status = sr.Err.Error()
		}
		fmt.Printf("  %-16s texts=%-4d matched=%-5d %s\n", sr.Source, sr.Texts, sr.Matched, status)
	}
	fmt.Printf("total matched: %d\n", report.Matched)
	if report.Matched == 0 {
		os.Exit(1)
	}
}
