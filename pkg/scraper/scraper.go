package scraper

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/docsift/docsift/internal/models"
	"github.com/docsift/docsift/pkg/extractor"
	"github.com/docsift/docsift/pkg/fetcher"
)

// Options configures a Scraper.
type Options struct {
	// OutputPath is the artifact location; defaults to documentation.txt.
	OutputPath string

	// ContentOnly switches text extraction to trafilatura's main-content
	// mode instead of the raw linearization.
	ContentOnly bool

	// Fetcher configures the HTTP client.
	Fetcher fetcher.Config

	// Console receives per-link progress lines; defaults to os.Stdout.
	Console io.Writer

	// Logger carries structured diagnostics.
	Logger zerolog.Logger
}

// Scraper drives the depth-1 pipeline: fetch the seed page, collect its
// links, then scrape each linked page and append the extracted text to the
// output artifact. Links are processed sequentially, one request in flight
// at a time; a failed link is reported and skipped, never retried.
type Scraper struct {
	seedURL     string
	outputPath  string
	contentOnly bool
	fetcher     *fetcher.Fetcher
	console     io.Writer
	log         zerolog.Logger
}

// New validates the seed URL and prepares a Scraper.
func New(seedURL string, opts Options) (*Scraper, error) {
	u, err := url.Parse(seedURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", seedURL, err)
	}
	if u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("seed URL must be absolute http(s): %q", seedURL)
	}

	console := opts.Console
	if console == nil {
		console = os.Stdout
	}
	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = "documentation.txt"
	}

	return &Scraper{
		seedURL:     seedURL,
		outputPath:  outputPath,
		contentOnly: opts.ContentOnly,
		fetcher:     fetcher.New(opts.Fetcher),
		console:     console,
		log:         opts.Logger,
	}, nil
}

// Scrape fetches a single page and extracts its text as one unit. Fetch
// failures pass through unchanged as *fetcher.FetchError.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) (string, error) {
	htmlContent, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}
	if s.contentOnly {
		return extractor.ExtractContent(htmlContent)
	}
	return extractor.ExtractText(htmlContent)
}

// Run executes the pipeline. Seed-fetch failure aborts the run; per-link
// failures are logged and skipped, so the error return is nil even when
// every link failed. The output artifact is truncate-created up front and
// flushed on every exit path.
func (s *Scraper) Run(ctx context.Context) (*models.RunSummary, error) {
	start := time.Now()

	seedHTML, err := s.fetcher.Fetch(ctx, s.seedURL)
	if err != nil {
		return nil, err
	}
	links, err := extractor.ExtractLinks(seedHTML, s.seedURL)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("seed", s.seedURL).Int("links", len(links)).Msg("seed page fetched")

	out, err := os.Create(s.outputPath)
	if err != nil {
		return nil, fmt.Errorf("open output %s: %w", s.outputPath, err)
	}
	defer out.Close()
	w := bufio.NewWriter(out)
	defer w.Flush()

	summary := &models.RunSummary{
		SeedURL:    s.seedURL,
		OutputPath: s.outputPath,
		LinksFound: len(links),
	}

	for _, link := range links {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fmt.Fprintf(s.console, "Scraping %s...\n", link)

		res := s.scrapeOne(ctx, link)
		if res.Failed() {
			summary.Failed++
			fmt.Fprintf(s.console, "Failed to scrape %s: %v\n", link, res.Err)
			s.log.Warn().Str("url", link).Dur("took", res.Duration).Err(res.Err).Msg("link skipped")
			continue
		}

		if err := writeRecord(w, res.Record()); err != nil {
			return nil, fmt.Errorf("write record for %s: %w", link, err)
		}
		summary.Scraped++
		s.log.Debug().Str("url", link).Int("bytes", len(res.Text)).Dur("took", res.Duration).Msg("record written")
	}

	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("flush output %s: %w", s.outputPath, err)
	}

	summary.Duration = time.Since(start)
	return summary, nil
}

func (s *Scraper) scrapeOne(ctx context.Context, link string) models.ScrapeResult {
	start := time.Now()
	text, err := s.Scrape(ctx, link)
	return models.ScrapeResult{
		URL:      link,
		Text:     text,
		Err:      err,
		Duration: time.Since(start),
	}
}

// writeRecord appends one artifact entry: the URL line, the extracted text,
// then a blank-line separator.
func writeRecord(w io.Writer, rec models.Record) error {
	_, err := fmt.Fprintf(w, "URL: %s\n%s\n\n", rec.URL, rec.Text)
	return err
}
