package models

import "time"

// Record is one entry in the output artifact: a source URL paired with the
// text extracted from that page.
type Record struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// ScrapeResult is the outcome of scraping a single link. Failure is carried
// in the value rather than unwound through the call stack, so the
// orchestrator's continue-on-failure loop is visible in the types.
type ScrapeResult struct {
	URL      string
	Text     string
	Err      error
	Duration time.Duration
}

// Failed reports whether the link could not be scraped.
func (r ScrapeResult) Failed() bool { return r.Err != nil }

// Record converts a successful result into an artifact entry.
func (r ScrapeResult) Record() Record { return Record{URL: r.URL, Text: r.Text} }

// RunSummary describes a completed run.
type RunSummary struct {
	SeedURL    string        `json:"seed_url"`
	OutputPath string        `json:"output_path"`
	LinksFound int           `json:"links_found"`
	Scraped    int           `json:"scraped"`
	Failed     int           `json:"failed"`
	Duration   time.Duration `json:"duration"`
}
