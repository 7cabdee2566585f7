package webscrape

import "context"

// Page represents a fetched resource ready to be persisted.
type Page struct {
	// URL is the normalized URL the page was requested under.
	URL         string
	ContentType string
	Body        []byte
	Hash        string // xxhash64 of Body, hex
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// Store persists fetched pages.
type Store interface {
	// Save writes the page, overwriting any previous copy.
	Save(ctx context.Context, page *Page) error
}

// CrawlConfig holds the immutable settings of a single crawl.
type CrawlConfig struct {
	// BaseURL is the seed URL; its authority defines the crawl's origin.
	BaseURL string

	// CrossOrigin allows following links to other authorities.
	CrossOrigin bool

	// OutputDir is the base directory pages are stored under.
	OutputDir string

	// MaxWaves stops the crawl after this many waves. Zero means no limit.
	MaxWaves int

	// MaxPages caps the total number of fetches. Zero means no limit.
	MaxPages int
}

// Validate returns an error if the configuration cannot start a crawl.
func (c *CrawlConfig) Validate() error {
	if c.BaseURL == "" {
		return Errorf(EINVALID, "base URL required")
	}
	if _, err := NormalizeURL(c.BaseURL, c.BaseURL); err != nil {
		return Errorf(EINVALID, "invalid base URL %q: %s", c.BaseURL, ErrorMessage(err))
	}
	if c.MaxWaves < 0 {
		return Errorf(EINVALID, "max waves must be non-negative")
	}
	if c.MaxPages < 0 {
		return Errorf(EINVALID, "max pages must be non-negative")
	}
	return nil
}
