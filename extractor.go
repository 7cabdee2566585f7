package webscrape

// LinkExtractor extracts hyperlink references from fetched markup.
type LinkExtractor interface {
	// ExtractLinks scans body and returns the unique normalized URLs
	// referenced by href attributes, resolved against baseURL.
	// Non-markup content yields no links and no error.
	// Implementations hold no state across calls.
	ExtractLinks(body []byte, contentType string, baseURL string) ([]string, error)
}
