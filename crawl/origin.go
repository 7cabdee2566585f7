package crawl

import "github.com/fwojciec/webscrape"

// OriginFilter classifies URLs as same-origin relative to a fixed base URL.
// Results are memoized per URL; the base never changes during a crawl.
// It is not safe for concurrent use.
type OriginFilter struct {
	base string
	memo map[string]bool
}

// NewOriginFilter creates an OriginFilter for the given normalized base URL.
func NewOriginFilter(base string) *OriginFilter {
	return &OriginFilter{
		base: base,
		memo: make(map[string]bool),
	}
}

// SameOrigin reports whether url shares the base URL's authority.
func (f *OriginFilter) SameOrigin(url string) bool {
	if same, ok := f.memo[url]; ok {
		return same
	}
	same := webscrape.SameOrigin(url, f.base)
	f.memo[url] = same
	return same
}

// Filter returns the same-origin members of urls, preserving order,
// and the number of members dropped.
func (f *OriginFilter) Filter(urls []string) (kept []string, dropped int) {
	kept = make([]string, 0, len(urls))
	for _, url := range urls {
		if f.SameOrigin(url) {
			kept = append(kept, url)
			continue
		}
		dropped++
	}
	return kept, dropped
}
