package crawl

import (
	"slices"

	"github.com/fwojciec/webscrape/bloom"
)

// Seen-set sizing. The Bloom filter only short-circuits lookups; the exact
// set behind it keeps deduplication correct past the expected size.
const (
	seenExpectedURLs      = 10000
	seenFalsePositiveRate = 0.01
)

// SeenSet records every normalized URL ever placed in a frontier.
// It only grows. It is not safe for concurrent use: the crawl's
// coordinating goroutine owns it.
type SeenSet struct {
	filter *bloom.Filter
	urls   map[string]struct{}
}

// NewSeenSet creates an empty SeenSet whose filter is sized for n URLs
// with the given false positive rate.
func NewSeenSet(n uint, fpRate float64) *SeenSet {
	return &SeenSet{
		filter: bloom.NewFilter(n, fpRate),
		urls:   make(map[string]struct{}),
	}
}

// Add records url and reports whether it was not seen before.
func (s *SeenSet) Add(url string) bool {
	if s.filter.TestAndAdd(url) {
		if _, ok := s.urls[url]; ok {
			return false
		}
	}
	s.urls[url] = struct{}{}
	return true
}

// AddAll records every URL in urls.
func (s *SeenSet) AddAll(urls []string) {
	for _, url := range urls {
		s.Add(url)
	}
}

// Contains reports whether url has been recorded.
func (s *SeenSet) Contains(url string) bool {
	if !s.filter.Test(url) {
		return false
	}
	_, ok := s.urls[url]
	return ok
}

// Unseen returns the sorted, unique members of urls not yet recorded.
// The set itself is not modified.
func (s *SeenSet) Unseen(urls []string) []string {
	var unseen []string
	for _, url := range urls {
		if !s.Contains(url) {
			unseen = append(unseen, url)
		}
	}
	slices.Sort(unseen)
	return slices.Compact(unseen)
}

// Len returns the number of recorded URLs.
func (s *SeenSet) Len() int {
	return len(s.urls)
}
