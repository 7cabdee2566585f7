// Package bloom provides a probabilistic membership filter for normalized URLs.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter keyed by URL strings.
// A negative answer is exact; a positive answer may be a false positive.
// Filter is not safe for concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a URL in the filter.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test reports whether the URL may have been added.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// TestAndAdd records a URL and reports whether it may have been added before.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(url)
}

