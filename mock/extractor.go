package mock

import "github.com/fwojciec/webscrape"

var _ webscrape.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of webscrape.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(body []byte, contentType string, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(body []byte, contentType string, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(body, contentType, baseURL)
}
