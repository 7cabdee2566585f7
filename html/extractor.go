// Package html extracts hyperlink references from markup using the
// golang.org/x/net/html tokenizer.
package html

import (
	"bytes"
	"errors"
	"mime"
	"net/http"
	"slices"
	"strings"

	"github.com/fwojciec/webscrape"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Ensure LinkExtractor implements webscrape.LinkExtractor at compile time.
var _ webscrape.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor collects href attributes from a token stream.
// It keeps no state between calls and is safe for concurrent use.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks returns the sorted, unique normalized URLs referenced by the
// href attribute of any start or self-closing tag in body.
//
// Hrefs that fail normalization are skipped. Malformed markup is tolerated:
// the tokenizer recovers the way browsers do and never fails on syntax.
// The body is decoded from the charset named by contentType or the markup,
// falling back to windows-1252, and undecodable bytes become U+FFFD.
// Content that is not HTML yields nil. The error is always nil.
func (e *LinkExtractor) ExtractLinks(body []byte, contentType string, baseURL string) ([]string, error) {
	if !IsMarkup(contentType, body) {
		return nil, nil
	}

	enc, _, _ := charset.DetermineEncoding(body, contentType)
	found := make(map[string]struct{})
	z := html.NewTokenizer(enc.NewDecoder().Reader(bytes.NewReader(body)))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// An in-memory body only ends at EOF.
			return sortedLinks(found), nil
		case html.StartTagToken, html.SelfClosingTagToken:
			_, hasAttr := z.TagName()
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if string(key) != "href" {
					continue
				}
				href := strings.TrimSpace(string(val))
				if href == "" {
					continue
				}
				link, err := webscrape.NormalizeURL(href, baseURL)
				if err != nil {
					continue
				}
				found[link] = struct{}{}
			}
		}
	}
}

// IsMarkup reports whether a resource should be scanned for links.
// When contentType is empty the body is sniffed. Broken header parameters
// are ignored as long as the media type itself parses.
func IsMarkup(contentType string, body []byte) bool {
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil && !errors.Is(err, mime.ErrInvalidMediaParameter) {
		return false
	}
	switch mediaType {
	case "text/html", "application/xhtml+xml":
		return true
	}
	return false
}

func sortedLinks(set map[string]struct{}) []string {
	links := make([]string, 0, len(set))
	for link := range set {
		links = append(links, link)
	}
	slices.Sort(links)
	return links
}
