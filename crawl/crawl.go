// Package crawl provides the wave-based crawl orchestrator.
// It owns the seen-set and frontier, fans out concurrent fetch and store
// operations for each wave, and feeds fetched markup to a link extractor
// to compute the next wave.
package crawl

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/fwojciec/webscrape"
	"golang.org/x/sync/errgroup"
)

// Crawler orchestrates the crawling of a website.
type Crawler struct {
	Fetcher   webscrape.Fetcher
	Store     webscrape.Store
	Extractor webscrape.LinkExtractor

	// Concurrency limits in-flight fetches per wave.
	// Zero starts one goroutine per frontier URL.
	Concurrency int

	// RetryDelays are the backoff delays between fetch attempts.
	// Nil disables retries.
	RetryDelays []time.Duration

	// Log, if set, receives structured retry notices.
	Log LogFunc
}

// Result holds the outcome of a crawl.
type Result struct {
	Waves      int
	Fetched    int
	Saved      int
	Failed     int
	Skipped    int // cross-origin URLs never fetched
	Discovered int // distinct normalized URLs seen, fetched or not
	Bytes      int
	Truncated  bool // a wave or page cap stopped the crawl

	// Pages lists the normalized URLs persisted, in save order.
	Pages []string
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type      ProgressType
	Wave      int
	Completed int
	Total     int
	URL       string
	Links     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressWaveStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
// It is always called from the coordinating goroutine.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single URL.
type pageResult struct {
	url        string
	links      []string
	bytes      int
	fetched    bool
	err        error // fetch or store failure
	extractErr error
}

// Crawl fetches cfg.BaseURL and everything reachable from it, one wave at
// a time, until a wave discovers no unseen links.
//
// An invalid configuration is returned as an error before any fetch.
// Per-URL failures are reported through progress and never stop the crawl.
// If ctx is canceled, Crawl waits for the current wave's goroutines and
// returns the partial result alongside ctx.Err().
func (c *Crawler) Crawl(ctx context.Context, cfg *webscrape.CrawlConfig, progress ProgressFunc) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed, err := webscrape.NormalizeURL(cfg.BaseURL, cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	seen := NewSeenSet(seenExpectedURLs, seenFalsePositiveRate)
	origin := NewOriginFilter(seed)
	result := &Result{}
	defer func() { result.Discovered = seen.Len() }()
	dispatched := 0

	frontier := []string{seed}
	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		seen.AddAll(frontier)

		if !cfg.CrossOrigin {
			var dropped int
			frontier, dropped = origin.Filter(frontier)
			result.Skipped += dropped
		}
		if len(frontier) == 0 {
			break
		}

		if cfg.MaxWaves > 0 && result.Waves >= cfg.MaxWaves {
			result.Truncated = true
			break
		}
		if cfg.MaxPages > 0 {
			remaining := cfg.MaxPages - dispatched
			if remaining <= 0 {
				result.Truncated = true
				break
			}
			if len(frontier) > remaining {
				frontier = frontier[:remaining]
				result.Truncated = true
			}
		}

		result.Waves++
		dispatched += len(frontier)

		links, err := c.runWave(ctx, result.Waves, frontier, result, progress)
		if err != nil {
			return result, err
		}

		frontier = seen.Unseen(links)
		seen.AddAll(links)
	}

	progress(ProgressEvent{
		Type:      ProgressFinished,
		Wave:      result.Waves,
		Completed: result.Saved,
		Total:     dispatched,
	})

	return result, nil
}

// runWave processes every URL in frontier concurrently and returns the
// sorted union of links extracted from them. It returns only after every
// goroutine it started has finished.
func (c *Crawler) runWave(ctx context.Context, wave int, frontier []string, result *Result, progress ProgressFunc) ([]string, error) {
	total := len(frontier)
	progress(ProgressEvent{
		Type:  ProgressWaveStarted,
		Wave:  wave,
		Total: total,
	})

	resultCh := make(chan pageResult, total)

	var g errgroup.Group
	if c.Concurrency > 0 {
		g.SetLimit(c.Concurrency)
	}

	go func() {
		for _, url := range frontier {
			g.Go(func() error {
				resultCh <- c.processURL(ctx, url)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var links []string
	completed := 0
	for res := range resultCh {
		completed++
		links = append(links, res.links...)

		if res.fetched {
			result.Fetched++
			result.Bytes += res.bytes
		}

		if res.err != nil {
			result.Failed++
			progress(ProgressEvent{
				Type:      ProgressFailed,
				Wave:      wave,
				Completed: completed,
				Total:     total,
				URL:       res.url,
				Links:     len(res.links),
				Error:     res.err,
			})
			continue
		}

		result.Saved++
		result.Pages = append(result.Pages, res.url)
		progress(ProgressEvent{
			Type:      ProgressCompleted,
			Wave:      wave,
			Completed: completed,
			Total:     total,
			URL:       res.url,
			Links:     len(res.links),
			Error:     res.extractErr,
		})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slices.Sort(links)
	return slices.Compact(links), nil
}

// processURL fetches, stores, and extracts links from a single URL.
// The page is stored under url, while links resolve against the
// effective URL the body was served from.
func (c *Crawler) processURL(ctx context.Context, url string) pageResult {
	result := pageResult{url: url}

	res, err := FetchWithRetry(ctx, url, c.Fetcher.Fetch, c.Log, c.RetryDelays)
	if err != nil {
		result.err = fmt.Errorf("fetch: %w", err)
		return result
	}
	result.fetched = true
	result.bytes = len(res.Body)

	page := &webscrape.Page{
		URL:         url,
		ContentType: res.ContentType,
		Body:        res.Body,
		Hash:        ComputeHash(res.Body),
	}
	if err := c.Store.Save(ctx, page); err != nil {
		result.err = fmt.Errorf("store: %w", err)
	}

	base := res.URL
	if base == "" {
		base = url
	}
	links, err := c.Extractor.ExtractLinks(res.Body, res.ContentType, base)
	if err != nil {
		result.extractErr = fmt.Errorf("extract: %w", err)
		return result
	}
	result.links = links

	return result
}
