package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/webscrape"
	"github.com/fwojciec/webscrape/crawl"
	"github.com/fwojciec/webscrape/fs"
	"github.com/fwojciec/webscrape/html"
	wshttp "github.com/fwojciec/webscrape/http"
	wsslog "github.com/fwojciec/webscrape/slog"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL         string        `arg:"" required:"" help:"Seed URL to start crawling from"`
	CrossOrigin bool          `help:"Follow links to other hosts"`
	OutputDir   string        `short:"o" default:"." type:"path" help:"Base directory for saved pages"`
	Concurrency int           `short:"c" default:"0" help:"Concurrent fetch limit per wave (0 = unbounded)"`
	Timeout     time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	MaxWaves    int           `default:"0" help:"Stop after this many waves (0 = unlimited)"`
	MaxPages    int           `default:"1000" help:"Stop after this many fetches (0 = unlimited)"`
	Retries     int           `default:"0" help:"Retry transient fetch failures this many times with exponential backoff"`
	UserAgent   string        `default:"${user_agent}" help:"User-Agent header sent with each request"`
	MaxBodySize int64         `default:"${max_body_size}" help:"Maximum bytes read from each response"`
	Verbose     bool          `short:"v" help:"Log every fetch, save, and extraction"`
	Config      string        `type:"path" help:"YAML file with flag defaults (default: ./.webscrape.yaml, then ~/.webscrape.yaml)"`
}

// Dependencies holds the services and I/O shared by command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// Optional overrides, wired from CLI flags when nil.
	Fetcher webscrape.Fetcher
	Store   webscrape.Store
}

// CrawlCmd runs a single crawl from the CLI settings.
type CrawlCmd struct {
	CLI *CLI
}

// Run validates setup, crawls, and prints a summary.
// Setup errors are returned before any fetch happens.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	cfg := &webscrape.CrawlConfig{
		BaseURL:     c.CLI.URL,
		CrossOrigin: c.CLI.CrossOrigin,
		OutputDir:   c.CLI.OutputDir,
		MaxWaves:    c.CLI.MaxWaves,
		MaxPages:    c.CLI.MaxPages,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if c.CLI.Concurrency < 0 {
		return webscrape.Errorf(webscrape.EINVALID, "concurrency must be non-negative")
	}

	store := deps.Store
	if store == nil {
		writer := fs.NewWriter(cfg.OutputDir)
		if err := writer.Prepare(); err != nil {
			return err
		}
		store = writer
	}

	fetcher := deps.Fetcher
	if fetcher == nil {
		fetcher = wshttp.NewFetcher(
			wshttp.WithTimeout(c.CLI.Timeout),
			wshttp.WithUserAgent(c.CLI.UserAgent),
			wshttp.WithMaxBodySize(c.CLI.MaxBodySize),
		)
	}
	defer fetcher.Close()

	logger := deps.Logger
	crawler := &crawl.Crawler{
		Fetcher:     wsslog.NewLoggingFetcher(fetcher, logger),
		Store:       wsslog.NewLoggingStore(store, logger),
		Extractor:   wsslog.NewLoggingExtractor(html.NewLinkExtractor(), logger),
		Concurrency: c.CLI.Concurrency,
		RetryDelays: crawl.RetryDelays(c.CLI.Retries),
		Log:         logger.Info,
	}

	logger.Info("crawl started", "url", cfg.BaseURL, "output", cfg.OutputDir, "cross_origin", cfg.CrossOrigin)

	result, err := crawler.Crawl(deps.Ctx, cfg, progressPrinter(deps.Stdout, deps.Stderr))
	if result != nil {
		printSummary(deps.Stdout, result)
		logger.Info("crawl finished",
			"waves", result.Waves,
			"saved", result.Saved,
			"failed", result.Failed,
			"skipped", result.Skipped,
			"discovered", result.Discovered,
			"bytes", result.Bytes,
			"truncated", result.Truncated,
		)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("crawl interrupted: %w", err)
		}
		return err
	}
	return nil
}

// progressPrinter writes an overwriting progress line to stdout and
// per-URL problems to stderr.
func progressPrinter(stdout, stderr io.Writer) crawl.ProgressFunc {
	return func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressWaveStarted:
			fmt.Fprintf(stdout, "Wave %d: %d URLs\n", e.Wave, e.Total)
		case crawl.ProgressFailed:
			fmt.Fprintf(stderr, "skip %s: %v\n", e.URL, e.Error)
		case crawl.ProgressCompleted:
			if e.Error != nil {
				fmt.Fprintf(stderr, "warn %s: %v\n", e.URL, e.Error)
			}
		}

		if e.Type == crawl.ProgressCompleted || e.Type == crawl.ProgressFailed {
			fmt.Fprintf(stdout, "\r[%d/%d] %s", e.Completed, e.Total, crawl.TruncateURL(e.URL, 60))
			if e.Completed == e.Total {
				// Clear progress line
				fmt.Fprintf(stdout, "\r%80s\r", "")
			}
		}
	}
}

func printSummary(w io.Writer, r *crawl.Result) {
	fmt.Fprintf(w, "Saved %d pages (%s) in %d waves", r.Saved, crawl.FormatBytes(r.Bytes), r.Waves)
	if r.Failed > 0 || r.Skipped > 0 {
		fmt.Fprintf(w, ", %d failed, %d skipped", r.Failed, r.Skipped)
	}
	fmt.Fprintf(w, " (%d URLs discovered)\n", r.Discovered)
	if r.Truncated {
		fmt.Fprintln(w, "Stopped early: wave or page limit reached")
	}
}
