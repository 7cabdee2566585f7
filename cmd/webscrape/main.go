package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webscrape"
	wshttp "github.com/fwojciec/webscrape/http"
	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if code := webscrape.ErrorCode(err); code != webscrape.EINTERNAL {
			fmt.Fprintf(os.Stderr, "error: %s\n", webscrape.ErrorMessage(err))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// NewRunID returns the identifier attached to every log record of a run.
	NewRunID func() string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		NewRunID: uuid.NewString,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	opts := []kong.Option{
		kong.Name("webscrape"),
		kong.Description("Recursively crawl a website and save every resource to disk"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{
			"user_agent":    wshttp.DefaultUserAgent,
			"max_body_size": strconv.Itoa(wshttp.DefaultMaxBodySize),
		},
	}

	configPath, err := FindConfigFile(configFlag(args))
	if err != nil {
		return err
	}
	if configPath != "" {
		opts = append(opts, kong.Configuration(YAMLLoader, configPath))
	}

	parser, err := kong.New(cli, opts...)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("crawl", m.NewRunID())
	if configPath != "" {
		logger.Debug("loaded config", "path", configPath)
	}

	cmd := &CrawlCmd{CLI: cli}
	return cmd.Run(&Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	})
}
