package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/webscrape/cmd/webscrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestYAMLLoader(t *testing.T) {
	t.Parallel()

	t.Run("resolves flags by name", func(t *testing.T) {
		t.Parallel()

		var cli struct {
			MaxPages    int    `default:"1000"`
			CrossOrigin bool   ``
			UserAgent   string `default:"x"`
		}
		resolver, err := main.YAMLLoader(strings.NewReader("max-pages: 5\ncross_origin: true\nuser-agent: bot/1\n"))
		require.NoError(t, err)

		parser, err := kong.New(&cli, kong.Resolvers(resolver), kong.Exit(func(int) {}))
		require.NoError(t, err)
		_, err = parser.Parse(nil)
		require.NoError(t, err)

		assert.Equal(t, 5, cli.MaxPages)
		assert.True(t, cli.CrossOrigin)
		assert.Equal(t, "bot/1", cli.UserAgent)
	})

	t.Run("command line wins over file", func(t *testing.T) {
		t.Parallel()

		var cli struct {
			MaxPages int `default:"1000"`
		}
		resolver, err := main.YAMLLoader(strings.NewReader("max-pages: 5\n"))
		require.NoError(t, err)

		parser, err := kong.New(&cli, kong.Resolvers(resolver), kong.Exit(func(int) {}))
		require.NoError(t, err)
		_, err = parser.Parse([]string{"--max-pages", "7"})
		require.NoError(t, err)

		assert.Equal(t, 7, cli.MaxPages)
	})

	t.Run("empty file is accepted", func(t *testing.T) {
		t.Parallel()

		_, err := main.YAMLLoader(strings.NewReader(""))
		require.NoError(t, err)
	})

	t.Run("malformed file is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := main.YAMLLoader(strings.NewReader("max-pages: [unterminated\n"))
		require.Error(t, err)
	})
}

func TestFindConfigFile_ExplicitPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "crawl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max-pages: 1\n"), 0644))

	got, err := main.FindConfigFile(path)

	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestCLI_ReadsDefaultsFromConfigFile(t *testing.T) {
	t.Parallel()

	// Given: a config file capping the crawl at one page
	site := newTestServer(t, map[string]string{
		"/":  `<a href="/a">a</a>`,
		"/a": `<p>a</p>`,
	})
	config := filepath.Join(t.TempDir(), "crawl.yaml")
	require.NoError(t, os.WriteFile(config, []byte("max-pages: 1\n"), 0644))
	var stdout, stderr bytes.Buffer

	// When: crawling with --config
	err := main.NewMain().Run(context.Background(), []string{"--config", config, "-o", t.TempDir(), site.URL}, &stdout, &stderr)

	// Then: the file's limit applies
	require.NoError(t, err)
	assert.Equal(t, 1, site.totalHits())
	assert.Contains(t, stdout.String(), "Stopped early")
}
