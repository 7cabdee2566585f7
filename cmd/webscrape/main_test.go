package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/webscrape"
	main "github.com/fwojciec/webscrape/cmd/webscrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: CLI Help and Discovery
//
// Users discover webscrape capabilities through help output.

func TestCLI_ShowsHelpWhenAsked(t *testing.T) {
	t.Parallel()

	// Given: a CLI instance
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	// When: running with --help flag
	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	// Then: help is displayed without error
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "webscrape")
	assert.Contains(t, stdout.String(), "url")
	assert.Contains(t, stdout.String(), "--cross-origin")
	assert.Contains(t, stdout.String(), "--output-dir")
}

func TestCLI_ShowsHelpWhenNoArgumentsProvided(t *testing.T) {
	t.Parallel()

	// Given: a CLI instance
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	// When: running with no arguments
	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	// Then: help is shown but an error is returned
	require.Error(t, err)
	assert.Contains(t, stdout.String(), "webscrape")
}

// Story: Setup Validation
//
// Setup errors are fatal and surface before any page is fetched.

func TestCLI_RejectsInvalidSeedURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
	}{
		{"unsupported scheme", "ftp://example.com/"},
		{"unparsable", "http://[::1"},
		{"no scheme or host", "just-a-path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Given: a CLI instance and an empty output directory
			m := main.NewMain()
			var stdout, stderr bytes.Buffer

			// When: running with an invalid seed
			err := m.Run(context.Background(), []string{"-o", t.TempDir(), tt.url}, &stdout, &stderr)

			// Then: an invalid error is returned
			require.Error(t, err)
			assert.Equal(t, webscrape.EINVALID, webscrape.ErrorCode(err))
			assert.Contains(t, webscrape.ErrorMessage(err), "invalid base URL")
		})
	}
}

func TestCLI_RejectsNegativeLimits(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		{"--max-pages=-1", "https://example.com/"},
		{"--max-waves=-1", "https://example.com/"},
		{"--concurrency=-2", "https://example.com/"},
	} {
		m := main.NewMain()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), append([]string{"-o", t.TempDir()}, args...), &stdout, &stderr)

		require.Error(t, err, args)
		assert.Equal(t, webscrape.EINVALID, webscrape.ErrorCode(err), args)
	}
}

func TestCLI_RejectsUnknownFlag(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--no-such-flag", "https://example.com/"}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestCLI_RejectsMissingConfigFile(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--config", "/does/not/exist.yaml", "https://example.com/"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, webscrape.ErrorMessage(err), "not found")
}
