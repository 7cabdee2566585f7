package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webscrape"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file name looked up in the
// current and home directories.
const DefaultConfigFile = ".webscrape.yaml"

// FindConfigFile returns the configuration file to load, searching in order:
// 1. configPath, if given (it must exist)
// 2. .webscrape.yaml in the current directory
// 3. .webscrape.yaml in the user's home directory
//
// It returns an empty path when no file is found.
func FindConfigFile(configPath string) (string, error) {
	if configPath != "" {
		configPath = kong.ExpandPath(configPath)
		if _, err := os.Stat(configPath); err != nil {
			return "", webscrape.Errorf(webscrape.EINVALID, "config file %q not found", configPath)
		}
		return configPath, nil
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", nil
}

// YAMLLoader is a kong.ConfigurationLoader reading flag defaults from a
// YAML mapping keyed by flag name. Underscores in keys match dashes.
func YAMLLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, webscrape.Errorf(webscrape.EINVALID, "invalid config file: %s", err)
	}

	normalized := make(map[string]any, len(values))
	for k, v := range values {
		normalized[strings.ReplaceAll(k, "_", "-")] = v
	}

	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		v, ok := normalized[flag.Name]
		if !ok || v == nil {
			return nil, nil
		}
		return fmt.Sprint(v), nil
	}), nil
}

// configFlag returns the value of --config in args, if present.
func configFlag(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if v, ok := strings.CutPrefix(arg, "--config="); ok {
			return v
		}
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
