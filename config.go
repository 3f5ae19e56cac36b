package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// defaultExtensions is the built-in allow-list used when no extension filter
// is provided (or the provided one parses to nothing).
var defaultExtensions = []string{
	"txt", "json", "cs", "sql", "config", "rs",
	"py", "js", "ts", "html", "css", "xml",
}

// SearchConfig holds the resolved, validated parameters for one search run.
// It is immutable once built by newSearchConfig.
type SearchConfig struct {
	Root          string
	Query         string
	Extensions    []string // normalized: no leading dot, lower-cased
	CaseSensitive bool
	ShowLines     bool
	OutputFile    string

	ExcludePatterns []string // doublestar globs, matched against relative paths
	UseIgnore       bool     // apply the root's .gitignore
	SkipHidden      bool     // prune dot-prefixed files and directories
	MaxSizeBytes    int64    // 0 = no limit
	Workers         int      // 0 = runtime.NumCPU()

	extSet map[string]struct{}
}

// parseExtensions normalizes a comma-separated extension list: entries are
// trimmed, a leading dot is stripped, and the result is lower-cased. Blank
// entries are dropped; an input that parses to nothing returns nil so the
// caller can fall back to the defaults.
func parseExtensions(raw string) []string {
	var exts []string
	for _, part := range strings.Split(raw, ",") {
		ext := strings.ToLower(strings.TrimSpace(part))
		ext = strings.TrimPrefix(ext, ".")
		if ext == "" {
			continue
		}
		exts = append(exts, ext)
	}
	return exts
}

// parsePatterns splits a comma-separated string of glob patterns into a slice.
func parsePatterns(patterns string) []string {
	if patterns == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(patterns, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// newSearchConfig validates the raw inputs and builds a SearchConfig.
// root must name an existing directory and query must be non-empty; both are
// fatal configuration errors, reported before any traversal starts.
func newSearchConfig(root, query, extRaw, excludeRaw string, caseSensitive, showLines, useIgnore, skipHidden bool, outputFile string, maxSize int64, workers int) (*SearchConfig, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search text is required")
	}

	if strings.TrimSpace(root) == "" {
		root = "."
	}
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("path does not exist: %s", root)
		}
		return nil, fmt.Errorf("cannot access path %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", root)
	}

	exts := parseExtensions(extRaw)
	if len(exts) == 0 {
		// Copy so no config ever aliases the shared default table.
		exts = append([]string(nil), defaultExtensions...)
	}

	excludes := parsePatterns(excludeRaw)
	for _, pattern := range excludes {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}

	cfg := &SearchConfig{
		Root:            root,
		Query:           query,
		Extensions:      exts,
		CaseSensitive:   caseSensitive,
		ShowLines:       showLines,
		OutputFile:      outputFile,
		ExcludePatterns: excludes,
		UseIgnore:       useIgnore,
		SkipHidden:      skipHidden,
		MaxSizeBytes:    maxSize,
		Workers:         workers,
		extSet:          make(map[string]struct{}, len(exts)),
	}
	for _, ext := range cfg.Extensions {
		cfg.extSet[ext] = struct{}{}
	}
	return cfg, nil
}

// wantsExtension reports whether a file's final extension component (without
// the dot) is in the allow-list. Comparison is case-insensitive.
func (c *SearchConfig) wantsExtension(ext string) bool {
	_, ok := c.extSet[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return ok
}
