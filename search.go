package main

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// maxLineBytes bounds a single scanned line; longer lines make the file an
// Unreadable outcome rather than aborting the run.
const maxLineBytes = 1024 * 1024

// errBinaryFile marks files rejected by the NUL-byte sniff.
var errBinaryFile = errors.New("binary file")

// searchFile opens one candidate file and scans it line by line for the
// query. Matching is literal substring containment; when the search is
// case-insensitive both the query and each line are lower-cased first.
// Every occurrence on a line counts toward the match total, so a line
// containing the query twice contributes two matches through one record.
//
// Open failures, binary content and scan errors produce an Unreadable
// outcome; they never abort the overall run.
func searchFile(cfg *SearchConfig, path string) FileOutcome {
	display := displayPath(cfg.Root, path)

	file, err := os.Open(path)
	if err != nil {
		return FileOutcome{Path: display, Err: err}
	}
	defer file.Close()

	if err := sniffBinary(file); err != nil {
		return FileOutcome{Path: display, Err: err}
	}

	needle := cfg.Query
	if !cfg.CaseSensitive {
		needle = strings.ToLower(needle)
	}

	var records []MatchRecord
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		haystack := line
		if !cfg.CaseSensitive {
			haystack = strings.ToLower(line)
		}

		if count := strings.Count(haystack, needle); count > 0 {
			records = append(records, MatchRecord{
				Path:  display,
				Line:  lineNo,
				Text:  strings.TrimSpace(line),
				Count: count,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return FileOutcome{Path: display, Err: err}
	}

	return FileOutcome{Path: display, Records: records}
}

// sniffBinary reads the first block of the file and rejects it when a NUL
// byte shows up, then rewinds for the line scan. Empty files pass.
func sniffBinary(file *os.File) error {
	buf := make([]byte, 8000)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return err
	}
	if bytes.IndexByte(buf[:n], 0) >= 0 {
		return errBinaryFile
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	return nil
}

// displayPath renders a candidate path relative to the search root with
// forward slashes, falling back to the raw path when Rel fails.
func displayPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
