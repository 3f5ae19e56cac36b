package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	matchColor   = color.New(color.FgYellow, color.Bold)
	headerColor  = color.New(color.FgCyan)
	summaryColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed)
)

// renderReport builds the full report text for a finished run. With colorize
// set, headers, the summary line and query occurrences inside match lines are
// wrapped in ANSI colors; the plain form is what goes to files, the clipboard
// and PDFs.
func renderReport(cfg *SearchConfig, sum *SearchSummary, colorize bool) string {
	paint := func(c *color.Color, text string) string {
		if !colorize {
			return text
		}
		return c.Sprint(text)
	}

	var b strings.Builder
	b.WriteString(paint(headerColor, fmt.Sprintf("Searching for %q in %s and all subfolders...", cfg.Query, cfg.Root)))
	b.WriteString("\n")
	if cfg.CaseSensitive {
		b.WriteString("Case-sensitive search enabled\n")
	}
	b.WriteString(fmt.Sprintf("Extensions: .%s\n", strings.Join(cfg.Extensions, ", .")))
	b.WriteString("\n")

	if sum.TotalMatches == 0 {
		b.WriteString("No matches found.\n")
	} else {
		b.WriteString(paint(headerColor, fmt.Sprintf("Found %d matches in %d files:", sum.TotalMatches, sum.FilesWithMatches)))
		b.WriteString("\n")
		if cfg.ShowLines && len(sum.Records) > 0 {
			b.WriteString("\n")
			for _, record := range sum.Records {
				text := record.Text
				if colorize {
					text = highlightOccurrences(text, cfg.Query, cfg.CaseSensitive)
				}
				b.WriteString(fmt.Sprintf("%s (Line %d): %s\n", record.Path, record.Line, text))
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(paint(summaryColor, fmt.Sprintf("Summary: %d files searched, %d matches found", sum.FilesSearched, sum.TotalMatches)))
	b.WriteString("\n")

	if len(sum.Errors) > 0 {
		b.WriteString("\n")
		b.WriteString(paint(errorColor, "Errors encountered:"))
		b.WriteString("\n")
		for _, e := range sum.Errors {
			b.WriteString(fmt.Sprintf("  %s: %s\n", e.Path, e.Reason))
		}
	}

	return b.String()
}

// highlightOccurrences wraps every occurrence of query inside text in the
// match color, preserving the original casing of the line.
func highlightOccurrences(text, query string, caseSensitive bool) string {
	haystack := text
	needle := query
	if !caseSensitive {
		haystack = strings.ToLower(text)
		needle = strings.ToLower(query)
	}
	if needle == "" {
		return text
	}

	var b strings.Builder
	offset := 0
	for {
		idx := strings.Index(haystack[offset:], needle)
		if idx < 0 {
			b.WriteString(text[offset:])
			return b.String()
		}
		start := offset + idx
		end := start + len(needle)
		b.WriteString(text[offset:start])
		b.WriteString(matchColor.Sprint(text[start:end]))
		offset = end
	}
}

// consoleColorEnabled reports whether stdout is a color-capable terminal.
// The color package already honors NO_COLOR via color.NoColor.
func consoleColorEnabled() bool {
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// emitResults delivers the report to its destination: a PDF, a text file, the
// clipboard, or the console. Failures to create or write a file destination
// are fatal for the run, but the report is never lost: it is printed to the
// console as fallback before the error is returned.
func emitResults(cfg *SearchConfig, sum *SearchSummary, pdfPath string, useClipboard bool) error {
	report := renderReport(cfg, sum, false)

	switch {
	case pdfPath != "":
		if err := writePDFReport(pdfPath, cfg, sum); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing PDF %s: %v\n", pdfPath, err)
			fmt.Print(renderReport(cfg, sum, consoleColorEnabled()))
			return err
		}
		fmt.Printf("Results written to %s\n", pdfPath)

	case cfg.OutputFile != "":
		if err := os.WriteFile(cfg.OutputFile, []byte(report), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to file %s: %v\n", cfg.OutputFile, err)
			fmt.Print(renderReport(cfg, sum, consoleColorEnabled()))
			return err
		}
		fmt.Printf("Results written to %s\n", cfg.OutputFile)

	case useClipboard:
		if err := clipboard.WriteAll(report); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to clipboard: %v\n", err)
			fmt.Println("\n--- Results (clipboard failed) ---")
			fmt.Print(renderReport(cfg, sum, consoleColorEnabled()))
			return nil
		}
		fmt.Println("Results copied to clipboard.")

	default:
		fmt.Print(renderReport(cfg, sum, consoleColorEnabled()))
	}

	return nil
}
