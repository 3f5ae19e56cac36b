package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

// pickSearchRoot walks the current directory for subdirectories and opens a
// fuzzy finder so the user can choose the search root. Returns "" with a nil
// error when the user aborts the selection.
func pickSearchRoot(skipHidden bool) (string, error) {
	candidates := []string{"."}

	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries just don't show up in the picker
		}
		if path == "." || !d.IsDir() {
			return nil
		}
		if skipHidden && isHidden(d.Name()) {
			return fs.SkipDir
		}
		candidates = append(candidates, path)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("error scanning for directories: %w", err)
	}

	idx, err := fuzzyfinder.Find(
		candidates,
		func(i int) string {
			return candidates[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select the directory to search. Enter to confirm, Esc to abort."
			}
			path := candidates[i]
			entries, readErr := os.ReadDir(path)
			if readErr != nil {
				return fmt.Sprintf("Path: %s\nError reading directory: %v", path, readErr)
			}
			return fmt.Sprintf("Path: %s\nEntries: %d", path, len(entries))
		}),
	)
	if err != nil {
		if err == fuzzyfinder.ErrAbort {
			fmt.Println("Interactive selection aborted.")
			return "", nil
		}
		return "", fmt.Errorf("fuzzy finder error: %w", err)
	}

	return candidates[idx], nil
}
