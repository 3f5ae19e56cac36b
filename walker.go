package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/monochromegane/go-gitignore"
)

// walkTree recursively enumerates the regular files under cfg.Root whose
// extension is in the allow-list and sends their paths on jobs. Directories
// that cannot be listed are recorded as errors and skipped; the walk
// continues with the remaining entries. Symlinked directories are not
// descended into (filepath.WalkDir never follows them), which keeps the
// traversal cycle-free.
//
// The returned slice holds the traversal errors in encounter order. The
// caller owns closing jobs once walkTree returns.
func walkTree(cfg *SearchConfig, jobs chan<- string) []SearchError {
	var walkErrs []SearchError

	var ignoreMatcher gitignore.IgnoreMatcher
	if cfg.UseIgnore {
		gitIgnorePath := filepath.Join(cfg.Root, ".gitignore")
		if _, err := os.Stat(gitIgnorePath); err == nil {
			matcher, err := gitignore.NewGitIgnore(gitIgnorePath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not parse %s: %v\n", gitIgnorePath, err)
			} else {
				ignoreMatcher = matcher
			}
		}
	}

	_ = filepath.WalkDir(cfg.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			walkErrs = append(walkErrs, SearchError{Path: path, Reason: err.Error()})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if path == cfg.Root {
			return nil
		}

		isDir := d.IsDir()
		relPath, relErr := filepath.Rel(cfg.Root, path)
		if relErr != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		if cfg.SkipHidden && isHidden(d.Name()) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		// The matcher resolves paths against the .gitignore's own directory,
		// so it gets the walked path, not the root-relative one.
		if ignoreMatcher != nil && ignoreMatcher.Match(path, isDir) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		if matchesAnyPattern(relPath, d.Name(), cfg.ExcludePatterns) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		if isDir {
			return nil
		}

		// Only regular files are candidates; symlinked files, sockets and
		// devices are skipped.
		if !d.Type().IsRegular() {
			return nil
		}

		if !cfg.wantsExtension(filepath.Ext(path)) {
			return nil
		}

		if cfg.MaxSizeBytes > 0 {
			info, infoErr := d.Info()
			if infoErr != nil {
				walkErrs = append(walkErrs, SearchError{Path: path, Reason: infoErr.Error()})
				return nil
			}
			if info.Size() > cfg.MaxSizeBytes {
				return nil
			}
		}

		jobs <- path
		return nil
	})

	return walkErrs
}

// matchesAnyPattern checks a relative path and its base name against a set of
// doublestar glob patterns. Patterns were validated at config time, so match
// errors cannot occur here.
func matchesAnyPattern(relPath, baseName string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, baseName); ok {
			return true
		}
	}
	return false
}

// isHidden reports whether a base name is dot-prefixed. "." and ".." are not
// considered hidden.
func isHidden(baseName string) bool {
	if baseName == "." || baseName == ".." {
		return false
	}
	return strings.HasPrefix(baseName, ".")
}
