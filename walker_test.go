package main

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFixture drops a file (creating parent directories) inside a test tree.
func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// collectCandidates drains walkTree into a sorted slice of paths.
func collectCandidates(t *testing.T, cfg *SearchConfig) ([]string, []SearchError) {
	t.Helper()

	jobs := make(chan string, 256)
	var paths []string
	done := make(chan struct{})
	go func() {
		for p := range jobs {
			paths = append(paths, p)
		}
		close(done)
	}()

	walkErrs := walkTree(cfg, jobs)
	close(jobs)
	<-done

	sort.Strings(paths)
	return paths, walkErrs
}

func TestWalkerFiltersByExtension(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, filepath.Join(root, "a.rs"), "fn main() {}")
	writeFixture(t, filepath.Join(root, "b.txt"), "text")
	writeFixture(t, filepath.Join(root, "notes.md"), "skipped")
	writeFixture(t, filepath.Join(root, "sub", "c.PY"), "print()")
	writeFixture(t, filepath.Join(root, "sub", "a.b.rs"), "nested ext")

	cfg, err := newSearchConfig(root, "q", "rs,py,txt", "", false, false, false, false, "", 0, 0)
	require.NoError(t, err)

	paths, walkErrs := collectCandidates(t, cfg)
	assert.Empty(t, walkErrs)
	assert.Equal(t, []string{
		filepath.Join(root, "a.rs"),
		filepath.Join(root, "b.txt"),
		filepath.Join(root, "sub", "a.b.rs"),
		filepath.Join(root, "sub", "c.PY"),
	}, paths)
}

// Hidden files and directories are included unless --skip-hidden is set.
func TestWalkerHiddenPolicy(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, filepath.Join(root, "visible.txt"), "v")
	writeFixture(t, filepath.Join(root, ".hidden.txt"), "h")
	writeFixture(t, filepath.Join(root, ".dir", "inside.txt"), "i")

	cfg, err := newSearchConfig(root, "q", "txt", "", false, false, false, false, "", 0, 0)
	require.NoError(t, err)
	paths, _ := collectCandidates(t, cfg)
	assert.Len(t, paths, 3)

	cfg, err = newSearchConfig(root, "q", "txt", "", false, false, false, true, "", 0, 0)
	require.NoError(t, err)
	paths, _ = collectCandidates(t, cfg)
	assert.Equal(t, []string{filepath.Join(root, "visible.txt")}, paths)
}

func TestWalkerExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, filepath.Join(root, "keep.js"), "x")
	writeFixture(t, filepath.Join(root, "app.min.js"), "x")
	writeFixture(t, filepath.Join(root, "vendor", "dep.js"), "x")

	cfg, err := newSearchConfig(root, "q", "js", "vendor/**,*.min.js", false, false, false, false, "", 0, 0)
	require.NoError(t, err)

	paths, _ := collectCandidates(t, cfg)
	assert.Equal(t, []string{filepath.Join(root, "keep.js")}, paths)
}

func TestWalkerGitignoreOptIn(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, filepath.Join(root, ".gitignore"), "ignored/\n*.gen.txt\n")
	writeFixture(t, filepath.Join(root, "kept.txt"), "x")
	writeFixture(t, filepath.Join(root, "out.gen.txt"), "x")
	writeFixture(t, filepath.Join(root, "ignored", "skipped.txt"), "x")

	// Default: the .gitignore is inert and every matching file is visited.
	cfg, err := newSearchConfig(root, "q", "txt", "", false, false, false, false, "", 0, 0)
	require.NoError(t, err)
	paths, _ := collectCandidates(t, cfg)
	assert.Len(t, paths, 3)

	// Opt-in: both the directory rule and the file glob take effect, also
	// when the root is an absolute path (t.TempDir always is).
	cfg, err = newSearchConfig(root, "q", "txt", "", false, false, true, false, "", 0, 0)
	require.NoError(t, err)
	paths, _ = collectCandidates(t, cfg)
	assert.Equal(t, []string{filepath.Join(root, "kept.txt")}, paths)
}

func TestWalkerMaxSize(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, filepath.Join(root, "small.txt"), "tiny")
	writeFixture(t, filepath.Join(root, "big.txt"), "this one is over the limit")

	cfg, err := newSearchConfig(root, "q", "txt", "", false, false, false, false, "", 10, 0)
	require.NoError(t, err)

	paths, _ := collectCandidates(t, cfg)
	assert.Equal(t, []string{filepath.Join(root, "small.txt")}, paths)
}

func TestWalkerYieldsOnlyRegularFilesOnce(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, filepath.Join(root, "a", "x.txt"), "x")
	writeFixture(t, filepath.Join(root, "b", "y.txt"), "y")

	cfg, err := newSearchConfig(root, "q", "txt", "", false, false, false, false, "", 0, 0)
	require.NoError(t, err)

	paths, _ := collectCandidates(t, cfg)
	seen := map[string]bool{}
	for _, p := range paths {
		assert.False(t, seen[p], "path %s yielded twice", p)
		seen[p] = true
		info, statErr := os.Stat(p)
		require.NoError(t, statErr)
		assert.True(t, info.Mode().IsRegular())
	}
	assert.Len(t, paths, 2)
}

func TestWalkerRecordsUnreadableDirAndContinues(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks do not apply when running as root")
	}

	root := t.TempDir()
	writeFixture(t, filepath.Join(root, "ok.txt"), "x")
	locked := filepath.Join(root, "locked")
	writeFixture(t, filepath.Join(locked, "secret.txt"), "x")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	cfg, err := newSearchConfig(root, "q", "txt", "", false, false, false, false, "", 0, 0)
	require.NoError(t, err)

	paths, walkErrs := collectCandidates(t, cfg)
	assert.Equal(t, []string{filepath.Join(root, "ok.txt")}, paths)
	require.Len(t, walkErrs, 1)
	assert.Contains(t, walkErrs[0].Path, "locked")
}
