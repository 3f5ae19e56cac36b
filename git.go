package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// isGitURL checks if the root argument looks like a Git repository URL
// rather than a local path. Prioritizes the .git suffix or git@ prefix;
// bare https:// is left alone since it is ambiguous.
func isGitURL(input string) bool {
	return strings.HasSuffix(input, ".git") ||
		strings.HasPrefix(input, "git@")
}

// cloneSearchRoot clones a Git repository URL into a temporary directory so
// it can be searched like any local root. The caller is responsible for
// removing the returned directory when the run finishes.
func cloneSearchRoot(url string) (string, error) {
	tempDir, err := os.MkdirTemp("", "kemet-git-")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary directory: %w", err)
	}

	fmt.Printf("Cloning Git repository '%s' into '%s'...\n", url, tempDir)

	_, err = git.PlainClone(tempDir, false, &git.CloneOptions{
		URL:           url,
		Progress:      os.Stderr,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
	})
	if err != nil {
		_ = os.RemoveAll(tempDir)
		return "", fmt.Errorf("failed to clone repository '%s': %w", url, err)
	}

	return tempDir, nil
}
