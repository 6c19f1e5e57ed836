// Package git finds the lines touched by the head commit.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	"bslcheck/internal/domain"
)

const defaultTimeout = 30 * time.Second

// Locator diffs HEAD against its parent with the git command line tool.
type Locator struct {
	repoDir  string
	pathspec []string
	timeout  time.Duration
}

// NewLocator creates a locator. repoDir may be any directory inside the
// repository; empty means the directory passed to Locate.
func NewLocator(repoDir string, pathspec []string, timeout time.Duration) *Locator {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Locator{
		repoDir:  repoDir,
		pathspec: pathspec,
		timeout:  timeout,
	}
}

// Locate returns the changed lines per file between HEAD and HEAD^. The diff
// runs from HEAD to its parent, so the old side of every hunk describes HEAD
// and those are the ranges recorded. A repository without a parent commit
// is an error.
func (l *Locator) Locate(ctx context.Context, dir string) (domain.Changes, error) {
	start := l.repoDir
	if start == "" {
		start = dir
	}
	// Diff paths are relative to the top level even when git runs in a
	// subdirectory, so Root must be the top level.
	top, err := l.git(ctx, start, "rev-parse", "--show-toplevel")
	if err != nil {
		return domain.Changes{}, fmt.Errorf("failed to find repository: %w", err)
	}
	root, err := filepath.Abs(strings.TrimSpace(string(top)))
	if err != nil {
		return domain.Changes{}, fmt.Errorf("invalid repository path: %w", err)
	}

	args := []string{"diff", "--no-color", "--no-ext-diff", "HEAD", "HEAD^"}
	if len(l.pathspec) > 0 {
		args = append(args, "--")
		args = append(args, l.pathspec...)
	}
	out, err := l.git(ctx, root, args...)
	if err != nil {
		return domain.Changes{}, fmt.Errorf("failed to diff HEAD against its parent: %w", err)
	}

	files, err := ParseDiff(bytes.NewReader(out))
	if err != nil {
		return domain.Changes{}, err
	}

	return domain.Changes{Root: root, Files: files}, nil
}

func (l *Locator) git(ctx context.Context, dir string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	// Non-ASCII paths would otherwise come back octal-escaped.
	args = append([]string{"-c", "core.quotePath=false"}, args...)
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("git %s: %w: %s", args[2], err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("git %s: %w", args[2], err)
	}
	return out, nil
}

// ParseDiff reads a unified diff and returns, per file, the old-side line
// ranges of its hunks. A hunk header "@@ -s,n +... @@" contributes lines s
// through s+n-1; a header without n counts one line.
func ParseDiff(r io.Reader) (map[string]domain.LineSet, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse diff: %w", err)
	}

	changes := make(map[string]domain.LineSet, len(files))
	for _, f := range files {
		name := f.OldName
		if name == "" {
			name = f.NewName
		}
		key := filepath.Clean(filepath.FromSlash(name))

		lines, ok := changes[key]
		if !ok {
			lines = make(domain.LineSet)
			changes[key] = lines
		}
		for _, frag := range f.TextFragments {
			start := int(frag.OldPosition)
			lines.Add(start, start+int(frag.OldLines)-1)
		}
	}

	return changes, nil
}
