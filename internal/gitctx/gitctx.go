package gitctx

import (
	"errors"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// State is the git working-tree state of a single file.
type State string

const (
	// NotInRepo means the file is not inside a git working tree.
	NotInRepo State = "not-in-repo"
	// Clean means the file matches HEAD (or is ignored).
	Clean State = "clean"
	// Modified covers staged and unstaged changes.
	Modified State = "modified"
	// Untracked means git does not know the file yet.
	Untracked State = "untracked"
)

// FileContext captures where a file sits in git and whether it has local edits.
type FileContext struct {
	State  State  `json:"state"`
	Path   string `json:"path,omitempty"` // repo-relative, forward slashes
	Branch string `json:"branch,omitempty"`
	GitSHA string `json:"git_sha,omitempty"`
}

// HasLocalEdits reports whether overwriting the file would discard uncommitted work.
func (c *FileContext) HasLocalEdits() bool {
	return c != nil && c.State == Modified
}

// FileState inspects the repository containing path. A path outside any
// repository yields NotInRepo and no error.
func FileState(path string) (*FileContext, error) {
	abs, err := resolve(path)
	if err != nil {
		return nil, err
	}

	repo, err := git.PlainOpenWithOptions(filepath.Dir(abs), &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return &FileContext{State: NotInRepo}, nil
	}
	if err != nil {
		return nil, err
	}

	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no worktree to compare against
		return &FileContext{State: NotInRepo}, nil
	}
	top, err := resolve(wt.Filesystem.Root())
	if err != nil {
		return nil, err
	}
	rel, err := filepath.Rel(top, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return &FileContext{State: NotInRepo}, nil
	}

	ctx := &FileContext{State: Clean, Path: filepath.ToSlash(rel)}
	if head, err := repo.Head(); err == nil {
		ctx.Branch = head.Name().Short()
		ctx.GitSHA = head.Hash().String()
	}

	st, err := wt.Status()
	if err != nil {
		return nil, err
	}
	// Status only lists files that differ from HEAD
	if s, ok := st[ctx.Path]; ok {
		switch {
		case s.Worktree == git.Untracked:
			ctx.State = Untracked
		case s.Staging != git.Unmodified || s.Worktree != git.Unmodified:
			ctx.State = Modified
		}
	}
	return ctx, nil
}

// resolve returns an absolute path with symlinks evaluated when the path exists.
func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}
