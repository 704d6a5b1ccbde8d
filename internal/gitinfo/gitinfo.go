// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Describe the git checkout backing a nixpkgs tree

package gitinfo

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
)

// ErrNotGitRepo is returned when the tree is not inside a git work tree
var ErrNotGitRepo = errors.New("not a git repository")

// Info describes the checked-out revision
type Info struct {
	Head      string // full commit hash
	ShortHead string // first 12 hex chars
	Branch    string // empty when HEAD is detached
}

// Describe opens the repository containing dir and reads HEAD
func Describe(dir string) (*Info, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, ErrNotGitRepo
		}
		return nil, fmt.Errorf("failed to open repository at %s: %w", dir, err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	hash := head.Hash().String()
	info := &Info{
		Head:      hash,
		ShortHead: hash[:12],
	}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}

	return info, nil
}

// String returns "branch@short" or just the short hash when detached
func (i *Info) String() string {
	if i.Branch == "" {
		return i.ShortHead
	}
	return fmt.Sprintf("%s@%s", i.Branch, i.ShortHead)
}
