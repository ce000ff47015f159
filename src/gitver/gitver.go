// Package gitver resolves the commit a dispatch run targets when CodeBuild
// did not supply one, by reading the local git repository.
package gitver

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// SourceInfo holds the checked-out revision of a working tree.
type SourceInfo struct {
	SHA    string // full commit hash
	Branch string // empty when HEAD is detached
}

// DetectSource reads HEAD of the repository containing rootDir.
func DetectSource(rootDir string) (*SourceInfo, error) {
	repo, err := git.PlainOpenWithOptions(rootDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD: %w", err)
	}

	info := &SourceInfo{SHA: head.Hash().String()}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}
	return info, nil
}

// Resolve returns current as the source when it is set. Otherwise it reads
// HEAD of the repository containing rootDir. Without a repository to read the
// returned SourceInfo is empty.
func Resolve(current, rootDir string) (SourceInfo, error) {
	if current != "" {
		return SourceInfo{SHA: current}, nil
	}
	info, err := DetectSource(rootDir)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) || errors.Is(err, plumbing.ErrReferenceNotFound) {
			return SourceInfo{}, nil
		}
		return SourceInfo{}, err
	}
	return *info, nil
}
