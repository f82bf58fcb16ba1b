package enum

import (
	"github.com/cockroachdb/errors"
	"github.com/go-git/go-git/v5"
)

// Revision identifies the commit a source tree was rendered from.
type Revision struct {
	Commit string
	Branch string
}

// Short returns the abbreviated commit hash.
func (r Revision) Short() string {
	if len(r.Commit) > 12 {
		return r.Commit[:12]
	}
	return r.Commit
}

// IsZero reports whether no revision is known.
func (r Revision) IsZero() bool {
	return r.Commit == ""
}

// ReadRevision resolves HEAD of the git repository containing root. A
// directory outside any repository, or a repository without commits, yields
// the zero Revision.
func ReadRevision(root string) (Revision, error) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return Revision{}, nil
	}
	if err != nil {
		return Revision{}, errors.Wrapf(err, "opening git repository at %s", root)
	}

	head, err := repo.Head()
	if err != nil {
		// Fresh repository: HEAD points at an unborn branch.
		return Revision{}, nil
	}

	rev := Revision{Commit: head.Hash().String()}
	if head.Name().IsBranch() {
		rev.Branch = head.Name().Short()
	}
	return rev, nil
}
