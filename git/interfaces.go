package git

import (
	"context"
	"errors"
)

var (
	// ErrNotRepository is returned by RepositoryProvider.Open when a
	// directory is not the root of a repository.
	ErrNotRepository = errors.New("not a git repository")

	// ErrUnbornHead is returned by Repository.Head when HEAD points at a
	// branch that has no commits yet.
	ErrUnbornHead = errors.New("HEAD does not point at a commit")
)

// Head describes what HEAD currently points at.
type Head struct {
	// Branch is the short branch name; empty when detached.
	Branch string
	// Commit is the full commit id HEAD resolves to.
	Commit string
	// Detached is true when HEAD points directly at a commit.
	Detached bool
}

// Repository is an opened repository.
type Repository interface {
	// Root is the working tree root the repository was opened at.
	Root() string
	// Head resolves HEAD. It returns ErrUnbornHead when there are no commits.
	Head(ctx context.Context) (Head, error)
	// Status enumerates every changed path across index and working tree.
	Status(ctx context.Context) ([]FileStatus, error)
}

// RepositoryProvider opens repositories. Implementations exist for on-disk
// repositories (CLIProvider) and for in-memory fixtures (FixtureProvider).
type RepositoryProvider interface {
	// Open returns the repository rooted exactly at dir, or ErrNotRepository.
	Open(ctx context.Context, dir string) (Repository, error)
}
