package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/grovetools/familiar/command"
	"github.com/grovetools/familiar/errors"
)

// gitEnv keeps prompt rendering read-only and locale independent.
// GIT_OPTIONAL_LOCKS=0 stops `git status` from refreshing the index, which
// would otherwise race with the user's own git commands.
var gitEnv = []string{"GIT_OPTIONAL_LOCKS=0", "LC_ALL=C"}

// openTimeout bounds the check that a .git entry is usable.
const openTimeout = 500 * time.Millisecond

// CLIProvider implements RepositoryProvider using the git CLI
type CLIProvider struct {
	cmdBuilder *command.SafeBuilder
}

// Ensure it implements the interface
var _ RepositoryProvider = (*CLIProvider)(nil)

// NewCLIProvider creates a new CLI repository provider
func NewCLIProvider() *CLIProvider {
	return NewCLIProviderWithBuilder(command.NewSafeBuilderWithExecutor(&command.RealExecutor{Env: gitEnv}))
}

// NewCLIProviderWithBuilder creates a CLI provider with a custom command builder.
func NewCLIProviderWithBuilder(builder *command.SafeBuilder) *CLIProvider {
	return &CLIProvider{cmdBuilder: builder}
}

// Open treats dir as a repository root when it contains a .git entry, which
// is a directory for regular clones and a file for worktrees and submodules,
// and git accepts it. A .git entry git rejects, such as a gitfile pointing
// at a removed directory, is an open error so discovery moves on to the
// parent.
func (p *CLIProvider) Open(ctx context.Context, dir string) (Repository, error) {
	if err := p.cmdBuilder.Validate("dir", dir); err != nil {
		return nil, fmt.Errorf("open %s: %w", dir, err)
	}
	if _, err := os.Lstat(filepath.Join(dir, ".git")); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotRepository
		}
		return nil, fmt.Errorf("open %s: %w", dir, err)
	}

	cmd, err := p.cmdBuilder.Build(ctx, "git", "rev-parse", "--git-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to build command: %w", err)
	}
	cmd.WithTimeout(openTimeout).InDir(dir)
	if err := cmd.Run(); err != nil {
		return nil, errors.CommandFailed(cmd.String(), err).WithDetail("root", dir)
	}

	return &CLIRepository{root: dir, cmdBuilder: p.cmdBuilder}, nil
}

// CLIRepository is a repository backed by the git binary. Head and Status
// share a single `git status --porcelain=v2 --branch` call.
type CLIRepository struct {
	root       string
	cmdBuilder *command.SafeBuilder

	once  sync.Once
	head  headInfo
	files []FileStatus
	err   error
}

// Root returns the working tree root
func (r *CLIRepository) Root() string {
	return r.root
}

// Head resolves HEAD from the porcelain branch headers
func (r *CLIRepository) Head(ctx context.Context) (Head, error) {
	if err := r.load(ctx); err != nil {
		return Head{}, err
	}
	if r.head.oid == "" || r.head.oid == porcelainInitial {
		return Head{}, ErrUnbornHead
	}
	if r.head.head == porcelainDetached {
		return Head{Commit: r.head.oid, Detached: true}, nil
	}
	return Head{Branch: r.head.head, Commit: r.head.oid}, nil
}

// Status returns every changed path, untracked files included
func (r *CLIRepository) Status(ctx context.Context) ([]FileStatus, error) {
	if err := r.load(ctx); err != nil {
		return nil, err
	}
	return r.files, nil
}

func (r *CLIRepository) load(ctx context.Context) error {
	r.once.Do(func() {
		cmd, err := r.cmdBuilder.Build(ctx, "git", "status", "--porcelain=v2", "--branch", "--untracked-files=normal")
		if err != nil {
			r.err = fmt.Errorf("failed to build command: %w", err)
			return
		}
		output, err := cmd.InDir(r.root).Output()
		if err != nil {
			r.err = errors.CommandFailed(cmd.String(), err).WithDetail("root", r.root)
			return
		}
		r.head, r.files = parsePorcelainV2(string(output))
	})
	return r.err
}
