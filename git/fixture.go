package git

import (
	"context"
	"path/filepath"
	"sync"
)

// FixtureRepository is an in-memory Repository for tests and demos.
type FixtureRepository struct {
	RootDir   string
	HeadRef   Head
	HeadErr   error
	Files     []FileStatus
	StatusErr error
}

var _ Repository = (*FixtureRepository)(nil)

// Root returns the fixture's root directory
func (f *FixtureRepository) Root() string {
	return f.RootDir
}

// Head returns HeadRef or HeadErr
func (f *FixtureRepository) Head(ctx context.Context) (Head, error) {
	if f.HeadErr != nil {
		return Head{}, f.HeadErr
	}
	return f.HeadRef, nil
}

// Status returns Files or StatusErr
func (f *FixtureRepository) Status(ctx context.Context) ([]FileStatus, error) {
	if f.StatusErr != nil {
		return nil, f.StatusErr
	}
	return f.Files, nil
}

// FixtureProvider serves FixtureRepository values keyed by root directory.
// Directories listed in OpenErrors fail to open with the given error.
type FixtureProvider struct {
	mu         sync.Mutex
	repos      map[string]*FixtureRepository
	openErrors map[string]error
	opened     []string
}

var _ RepositoryProvider = (*FixtureProvider)(nil)

// NewFixtureProvider creates a provider serving the given repositories.
func NewFixtureProvider(repos ...*FixtureRepository) *FixtureProvider {
	p := &FixtureProvider{
		repos:      make(map[string]*FixtureRepository),
		openErrors: make(map[string]error),
	}
	for _, r := range repos {
		p.repos[filepath.Clean(r.RootDir)] = r
	}
	return p
}

// FailOpen makes Open fail for dir with err.
func (p *FixtureProvider) FailOpen(dir string, err error) *FixtureProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.openErrors[filepath.Clean(dir)] = err
	return p
}

// Open returns the fixture rooted at dir
func (p *FixtureProvider) Open(ctx context.Context, dir string) (Repository, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	dir = filepath.Clean(dir)
	p.opened = append(p.opened, dir)
	if err, ok := p.openErrors[dir]; ok {
		return nil, err
	}
	if r, ok := p.repos[dir]; ok {
		return r, nil
	}
	return nil, ErrNotRepository
}

// Opened returns the directories opened so far, in order.
func (p *FixtureProvider) Opened() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.opened...)
}
