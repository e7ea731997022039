package git

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/moby/patternmatcher"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/familiar/logging"
	"github.com/grovetools/familiar/util/pathutil"
)

// InspectorConfig controls when repository inspection runs.
type InspectorConfig struct {
	// Disabled turns inspection off entirely.
	Disabled bool
	// DisabledPaths are .dockerignore-style patterns; a leading "~" is
	// expanded against Home. Inspection is skipped for matching directories
	// and everything below them.
	DisabledPaths []string
	Home          string
}

// Inspector finds the repository enclosing a directory and summarizes it.
// Every failure is reported as "no repository"; nothing here is fatal.
type Inspector struct {
	provider RepositoryProvider
	disabled bool
	matcher  *patternmatcher.PatternMatcher
	logger   *logrus.Entry
}

// NewInspector creates an inspector over provider. Invalid disabled-path
// patterns are logged and ignored.
func NewInspector(provider RepositoryProvider, cfg InspectorConfig, logger *logrus.Entry) *Inspector {
	if logger == nil {
		logger = logging.NewLogger("git")
	}

	i := &Inspector{
		provider: provider,
		disabled: cfg.Disabled,
		logger:   logger,
	}

	if len(cfg.DisabledPaths) > 0 {
		patterns := make([]string, 0, len(cfg.DisabledPaths))
		for _, p := range cfg.DisabledPaths {
			patterns = append(patterns, trimRoot(pathutil.ExpandHome(p, cfg.Home)))
		}
		matcher, err := patternmatcher.New(patterns)
		if err != nil {
			logger.WithError(err).Warn("Ignoring invalid git.disabled_paths patterns")
		} else {
			i.matcher = matcher
		}
	}

	return i
}

// Inspect returns the status of the repository enclosing dir. The boolean is
// false when there is no repository, when inspection is disabled for dir, or
// when anything about the repository could not be read.
func (i *Inspector) Inspect(ctx context.Context, dir string) (*RepositoryStatus, bool) {
	if i.skip(dir) {
		i.logger.WithField("dir", dir).Debug("Repository inspection disabled")
		return nil, false
	}

	repo, ok := i.Discover(ctx, dir)
	if !ok {
		return nil, false
	}
	log := i.logger.WithField("root", repo.Root())

	head, err := repo.Head(ctx)
	if err != nil {
		log.WithError(err).Debug("Could not resolve HEAD")
		return nil, false
	}

	files, err := repo.Status(ctx)
	if err != nil {
		log.WithError(err).Debug("Could not enumerate status")
		return nil, false
	}

	status := &RepositoryStatus{
		Label:  Label(head),
		Marker: Classify(files),
	}
	log.WithFields(logrus.Fields{
		"label":  status.Label,
		"marker": status.Marker,
	}).Debug("Repository inspected")

	return status, true
}

// Discover walks from dir up to the filesystem root and opens the first
// directory that is a repository root. A failure to open a candidate counts
// as "not a repository" and the walk continues.
func (i *Inspector) Discover(ctx context.Context, dir string) (Repository, bool) {
	for _, candidate := range Ancestors(dir) {
		if ctx.Err() != nil {
			return nil, false
		}
		repo, err := i.provider.Open(ctx, candidate)
		if err == nil {
			return repo, true
		}
		if !errors.Is(err, ErrNotRepository) {
			i.logger.WithError(err).WithField("dir", candidate).Debug("Skipping unreadable candidate")
		}
	}
	return nil, false
}

func (i *Inspector) skip(dir string) bool {
	if i.disabled {
		return true
	}
	if i.matcher == nil {
		return false
	}
	matched, err := i.matcher.MatchesOrParentMatches(trimRoot(filepath.ToSlash(filepath.Clean(dir))))
	if err != nil {
		i.logger.WithError(err).Debug("Disabled path match failed")
		return false
	}
	return matched
}

// trimRoot makes absolute paths relative to "/" since patternmatcher works on
// relative, slash-delimited paths.
func trimRoot(path string) string {
	return strings.TrimPrefix(path, "/")
}
