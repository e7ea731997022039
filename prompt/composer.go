// Package prompt composes the prompt line from the abbreviated working
// directory and the status of the enclosing repository.
package prompt

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/grovetools/familiar/config"
	"github.com/grovetools/familiar/errors"
	"github.com/grovetools/familiar/git"
	"github.com/grovetools/familiar/logging"
	"github.com/grovetools/familiar/pkg/profiling"
	"github.com/grovetools/familiar/theme"
	"github.com/grovetools/familiar/util/pathutil"
)

// Inspector reports the repository enclosing a directory.
type Inspector interface {
	Inspect(ctx context.Context, dir string) (*git.RepositoryStatus, bool)
}

// Composer builds the prompt. It holds no mutable state and can be reused.
type Composer struct {
	env       Environment
	inspector Inspector
	options   config.Options
	theme     *theme.Theme
	logger    *logrus.Entry
	profiler  *profiling.Profiler
}

// NewComposer creates a composer. A nil inspector disables the repository
// segment; a nil theme renders without color.
func NewComposer(env Environment, inspector Inspector, options config.Options, th *theme.Theme) *Composer {
	if th == nil {
		th = theme.Plain()
	}
	return &Composer{
		env:       env,
		inspector: inspector,
		options:   options,
		theme:     th,
		logger:    logging.NewLogger("prompt"),
	}
}

// WithProfiler records the compose phases as spans of p.
func (c *Composer) WithProfiler(p *profiling.Profiler) *Composer {
	c.profiler = p
	return c
}

// Compose returns the full prompt. The path and repository segments are
// computed concurrently. Only environment errors are returned; repository
// problems render as an empty segment.
func (c *Composer) Compose(ctx context.Context) (string, error) {
	span := c.profiler.Start("compose")
	defer span.Stop()

	home, _ := c.env.LookupEnv("HOME")
	if home == "" {
		return "", errors.EnvironmentMissing("HOME")
	}
	cwd, err := c.env.Getwd()
	if err != nil {
		return "", errors.EnvironmentUnreadable("working directory", err)
	}

	var (
		path   pathutil.DisplayPath
		status *git.RepositoryStatus
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer span.Start("abbreviate").Stop()
		var err error
		path, err = pathutil.Abbreviate(cwd, home)
		return err
	})
	if c.inspector != nil {
		g.Go(func() error {
			defer span.Start("inspect").Stop()
			if s, ok := c.inspector.Inspect(gctx, cwd); ok {
				status = s
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	c.logger.WithFields(logrus.Fields{
		"cwd":        cwd,
		"repository": status != nil,
	}).Debug("Prompt composed")

	defer span.Start("render").Stop()
	return Render(path, status, c.options, c.theme), nil
}

// Write composes the prompt and writes it to w in a single call. Nothing is
// written when composition fails.
func (c *Composer) Write(ctx context.Context, w io.Writer) error {
	s, err := c.Compose(ctx)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, s); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to write prompt")
	}
	return nil
}

// Render lays out the segments as
//
//	<prefix><base> <label> <marker> \n<promptChar><space>
//
// The label and marker are empty without a repository; the spaces around
// them are always written.
func Render(path pathutil.DisplayPath, status *git.RepositoryStatus, options config.Options, th *theme.Theme) string {
	if th == nil {
		th = theme.Plain()
	}

	var label, marker string
	if status != nil {
		label = th.Render(th.Label, "("+status.Label+")")
		style, glyph := Marker(th, status.Marker)
		marker = th.Render(style, "("+glyph+")")
	}

	var b strings.Builder
	b.WriteString(th.Render(th.Prefix, path.PrefixString()))
	b.WriteString(th.Render(th.Base, path.Base))
	b.WriteString(" ")
	b.WriteString(label)
	b.WriteString(" ")
	b.WriteString(marker)
	b.WriteString(" \n")
	b.WriteString(th.Render(th.PromptChar, options.PromptChar))
	b.WriteString(" ")
	return b.String()
}

// Marker returns the style and glyph for a status marker.
func Marker(th *theme.Theme, m git.StatusMarker) (lipgloss.Style, string) {
	switch m {
	case git.UnstagedChange:
		return th.Unstaged, th.Glyphs.Unstaged
	case git.StagedChange:
		return th.Staged, th.Glyphs.Staged
	default:
		return th.Clean, th.Glyphs.Clean
	}
}
