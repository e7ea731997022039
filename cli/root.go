package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/grovetools/familiar/config"
	"github.com/grovetools/familiar/errors"
	"github.com/grovetools/familiar/git"
	"github.com/grovetools/familiar/logging"
	"github.com/grovetools/familiar/pkg/profiling"
	"github.com/grovetools/familiar/prompt"
	"github.com/grovetools/familiar/shellinit"
	"github.com/grovetools/familiar/theme"
	"github.com/grovetools/familiar/version"
)

// Dependencies are the collaborators of the familiar command. Zero values
// select the real process environment, streams and git.
type Dependencies struct {
	Env      prompt.Environment
	Provider git.RepositoryProvider
	Stdout   io.Writer
	Stderr   io.Writer
	// Binary is the command name written into init scripts.
	Binary string
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Env == nil {
		d.Env = prompt.OSEnvironment{}
	}
	if d.Provider == nil {
		d.Provider = git.NewCLIProvider()
	}
	if d.Stdout == nil {
		d.Stdout = os.Stdout
	}
	if d.Stderr == nil {
		d.Stderr = os.Stderr
	}
	if d.Binary == "" {
		d.Binary = "familiar"
	}
	return d
}

// NewRootCommand builds the familiar command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	deps = deps.withDefaults()

	cmd := NewStandardCommand("familiar", "A dark magic shell prompt")
	cmd.Long = `familiar prints a shell prompt: the abbreviated working directory, the
branch and change status of the enclosing git repository, a line break and
the configured prompt character.`
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)
	SetVersionTemplate(cmd, version.GetInfo())

	profiler := profiling.NewCobraProfiler()
	profiler.AddFlags(cmd)
	cmd.PreRunE = profiler.PreRun
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		defer profiler.PostRun()
		return run(cmd.Context(), GetOptions(cmd), deps, profiler.Profiler)
	}
	return cmd
}

func run(ctx context.Context, opts CommandOptions, deps Dependencies, profiler *profiling.Profiler) error {
	logger := logging.NewLogger("cli")
	if err := logging.Configure(logging.Config{Verbose: opts.Verbose}); err != nil {
		logger.WithError(err).Warn("Could not configure logging, continuing with defaults")
	}

	if opts.Init != "" {
		snippet, err := shellinit.Snippet(opts.Init, deps.Binary)
		if err != nil {
			return err
		}
		_, err = io.WriteString(deps.Stdout, snippet)
		return err
	}

	if opts.PrintSchema {
		data, err := config.Schema()
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "failed to build config schema")
		}
		_, err = deps.Stdout.Write(append(data, '\n'))
		return err
	}

	getenv := prompt.Getenv(deps.Env)
	path, err := config.ResolvePath(opts.ConfigFile, getenv)
	if err != nil {
		return err
	}
	logger.WithField("path", path).Debug("Loading configuration")

	span := profiler.Start("config")
	cfg, err := config.Load(path)
	span.Stop()
	if err != nil {
		return err
	}

	cfg.Logging.Verbose = opts.Verbose
	if err := logging.Configure(cfg.Logging); err != nil {
		logger.WithError(err).Warn("Log file unavailable, continuing without it")
	}

	inspector := git.NewInspector(deps.Provider, git.InspectorConfig{
		Disabled:      cfg.Git.Disabled,
		DisabledPaths: cfg.Git.DisabledPaths,
		Home:          getenv("HOME"),
	}, nil)

	th := theme.New(theme.Options{
		Palette: cfg.Style.Palette,
		Color:   theme.ColorMode(firstNonEmpty(opts.Color, cfg.Style.Color)),
		Shell:   theme.Shell(firstNonEmpty(opts.Shell, cfg.Style.Shell)),
		Output:  deps.Stdout,
		Getenv:  getenv,
	})

	return prompt.NewComposer(deps.Env, inspector, cfg.Options, th).
		WithProfiler(profiler).
		Write(ctx, deps.Stdout)
}

// Execute runs the familiar command with the process arguments and returns
// the exit code.
func Execute(ctx context.Context) int {
	return ExecuteWith(ctx, Dependencies{Binary: binaryName()}, os.Args[1:])
}

// ExecuteWith runs the familiar command with explicit dependencies and
// arguments. Errors are reported on deps.Stderr.
func ExecuteWith(ctx context.Context, deps Dependencies, args []string) int {
	deps = deps.withDefaults()
	cmd := NewRootCommand(deps)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		verbose, _ := cmd.Flags().GetBool("verbose")
		_ = NewErrorHandler(deps.Stderr, verbose).Handle(err)
		return 1
	}
	return 0
}

func binaryName() string {
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			return resolved
		}
		return exe
	}
	return "familiar"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
