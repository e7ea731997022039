package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CommandOptions holds the flags of the familiar command
type CommandOptions struct {
	ConfigFile  string
	Verbose     bool
	Shell       string
	Color       string
	Init        string
	PrintSchema bool
}

// NewStandardCommand creates a command with the standard flags. The command
// takes no arguments and has no subcommands.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.Flags()
	flags.BoolP("verbose", "v", false, "Enable debug logging on stderr")
	flags.StringP("config", "c", "", "Path to the config file (default $XDG_CONFIG_HOME/familiar/familiar.toml)")
	flags.String("shell", "", "Fence escape sequences for this shell: bash, zsh or none (overrides style.shell)")
	flags.String("color", "", "Color mode: auto, always or never (overrides style.color)")
	flags.String("init", "", "Print the init script for bash or zsh and exit")
	flags.Bool("print-schema", false, "Print the JSON Schema of the config file and exit")
	_ = flags.MarkHidden("print-schema")
	flags.SortFlags = false

	return cmd
}

// GetOptions extracts the standard options from a command
func GetOptions(cmd *cobra.Command) CommandOptions {
	flags := cmd.Flags()
	return CommandOptions{
		ConfigFile:  stringFlag(flags, "config"),
		Verbose:     boolFlag(flags, "verbose"),
		Shell:       stringFlag(flags, "shell"),
		Color:       stringFlag(flags, "color"),
		Init:        stringFlag(flags, "init"),
		PrintSchema: boolFlag(flags, "print-schema"),
	}
}

func stringFlag(flags *pflag.FlagSet, name string) string {
	v, _ := flags.GetString(name)
	return v
}

func boolFlag(flags *pflag.FlagSet, name string) bool {
	v, _ := flags.GetBool(name)
	return v
}
