// Package theme holds the lipgloss styles and glyphs used to draw prompt
// segments.
package theme

import (
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ColorMode selects when escape sequences are emitted.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Shell selects how escape sequences are fenced so the shell can measure
// the visible width of the prompt.
type Shell string

const (
	ShellNone Shell = "none"
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
)

// Glyphs are the repository status markers.
type Glyphs struct {
	Clean    string
	Staged   string
	Unstaged string
}

// DefaultGlyphs are the markers drawn inside the status parentheses.
var DefaultGlyphs = Glyphs{
	Clean:    "·",
	Staged:   "±",
	Unstaged: "✗",
}

// Options configures New.
type Options struct {
	// Palette is a palette name; see PaletteNames. Empty selects "terminal".
	Palette string
	Color   ColorMode
	Shell   Shell
	// Output is the stream the prompt is written to. Used by ColorAuto.
	Output io.Writer
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// Theme holds the pre-configured styles for each prompt segment.
type Theme struct {
	Colors Colors
	Glyphs Glyphs

	Prefix     lipgloss.Style
	Base       lipgloss.Style
	Label      lipgloss.Style
	Clean      lipgloss.Style
	Staged     lipgloss.Style
	Unstaged   lipgloss.Style
	PromptChar lipgloss.Style

	renderer *lipgloss.Renderer
	shell    Shell
}

// New builds a theme on a dedicated renderer whose color profile is
// chosen from opts.
func New(opts Options) *Theme {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	colors, light := resolvePalette(opts.Palette)

	r := lipgloss.NewRenderer(out)
	r.SetColorProfile(ResolveProfile(opts.Color, out, opts.Getenv))
	// Skip the terminal background query; it would stall every prompt.
	r.SetHasDarkBackground(!light)

	return &Theme{
		Colors:     colors,
		Glyphs:     DefaultGlyphs,
		Prefix:     r.NewStyle().Foreground(colors.Cyan),
		Base:       r.NewStyle().Foreground(colors.Cyan).Bold(true),
		Label:      r.NewStyle().Foreground(colors.Violet),
		Clean:      r.NewStyle().Foreground(colors.Green),
		Staged:     r.NewStyle().Foreground(colors.Yellow),
		Unstaged:   r.NewStyle().Foreground(colors.Red),
		PromptChar: r.NewStyle().Bold(true),
		renderer:   r,
		shell:      opts.Shell,
	}
}

// Plain returns a theme that never emits escape sequences.
func Plain() *Theme {
	return New(Options{Color: ColorNever, Output: io.Discard})
}

// Profile reports the color profile the theme renders with.
func (t *Theme) Profile() termenv.Profile {
	return t.renderer.ColorProfile()
}

// Render styles text and fences the escape sequences for the configured
// shell. Empty text renders as the empty string.
func (t *Theme) Render(style lipgloss.Style, text string) string {
	if text == "" {
		return ""
	}
	return WrapEscapes(style.Render(EscapeText(text, t.shell)), t.shell)
}

// Bash decodes prompt escapes first (`\\` becomes `\`) and then runs
// parameter expansion and command substitution on the result, so every
// character meaningful to either pass is escaped for both.
var bashEscaper = strings.NewReplacer(
	`\`, `\\\\`,
	`$`, `\\$`,
	"`", "\\\\`",
)

// Zsh expands % escapes always and $ and ` under prompt_subst, which the
// init snippet turns on.
var zshEscaper = strings.NewReplacer(
	`\`, `\\`,
	`$`, `\$`,
	"`", "\\`",
	`"`, `\"`,
	"%", "%%",
)

// EscapeText quotes the characters the shell would otherwise expand while
// drawing the prompt. Directory and branch names are untrusted: a branch
// named $(cmd) must print, not run.
func EscapeText(text string, shell Shell) string {
	switch shell {
	case ShellBash:
		return bashEscaper.Replace(text)
	case ShellZsh:
		return zshEscaper.Replace(text)
	}
	return text
}

// ResolveProfile picks the color profile for mode. An explicit mode wins
// over NO_COLOR and CLICOLOR_FORCE; in auto mode color is used only when
// out is a terminal.
func ResolveProfile(mode ColorMode, out io.Writer, getenv func(string) string) termenv.Profile {
	if getenv == nil {
		getenv = os.Getenv
	}

	switch mode {
	case ColorNever:
		return termenv.Ascii
	case ColorAlways:
		return termenv.ANSI
	}

	if getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if force := getenv("CLICOLOR_FORCE"); force != "" && force != "0" {
		return termenv.ANSI
	}
	if f, ok := out.(interface{ Fd() uintptr }); ok && term.IsTerminal(int(f.Fd())) {
		return termenv.ANSI
	}
	return termenv.Ascii
}

var escapePattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

// WrapEscapes fences every SGR escape sequence in s with the markers the
// shell uses for zero-width text.
func WrapEscapes(s string, shell Shell) string {
	var open, close string
	switch shell {
	case ShellBash:
		open, close = `\[`, `\]`
	case ShellZsh:
		open, close = "%{", "%}"
	default:
		return s
	}
	if !strings.Contains(s, "\x1b") {
		return s
	}
	return escapePattern.ReplaceAllStringFunc(s, func(seq string) string {
		return open + seq + close
	})
}
