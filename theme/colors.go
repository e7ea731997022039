package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const defaultPaletteName = "terminal"

// --- Terminal (ANSI-friendly) palette ---
const (
	terminalGreen     = "2"
	terminalYellow    = "3"
	terminalRed       = "1"
	terminalCyan      = "6"
	terminalBlue      = "4"
	terminalViolet    = "5"
	terminalMutedText = "8"
)

// --- Kanagawa palette ---
const (
	kanagawaDarkGreen      = "#98BB6C"
	kanagawaDarkYellow     = "#FF9E3B"
	kanagawaDarkRed        = "#FF5D62"
	kanagawaDarkCyan       = "#7E9CD8"
	kanagawaDarkBlue       = "#7FB4CA"
	kanagawaDarkViolet     = "#957FB8"
	kanagawaDarkMutedText  = "#727169"
	kanagawaLightGreen     = "#4E7C5A"
	kanagawaLightYellow    = "#A68A64"
	kanagawaLightRed       = "#C34043"
	kanagawaLightCyan      = "#5B8BBE"
	kanagawaLightBlue      = "#4F7CAC"
	kanagawaLightViolet    = "#674D7A"
	kanagawaLightMutedText = "#6C7086"
)

// --- Gruvbox palette ---
const (
	gruvboxDarkGreen      = "#B8BB26"
	gruvboxLightGreen     = "#98971A"
	gruvboxDarkYellow     = "#FABD2F"
	gruvboxLightYellow    = "#D79921"
	gruvboxDarkRed        = "#FB4934"
	gruvboxLightRed       = "#CC241D"
	gruvboxDarkCyan       = "#83A598"
	gruvboxLightCyan      = "#458588"
	gruvboxDarkBlue       = "#458588"
	gruvboxLightBlue      = "#076678"
	gruvboxDarkViolet     = "#B16286"
	gruvboxLightViolet    = "#8F3F71"
	gruvboxDarkMutedText  = "#BDAE93"
	gruvboxLightMutedText = "#928374"
)

// Colors is the palette a prompt is drawn with. lipgloss.TerminalColor
// allows a mix of adaptive and static colors.
type Colors struct {
	Green     lipgloss.TerminalColor
	Yellow    lipgloss.TerminalColor
	Red       lipgloss.TerminalColor
	Cyan      lipgloss.TerminalColor
	Blue      lipgloss.TerminalColor
	Violet    lipgloss.TerminalColor
	MutedText lipgloss.TerminalColor
}

var paletteRegistry = map[string]func() Colors{
	"terminal": TerminalColors,
	"kanagawa": newKanagawaColors,
	"gruvbox":  newGruvboxColors,
}

// lightPalettes select the light variant of adaptive colors without
// querying the terminal.
var lightPalettes = map[string]string{
	"kanagawa-wave": "kanagawa",
	"gruvbox-light": "gruvbox",
}

var paletteAliases = map[string]string{
	"kanagawa-dark":   "kanagawa",
	"kanagawa-dragon": "kanagawa",
	"gruvbox-dark":    "gruvbox",
	"ansi":            "terminal",
}

// PaletteNames lists the accepted palette names, aliases included.
func PaletteNames() []string {
	names := make([]string, 0, len(paletteRegistry)+len(paletteAliases)+len(lightPalettes))
	for name := range paletteRegistry {
		names = append(names, name)
	}
	for name := range paletteAliases {
		names = append(names, name)
	}
	for name := range lightPalettes {
		names = append(names, name)
	}
	return names
}

// resolvePalette returns the palette for name and whether it is a light
// variant. Unknown names fall back to the terminal palette.
func resolvePalette(name string) (Colors, bool) {
	key := normalizeName(name)
	light := false
	if base, ok := lightPalettes[key]; ok {
		key = base
		light = true
	}
	if alias, ok := paletteAliases[key]; ok {
		key = alias
	}
	if builder, ok := paletteRegistry[key]; ok {
		return builder(), light
	}
	return paletteRegistry[defaultPaletteName](), false
}

func normalizeName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, " ", "-")
	normalized = strings.ReplaceAll(normalized, "_", "-")
	return normalized
}

// TerminalColors is the palette of the 16 standard ANSI colors, which
// follows whatever scheme the terminal is configured with.
func TerminalColors() Colors {
	return Colors{
		Green:     lipgloss.Color(terminalGreen),
		Yellow:    lipgloss.Color(terminalYellow),
		Red:       lipgloss.Color(terminalRed),
		Cyan:      lipgloss.Color(terminalCyan),
		Blue:      lipgloss.Color(terminalBlue),
		Violet:    lipgloss.Color(terminalViolet),
		MutedText: lipgloss.Color(terminalMutedText),
	}
}

func newKanagawaColors() Colors {
	return Colors{
		Green:     lipgloss.AdaptiveColor{Light: kanagawaLightGreen, Dark: kanagawaDarkGreen},
		Yellow:    lipgloss.AdaptiveColor{Light: kanagawaLightYellow, Dark: kanagawaDarkYellow},
		Red:       lipgloss.AdaptiveColor{Light: kanagawaLightRed, Dark: kanagawaDarkRed},
		Cyan:      lipgloss.AdaptiveColor{Light: kanagawaLightCyan, Dark: kanagawaDarkCyan},
		Blue:      lipgloss.AdaptiveColor{Light: kanagawaLightBlue, Dark: kanagawaDarkBlue},
		Violet:    lipgloss.AdaptiveColor{Light: kanagawaLightViolet, Dark: kanagawaDarkViolet},
		MutedText: lipgloss.AdaptiveColor{Light: kanagawaLightMutedText, Dark: kanagawaDarkMutedText},
	}
}

func newGruvboxColors() Colors {
	return Colors{
		Green:     lipgloss.AdaptiveColor{Light: gruvboxLightGreen, Dark: gruvboxDarkGreen},
		Yellow:    lipgloss.AdaptiveColor{Light: gruvboxLightYellow, Dark: gruvboxDarkYellow},
		Red:       lipgloss.AdaptiveColor{Light: gruvboxLightRed, Dark: gruvboxDarkRed},
		Cyan:      lipgloss.AdaptiveColor{Light: gruvboxLightCyan, Dark: gruvboxDarkCyan},
		Blue:      lipgloss.AdaptiveColor{Light: gruvboxLightBlue, Dark: gruvboxDarkBlue},
		Violet:    lipgloss.AdaptiveColor{Light: gruvboxLightViolet, Dark: gruvboxDarkViolet},
		MutedText: lipgloss.AdaptiveColor{Light: gruvboxLightMutedText, Dark: gruvboxDarkMutedText},
	}
}
