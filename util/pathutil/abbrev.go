package pathutil

import (
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/grovetools/familiar/errors"
)

// HomeMarker replaces the home directory prefix in displayed paths.
const HomeMarker = "~"

const separator = "/"

// DisplayPath is the compact form of a working directory.
// Prefix never contains the final segment.
type DisplayPath struct {
	Prefix []string
	Base   string
}

// PrefixString joins the abbreviated directory segments. A non-empty prefix
// carries a trailing separator; an empty prefix yields "".
func (p DisplayPath) PrefixString() string {
	if len(p.Prefix) == 0 {
		return ""
	}
	return strings.Join(p.Prefix, separator) + separator
}

// String returns the full display form, prefix followed by basename.
func (p DisplayPath) String() string {
	return p.PrefixString() + p.Base
}

// Abbreviate turns an absolute working directory into a DisplayPath: the home
// directory becomes "~", every directory segment except the last is shortened
// to its leading character (two for hidden and "~" segments), and the last
// segment is kept whole as the basename.
func Abbreviate(cwd, home string) (DisplayPath, error) {
	if cwd == "" {
		return DisplayPath{}, errors.New(errors.ErrCodeEnvironment, "working directory is empty")
	}
	if home == "" {
		return DisplayPath{}, errors.EnvironmentMissing("HOME")
	}

	path := SubstituteHome(filepath.ToSlash(filepath.Clean(cwd)), filepath.ToSlash(filepath.Clean(home)))
	if path == separator {
		return DisplayPath{Base: separator}, nil
	}

	segments := strings.Split(path, separator)
	last := len(segments) - 1

	return DisplayPath{
		Prefix: lo.Map(segments[:last], func(segment string, _ int) string {
			return AbbreviateSegment(segment)
		}),
		Base: segments[last],
	}, nil
}

// SubstituteHome replaces a leading home directory with "~". Only an exact
// match or a match followed by a separator counts; the replacement happens at
// most once.
func SubstituteHome(path, home string) string {
	if home == "" || home == separator {
		return path
	}
	if path == home {
		return HomeMarker
	}
	if strings.HasPrefix(path, home+separator) {
		return HomeMarker + path[len(home):]
	}
	return path
}

// AbbreviateSegment shortens a single directory segment. Segments starting
// with "~" or "." keep one extra character so hidden directories stay
// recognisable. The result is always a non-empty prefix of a non-empty input.
func AbbreviateSegment(segment string) string {
	keep := 1
	if strings.HasPrefix(segment, HomeMarker) || strings.HasPrefix(segment, ".") {
		keep = 2
	}

	runes := []rune(segment)
	if len(runes) <= keep {
		return segment
	}
	return string(runes[:keep])
}
