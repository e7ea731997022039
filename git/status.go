package git

import (
	"strings"
)

// StatusMarker is the three-way summary of a repository's working state.
// The numeric order is the precedence order: a higher marker always wins.
type StatusMarker int

const (
	// Clean means no changed paths were found.
	Clean StatusMarker = iota
	// StagedChange means the index differs from HEAD but the working tree matches the index.
	StagedChange
	// UnstagedChange means the working tree differs from the index.
	UnstagedChange
)

// String implements fmt.Stringer
func (m StatusMarker) String() string {
	switch m {
	case Clean:
		return "clean"
	case StagedChange:
		return "staged"
	case UnstagedChange:
		return "unstaged"
	default:
		return "unknown"
	}
}

// ChangeKind is the set of changes recorded for a single path.
type ChangeKind uint16

const (
	IndexNew ChangeKind = 1 << iota
	IndexModified
	IndexDeleted
	IndexRenamed
	IndexTypeChange
	WorktreeNew
	WorktreeModified
	WorktreeDeleted
	WorktreeRenamed
	WorktreeTypeChange
	Conflicted
)

const (
	indexChanges    = IndexNew | IndexModified | IndexDeleted | IndexRenamed | IndexTypeChange
	worktreeChanges = WorktreeNew | WorktreeModified | WorktreeDeleted | WorktreeRenamed | WorktreeTypeChange | Conflicted
)

// Has reports whether every kind in other is present in k.
func (k ChangeKind) Has(other ChangeKind) bool {
	return k&other == other
}

// Rank collapses a change set to the marker it contributes. Working-tree
// changes (including untracked and conflicted paths) outrank index changes.
func (k ChangeKind) Rank() StatusMarker {
	switch {
	case k&worktreeChanges != 0:
		return UnstagedChange
	case k&indexChanges != 0:
		return StagedChange
	default:
		return Clean
	}
}

// FileStatus is one changed path and the kinds of change recorded for it.
type FileStatus struct {
	Path  string
	Kinds ChangeKind
}

// RepositoryStatus is the prompt-facing summary of a repository.
type RepositoryStatus struct {
	// Label is the branch short name, or a ShortHashLength commit prefix when detached.
	Label  string
	Marker StatusMarker
}

// Classify reduces the changed paths of a repository to a single marker by
// taking the highest rank across all paths. Since UnstagedChange is the
// highest rank, the scan stops at the first unstaged path; a staged path only
// raises the running result and the scan continues.
func Classify(files []FileStatus) StatusMarker {
	marker, _ := classify(files)
	return marker
}

// classify also returns how many entries were examined.
func classify(files []FileStatus) (StatusMarker, int) {
	result := Clean
	for i, f := range files {
		if rank := f.Kinds.Rank(); rank > result {
			result = rank
		}
		if result == UnstagedChange {
			return result, i + 1
		}
	}
	return result, len(files)
}

// headInfo is the branch header block of `git status --porcelain=v2 --branch`.
type headInfo struct {
	oid  string
	head string
}

const (
	porcelainInitial  = "(initial)"
	porcelainDetached = "(detached)"
)

// parsePorcelainV2 parses the output of `git status --porcelain=v2 --branch`.
// Paths with special characters are left quoted as git prints them.
func parsePorcelainV2(output string) (headInfo, []FileStatus) {
	var info headInfo
	var files []FileStatus

	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "# ") {
			parts := strings.Fields(line)
			if len(parts) < 3 {
				continue
			}
			switch parts[1] {
			case "branch.oid":
				info.oid = parts[2]
			case "branch.head":
				info.head = parts[2]
			}
			continue
		}

		switch line[0] {
		case '1': // 1 <XY> <sub> <mH> <mI> <mW> <hH> <hI> <path>
			fields := strings.SplitN(line, " ", 9)
			if len(fields) < 9 {
				continue
			}
			files = append(files, FileStatus{Path: fields[8], Kinds: parseXY(fields[1])})
		case '2': // 2 <XY> <sub> <mH> <mI> <mW> <hH> <hI> <X><score> <path>\t<origPath>
			fields := strings.SplitN(line, " ", 10)
			if len(fields) < 10 {
				continue
			}
			path, _, _ := strings.Cut(fields[9], "\t")
			files = append(files, FileStatus{Path: path, Kinds: parseXY(fields[1])})
		case 'u': // u <XY> <sub> <m1> <m2> <m3> <mW> <h1> <h2> <h3> <path>
			fields := strings.SplitN(line, " ", 11)
			if len(fields) < 11 {
				continue
			}
			files = append(files, FileStatus{Path: fields[10], Kinds: Conflicted})
		case '?': // ? <path>
			if len(line) > 2 {
				files = append(files, FileStatus{Path: line[2:], Kinds: WorktreeNew})
			}
		}
	}

	return info, files
}

// parseXY maps a porcelain XY pair to a change set. X describes the index
// relative to HEAD, Y the working tree relative to the index.
func parseXY(xy string) ChangeKind {
	if len(xy) < 2 {
		return 0
	}

	var kinds ChangeKind
	switch xy[0] {
	case 'A', 'C':
		kinds |= IndexNew
	case 'M':
		kinds |= IndexModified
	case 'D':
		kinds |= IndexDeleted
	case 'R':
		kinds |= IndexRenamed
	case 'T':
		kinds |= IndexTypeChange
	case 'U':
		kinds |= Conflicted
	}

	switch xy[1] {
	case 'A':
		kinds |= WorktreeNew
	case 'M':
		kinds |= WorktreeModified
	case 'D':
		kinds |= WorktreeDeleted
	case 'R':
		kinds |= WorktreeRenamed
	case 'T':
		kinds |= WorktreeTypeChange
	case 'U':
		kinds |= Conflicted
	}

	return kinds
}
