package git

import (
	"path/filepath"
)

// ShortHashLength is the number of commit id characters shown for a detached HEAD.
const ShortHashLength = 6

// ShortHash truncates a commit id to ShortHashLength characters.
func ShortHash(commit string) string {
	if len(commit) <= ShortHashLength {
		return commit
	}
	return commit[:ShortHashLength]
}

// Label returns the prompt label for a head: the branch name, or the
// shortened commit id when detached.
func Label(head Head) string {
	if head.Detached || head.Branch == "" {
		return ShortHash(head.Commit)
	}
	return head.Branch
}

// Ancestors returns dir followed by each of its parents up to the
// filesystem root, nearest first.
func Ancestors(dir string) []string {
	dir = filepath.Clean(dir)
	dirs := []string{dir}
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			return dirs
		}
		dirs = append(dirs, parent)
		dir = parent
	}
}
