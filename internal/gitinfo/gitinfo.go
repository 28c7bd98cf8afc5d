// Package gitinfo stamps build records with the source tree's git state.
package gitinfo

import (
	"github.com/go-git/go-git/v5"
)

// HeadCommit returns the short (12 character) HEAD commit hash of the
// repository containing dir, or "" when dir is not inside a repository or
// HEAD cannot be resolved. Absence of git is never an error here; the stamp
// is best effort.
func HeadCommit(dir string) string {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	return head.Hash().String()[:12]
}
