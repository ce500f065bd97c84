package domain

import (
	"bytes"
	"slices"
	"strings"

	credentialDomain "github.com/allisson/credentials/internal/credential/domain"
)

// NormalizePathPrefix returns prefix with a leading and a trailing slash so it only
// matches whole segments.
func NormalizePathPrefix(prefix string) string {
	prefix = credentialDomain.NormalizeName(prefix)
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}

// MatchesPath reports whether name lies under prefix, ignoring case. "/a/b" matches
// "/a/b/c" and "/a/b/c/d" but neither "/a/bc" nor "/a/b" itself.
func MatchesPath(prefix, name string) bool {
	return strings.HasPrefix(strings.ToLower(name), strings.ToLower(NormalizePathPrefix(prefix)))
}

// MatchesNameLike reports whether name contains pattern, ignoring case.
func MatchesNameLike(pattern, name string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(pattern))
}

// SortNewestFirst orders versions by creation time descending. Versions created at
// the same instant are ordered by id descending.
func SortNewestFirst(versions []*credentialDomain.CredentialVersionData) {
	slices.SortStableFunc(versions, func(a, b *credentialDomain.CredentialVersionData) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return bytes.Compare(b.ID[:], a.ID[:])
	})
}
