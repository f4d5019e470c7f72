// Package validate provides input validation for the svn-facing layers:
// the CLI arguments and the MCP tool inputs that eventually reach
// internal/svncli and internal/parse. Validating here, rather than only
// deep in the invoker, keeps a malformed repo URI or path from reaching a
// subprocess argv where shell-quoting could mask a mistake as something
// more exotic than a plain usage error.
package validate

import (
	"fmt"
	"net/url"
	"strings"
)

// RepoURI validates a repository root URI. SVN accepts several schemes
// (http, https, svn, svn+ssh, file); we only reject what would produce a
// malformed invocation argument, not what svn itself would reject.
func RepoURI(uri string) (string, error) {
	if uri == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidRepoURI)
	}
	if strings.ContainsRune(uri, 0) {
		return "", fmt.Errorf("%w: null byte", ErrInvalidRepoURI)
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRepoURI, err)
	}
	if parsed.Scheme == "" {
		return "", fmt.Errorf("%w: missing scheme", ErrInvalidRepoURI)
	}
	return strings.TrimSuffix(uri, "/"), nil
}

// Path validates an absolute repository path as reported by `svn log`.
func Path(p string) error {
	if p == "" {
		return fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	if !strings.HasPrefix(p, "/") {
		return fmt.Errorf("%w: %q does not start with /", ErrInvalidPath, p)
	}
	if strings.ContainsRune(p, 0) {
		return fmt.Errorf("%w: null byte", ErrInvalidPath)
	}
	return nil
}

// Revision validates a subversion revision number. Revision 0 is the
// empty initial state of a repository and is a legal value for lookups
// (a path's kind "before the beginning"), but it is never itself a
// parseable commit.
func Revision(rev int64, allowZero bool) error {
	if rev < 0 {
		return fmt.Errorf("%w: %d is negative", ErrInvalidRevision, rev)
	}
	if rev == 0 && !allowZero {
		return fmt.Errorf("%w: revision 0 has no log entry", ErrInvalidRevision)
	}
	return nil
}
