package kind

import (
	"context"

	"github.com/ojciec-dev/svnparse/internal/svncli"
	"github.com/ojciec-dev/svnparse/internal/svnpath"
	"github.com/ojciec-dev/svnparse/internal/svnxml"
)

// Lister runs a single `svn ls -R` per call. Cost scales with subtree size;
// callers invoke it only when a directory is deleted or copied/moved (see
// internal/effect), never for file paths.
type Lister struct {
	Invoker svncli.Fetcher
	RepoURI string
}

// NewLister returns a Lister for the given repository root and SVN invoker.
func NewLister(invoker svncli.Fetcher, repoURI string) *Lister {
	return &Lister{Invoker: invoker, RepoURI: repoURI}
}

// ListRecursive returns every descendant of key.Path at key.Revision, keyed
// by its path relative to key.Path, with its kind.
func (l *Lister) ListRecursive(ctx context.Context, key LookupKey) (map[string]FileKind, error) {
	uri := l.RepoURI + svnpath.Encode(key.Path)
	raw, err := l.Invoker.FetchRecursiveList(ctx, uri, key.Revision)
	if err != nil {
		return nil, err
	}
	entries, err := svnxml.DecodeRecursiveList(raw)
	if err != nil {
		return nil, err
	}
	out := make(map[string]FileKind, len(entries))
	for _, e := range entries {
		out[e.Name] = fromEntryKind(e.Kind)
	}
	return out, nil
}
