// Package parse wires the seven components together into the single
// operation the rest of the system calls: parse(repo, rev). Everything
// upstream of it (CLI, MCP tools) only needs a repository URI and a
// revision number; everything downstream (C1 through C7) is an
// implementation detail this package owns.
package parse

import (
	"context"
	"fmt"

	"github.com/ojciec-dev/svnparse/internal/effect"
	"github.com/ojciec-dev/svnparse/internal/ids"
	"github.com/ojciec-dev/svnparse/internal/kind"
	"github.com/ojciec-dev/svnparse/internal/svncli"
	"github.com/ojciec-dev/svnparse/internal/svnerr"
	"github.com/ojciec-dev/svnparse/internal/svnxml"
)

// Resolver is the C6 oracle consumer: everything parse needs from the
// effect-resolution algorithm. *effect.Resolver satisfies this.
type Resolver interface {
	Resolve(ctx context.Context, entry svnxml.LogEntry) (map[string]*effect.Effect, error)
}

// Store is everything parse needs from the persistence layer (C7) plus the
// repo/path/commit dictionaries (internal/ids's interfaces).
type Store interface {
	ids.PathAllocator
	ids.CommitResolver
	ResolveOrCreateRepo(ctx context.Context, uri string) (int64, error)
	WriteCommit(ctx context.Context, repoID, revision int64, effects map[string]*effect.Effect) error
}

// Service runs parse(repo, rev) against a configured svn invoker, effect
// resolver, and store.
type Service struct {
	Invoker  svncli.Fetcher
	Resolver Resolver
	Store    Store
}

// New returns a Service wired from the given C1 invoker, C6 resolver, and
// C7 store.
func New(invoker svncli.Fetcher, resolver Resolver, store Store) *Service {
	return &Service{Invoker: invoker, Resolver: resolver, Store: store}
}

// NewForRepo builds a Service's C4/C5/C6 oracles for one repository root
// and wires them to the given invoker and store, following the pipeline
// spec §3 lays out: parse(repo, rev) -> C1/C2 -> C6 (via C4/C5) -> C7.
func NewForRepo(invoker svncli.Fetcher, repoURI string, batchWidth int, store Store) *Service {
	kinds := kind.New(invoker, repoURI, batchWidth)
	lister := kind.NewLister(invoker, repoURI)
	resolver := effect.New(kinds, lister)
	return New(invoker, resolver, store)
}

// Result summarizes one parse(repo, rev) call for logging and CLI display.
type Result struct {
	RepoURI  string
	Revision int64
	Effects  int
	Empty    bool // true when the logentry had no <paths> block
}

// Parse fetches revision's log entry from repo, resolves its effect set,
// and persists it. Calling Parse twice for the same (repo, revision) is
// idempotent: WriteCommit replaces the prior rows wholesale rather than
// appending.
//
// A log entry with no <paths> block (rare, but present in some historical
// repositories) is a benign empty parse: the repo/commit dictionary rows
// are still recorded, but no effects are produced or persisted.
func (s *Service) Parse(ctx context.Context, repoURI string, revision int64) (Result, error) {
	result := Result{RepoURI: repoURI, Revision: revision}

	raw, err := s.Invoker.FetchLog(ctx, repoURI, revision)
	if err != nil {
		return result, fmt.Errorf("fetch log for %s@%d: %w", repoURI, revision, err)
	}

	entry, err := svnxml.DecodeLog(raw)
	if err != nil {
		return result, fmt.Errorf("decode log for %s@%d: %w", repoURI, revision, err)
	}

	repoID, err := s.Store.ResolveOrCreateRepo(ctx, repoURI)
	if err != nil {
		return result, fmt.Errorf("%w: resolve repo %s: %v", svnerr.ErrDB, repoURI, err)
	}

	if len(entry.Paths) == 0 {
		result.Empty = true
		if err := s.Store.WriteCommit(ctx, repoID, revision, map[string]*effect.Effect{}); err != nil {
			return result, fmt.Errorf("%w: record empty commit: %v", svnerr.ErrDB, err)
		}
		return result, nil
	}

	effects, err := s.Resolver.Resolve(ctx, entry)
	if err != nil {
		return result, fmt.Errorf("resolve effects for %s@%d: %w", repoURI, revision, err)
	}

	if err := effect.AllocateIDs(ctx, repoID, effects, s.Store, s.Store); err != nil {
		return result, fmt.Errorf("%w: allocate ids: %v", svnerr.ErrDB, err)
	}

	if err := s.Store.WriteCommit(ctx, repoID, revision, effects); err != nil {
		return result, fmt.Errorf("%w: write commit %s@%d: %v", svnerr.ErrDB, repoURI, revision, err)
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("%w: %v", svnerr.ErrCancelled, ctx.Err())
	}

	result.Effects = len(effects)
	return result, nil
}
