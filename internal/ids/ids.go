// Package ids defines the two external dictionary services the effect
// resolver consults in its final step: a path-id allocator (upsert-style,
// so a previously unseen path gets a fresh id and a known one returns its
// existing id) and a commit-id resolver (lookup-only — a revision with no
// recorded commit id is simply absent from the result, never fabricated).
//
// internal/store provides the default implementation backed by SQLite
// dictionary tables; internal/effect depends only on these interfaces so
// its tests can substitute in-memory fakes.
package ids

import "context"

// PathAllocator assigns stable integer ids to repository paths, creating an
// id for any path not already known.
type PathAllocator interface {
	// AllocatePaths returns the id of every path in paths, upserting any
	// path seen for the first time. The returned map has exactly one entry
	// per distinct input path.
	AllocatePaths(ctx context.Context, paths []string) (map[string]int64, error)
}

// CommitResolver looks up the internal id already recorded for a revision.
type CommitResolver interface {
	// ResolveCommits returns the id of every revision in revisions that has
	// already been recorded. A revision with no recorded commit is simply
	// absent from the result; callers must not treat that as an error.
	ResolveCommits(ctx context.Context, repoID int64, revisions []int64) (map[int64]int64, error)
}
