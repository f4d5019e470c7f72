// Package kind answers "what is this path at this revision" questions
// against a remote Subversion repository. It implements C4 (the
// file-kind resolver, batched `svn ls` against parent directories) and C5
// (the recursive lister, a single `svn ls -R`) from the parser design.
package kind

import "github.com/ojciec-dev/svnparse/internal/svnxml"

// FileKind classifies a path at a point in repository history.
type FileKind int

const (
	// File means the path is a regular file at the lookup point.
	File FileKind = iota
	// Directory means the path is a directory at the lookup point.
	Directory
	// Deleted is synthetic: "not present at the lookup point". It is never
	// returned by ListRecursive, only by ResolveKinds.
	Deleted
)

func (k FileKind) String() string {
	switch k {
	case File:
		return "FILE"
	case Directory:
		return "DIRECTORY"
	case Deleted:
		return "DELETED"
	default:
		return "UNKNOWN"
	}
}

func fromEntryKind(k svnxml.EntryKind) FileKind {
	if k == svnxml.EntryDir {
		return Directory
	}
	return File
}

// LookupKey identifies a point in repository history: a path as it existed
// (or didn't) at a specific revision.
type LookupKey struct {
	Path     string
	Revision int64
}
