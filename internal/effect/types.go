// Package effect implements the resolver that turns one decoded svn log
// entry into the per-path effect set a commit produces: the core
// classification algorithm of the parser (C6).
package effect

import "github.com/ojciec-dev/svnparse/internal/kind"

// ChangeKind is the resolver's output vocabulary for what happened to a
// path in a commit.
type ChangeKind int

const (
	Add ChangeKind = iota
	Delete
	Change
	MoveAway
	MoveHere
	CopyAway
	CopyHere
	Multicopy
	Child
)

func (k ChangeKind) String() string {
	switch k {
	case Add:
		return "ADD"
	case Delete:
		return "DELETE"
	case Change:
		return "CHANGE"
	case MoveAway:
		return "MOVE_AWAY"
	case MoveHere:
		return "MOVE_HERE"
	case CopyAway:
		return "COPY_AWAY"
	case CopyHere:
		return "COPY_HERE"
	case Multicopy:
		return "MULTICOPY"
	case Child:
		return "CHILD"
	default:
		return "UNKNOWN"
	}
}

// Effect is the unit the resolver emits per path, eventually persisted by
// internal/store.
type Effect struct {
	Path string

	// TargetPath/TargetRev are the provenance pair: set together for
	// *_HERE effects, and for any log-reported path inside a copied
	// directory's destination (the "ultradisaster" directory-copy case,
	// where an M/R there is itself promoted to *_HERE). MULTICOPY effects
	// carry no target.
	TargetPath string
	TargetRev  int64
	HasTarget  bool

	// Direct is true for paths reported by svn log and for the leaves
	// synthesized under a deleted or copied directory; it is false for
	// synthesized partner *_AWAY effects and for parent-closure CHILD effects.
	Direct bool

	ChangeKind ChangeKind
	FileKind   kind.FileKind

	// PathID, TargetPathID, and TargetCommitID are populated by
	// AllocateIDs (step 7); zero until then.
	PathID         int64
	TargetPathID   int64
	TargetCommitID int64
	HasTargetID    bool
}
