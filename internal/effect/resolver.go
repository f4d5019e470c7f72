package effect

import (
	"context"

	"github.com/ojciec-dev/svnparse/internal/kind"
	"github.com/ojciec-dev/svnparse/internal/svnpath"
	"github.com/ojciec-dev/svnparse/internal/svnxml"
)

// KindResolver is the C4 oracle: resolving what a path was at a point in
// history. *kind.Resolver satisfies this.
type KindResolver interface {
	ResolveKinds(ctx context.Context, lookups map[string]kind.LookupKey) (map[string]kind.FileKind, error)
}

// Lister is the C5 oracle: enumerating a subtree. *kind.Lister satisfies
// this.
type Lister interface {
	ListRecursive(ctx context.Context, key kind.LookupKey) (map[string]kind.FileKind, error)
}

// Resolver turns one decoded log entry into its effect set.
type Resolver struct {
	Kinds  KindResolver
	Lister Lister
}

// New returns a Resolver backed by the given C4/C5 oracles.
func New(kinds KindResolver, lister Lister) *Resolver {
	return &Resolver{Kinds: kinds, Lister: lister}
}

type targetInfo struct {
	path string
	rev  int64
}

// Resolve runs the full seven-step classification algorithm against one
// decoded log entry and returns the commit's effect set, keyed by path.
// Effects are returned without PathID/TargetPathID/TargetCommitID set;
// call AllocateIDs afterward to fill those in.
func (r *Resolver) Resolve(ctx context.Context, entry svnxml.LogEntry) (map[string]*Effect, error) {
	currentRev := entry.Revision

	// Step 1: index the raw paths.
	rawByPath := make(map[string]svnxml.RawPath, len(entry.Paths))
	deletesByPath := make(map[string]svnxml.RawPath)
	addsByPath := make(map[string]svnxml.RawPath)
	copySources := make(map[string][]svnxml.RawPath)
	for _, rp := range entry.Paths {
		rawByPath[rp.Path] = rp
		switch rp.Action {
		case "D":
			deletesByPath[rp.Path] = rp
		case "A":
			addsByPath[rp.Path] = rp
			if rp.CopyFromPath != "" {
				copySources[rp.CopyFromPath] = append(copySources[rp.CopyFromPath], rp)
			}
		}
	}

	// Step 2: plan kind lookups. lookups maps the "subject" identity (a raw
	// path, or a copy source referenced by an add below) to the point in
	// history to check.
	lookups := make(map[string]kind.LookupKey, len(entry.Paths))
	deletionLookup := make(map[string]kind.LookupKey)
	for _, rp := range entry.Paths {
		if rp.Action != "D" {
			lookups[rp.Path] = kind.LookupKey{Path: rp.Path, Revision: currentRev}
			continue
		}
		lk := resolveDeletionLookup(rp.Path, currentRev, addsByPath)
		lookups[rp.Path] = lk
		deletionLookup[rp.Path] = lk
	}
	for _, rp := range entry.Paths {
		if rp.Action == "A" && rp.CopyFromPath != "" {
			if _, ok := lookups[rp.CopyFromPath]; !ok {
				lookups[rp.CopyFromPath] = kind.LookupKey{Path: rp.CopyFromPath, Revision: rp.CopyFromRev}
			}
		}
	}

	kinds, err := r.Kinds.ResolveKinds(ctx, lookups)
	if err != nil {
		return nil, err
	}

	// Step 3: classify each raw path, synthesizing partner/descendant
	// effects along the way.
	resolvedKinds := make(map[string]ChangeKind, len(entry.Paths))
	// supplemental carries targetPath/targetRev for raw paths whose effect
	// is built in step 5 rather than synthesized directly in step 3: a
	// copy/move's own add (provenance = its copyfrom) and a directory
	// copy's in-place modified descendant (provenance stapled on after the
	// fact, per the two-phase "supplemental promotion" pass).
	supplemental := make(map[string]targetInfo)
	synthesized := make(map[string]*Effect)

	for _, rp := range entry.Paths {
		if _, already := resolvedKinds[rp.Path]; already {
			continue
		}

		switch rp.Action {
		case "D":
			if srcs, ok := copySources[rp.Path]; ok {
				if len(srcs) > 1 {
					resolvedKinds[rp.Path] = Multicopy
				} else {
					resolvedKinds[rp.Path] = MoveAway
				}
				continue
			}
			resolvedKinds[rp.Path] = Delete
			if kinds[rp.Path] != kind.Directory {
				continue
			}
			descendants, err := r.Lister.ListRecursive(ctx, deletionLookup[rp.Path])
			if err != nil {
				return nil, err
			}
			for rel, k := range descendants {
				toPath := svnpath.Join(rp.Path, rel)
				if _, exists := rawByPath[toPath]; exists {
					continue
				}
				synthesized[toPath] = &Effect{Path: toPath, Direct: true, ChangeKind: Delete, FileKind: k}
			}

		case "A":
			if rp.CopyFromPath == "" {
				resolvedKinds[rp.Path] = Add
				continue
			}
			src, srcRev := rp.CopyFromPath, rp.CopyFromRev
			var localKind, partnerKind ChangeKind
			_, isDelete := deletesByPath[src]
			if isDelete && len(copySources[src]) <= 1 {
				localKind, partnerKind = MoveHere, MoveAway
			} else {
				localKind, partnerKind = CopyHere, CopyAway
			}
			resolvedKinds[rp.Path] = localKind
			supplemental[rp.Path] = targetInfo{path: src, rev: srcRev}

			if kinds[src] != kind.Directory {
				// File source.
				if _, exists := rawByPath[src]; !exists {
					synthesized[src] = &Effect{Path: src, Direct: false, ChangeKind: partnerKind, FileKind: kinds[src]}
					resolvedKinds[src] = partnerKind
				}
				continue
			}

			// Directory source: the "ultradisaster" case.
			descendants, err := r.Lister.ListRecursive(ctx, kind.LookupKey{Path: src, Revision: srcRev})
			if err != nil {
				return nil, err
			}
			for rel, k := range descendants {
				toPath := svnpath.Join(rp.Path, rel)
				fromPath := svnpath.Join(src, rel)

				if _, exists := rawByPath[toPath]; !exists {
					synthesized[toPath] = &Effect{
						Path: toPath, Direct: true, ChangeKind: localKind, FileKind: k,
						TargetPath: fromPath, TargetRev: srcRev, HasTarget: true,
					}
				} else {
					supplemental[toPath] = targetInfo{path: fromPath, rev: srcRev}
					if raw := rawByPath[toPath]; raw.Action == "M" || raw.Action == "R" {
						resolvedKinds[toPath] = localKind
					}
				}

				if partnerKind != CopyAway {
					continue // a directory move's partner leaves are covered by the MOVE_AWAY + DELETE expansion
				}
				if _, exists := rawByPath[fromPath]; !exists {
					if _, already := synthesized[fromPath]; !already {
						synthesized[fromPath] = &Effect{Path: fromPath, Direct: false, ChangeKind: CopyAway, FileKind: k}
					}
				}
			}

		case "M", "R":
			if _, ok := copySources[rp.Path]; ok {
				resolvedKinds[rp.Path] = CopyAway
			} else {
				resolvedKinds[rp.Path] = Change
			}
		}
	}

	// Step 5 (step 4's supplemental merge happens inline here): emit direct
	// effects, preserving anything already synthesized in step 3.
	effects := make(map[string]*Effect, len(entry.Paths)+len(synthesized))
	for path, e := range synthesized {
		effects[path] = e
	}
	for _, rp := range entry.Paths {
		if _, exists := effects[rp.Path]; exists {
			continue
		}
		e := &Effect{
			Path:       rp.Path,
			Direct:     true,
			ChangeKind: resolvedKinds[rp.Path],
			FileKind:   kinds[rp.Path],
		}
		if supp, ok := supplemental[rp.Path]; ok {
			e.TargetPath, e.TargetRev, e.HasTarget = supp.path, supp.rev, true
		}
		effects[rp.Path] = e
	}

	// Step 6: parent closure. Ancestors returns the full chain to "/", so a
	// single pass over the effects present before closure covers every
	// newly-added ancestor's own ancestors too.
	present := make([]string, 0, len(effects))
	for p := range effects {
		present = append(present, p)
	}
	for _, p := range present {
		for _, anc := range svnpath.Ancestors(p, false) {
			if _, exists := effects[anc]; exists {
				continue
			}
			effects[anc] = &Effect{Path: anc, Direct: false, ChangeKind: Child, FileKind: kind.Directory}
		}
	}

	return effects, nil
}

// resolveDeletionLookup implements step 2's ancestor scan: a deleted path
// no longer exists at the commit's own revision, so its kind must be read
// from wherever it actually lived just before the delete. If some ancestor
// was added in this same commit by a copy, the path's true prior location
// hangs off that copy's source; otherwise the path's own history at
// currentRev-1 is consulted directly.
func resolveDeletionLookup(path string, currentRev int64, addsByPath map[string]svnxml.RawPath) kind.LookupKey {
	for _, anc := range svnpath.Ancestors(path, true) {
		add, ok := addsByPath[anc]
		if !ok || add.CopyFromPath == "" {
			continue
		}
		suffix := path[len(anc):]
		if anc == "/" {
			suffix = path
		}
		return kind.LookupKey{Path: add.CopyFromPath + suffix, Revision: add.CopyFromRev}
	}
	return kind.LookupKey{Path: path, Revision: currentRev - 1}
}
