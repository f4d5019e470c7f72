package effect

import (
	"context"

	"github.com/ojciec-dev/svnparse/internal/ids"
)

// AllocateIDs implements step 7: gather the union of every path and
// targetPath in effects, upsert them through the allocator, then resolve
// every distinct targetRev against the commit dictionary. A targetRev with
// no recorded commit is left unresolved (HasTargetID stays false) rather
// than treated as an error — the spec calls this "silently dropped
// downstream".
func AllocateIDs(ctx context.Context, repoID int64, effects map[string]*Effect, allocator ids.PathAllocator, commits ids.CommitResolver) error {
	pathSet := make(map[string]struct{}, len(effects)*2)
	revSet := make(map[int64]struct{})
	for path, e := range effects {
		pathSet[path] = struct{}{}
		if e.HasTarget {
			pathSet[e.TargetPath] = struct{}{}
			revSet[e.TargetRev] = struct{}{}
		}
	}

	paths := make([]string, 0, len(pathSet))
	for p := range pathSet {
		paths = append(paths, p)
	}
	pathIDs, err := allocator.AllocatePaths(ctx, paths)
	if err != nil {
		return err
	}

	var revIDs map[int64]int64
	if len(revSet) > 0 {
		revs := make([]int64, 0, len(revSet))
		for rev := range revSet {
			revs = append(revs, rev)
		}
		revIDs, err = commits.ResolveCommits(ctx, repoID, revs)
		if err != nil {
			return err
		}
	}

	for _, e := range effects {
		e.PathID = pathIDs[e.Path]
		if !e.HasTarget {
			continue
		}
		e.TargetPathID = pathIDs[e.TargetPath]
		if commitID, ok := revIDs[e.TargetRev]; ok {
			e.TargetCommitID = commitID
			e.HasTargetID = true
		}
	}
	return nil
}
