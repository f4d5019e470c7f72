package kind

import (
	"context"
	"fmt"
	"strconv"

	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"github.com/ojciec-dev/svnparse/internal/svncli"
	"github.com/ojciec-dev/svnparse/internal/svnerr"
	"github.com/ojciec-dev/svnparse/internal/svnpath"
	"github.com/ojciec-dev/svnparse/internal/svnxml"
)

// DefaultBatchWidth is the number of parent URIs bundled into a single
// `svn ls` invocation. SVN provides no per-request echo, so a wider batch
// is pure win until it risks the OS argv limit; 64 is the bound this parser
// was designed against (see spec §5, "Resources").
const DefaultBatchWidth = 64

// Resolver answers FileKind questions by issuing batched `svn ls` queries
// against parent directories (C4). Full recursive listings (C5) are done by
// Lister.
type Resolver struct {
	Invoker    svncli.Fetcher
	RepoURI    string // repository root URI, e.g. "https://svn.example.com/repo"
	BatchWidth int    // defaults to DefaultBatchWidth when <= 0
}

// New returns a Resolver for the given repository root and SVN invoker.
func New(invoker svncli.Fetcher, repoURI string, batchWidth int) *Resolver {
	if batchWidth <= 0 {
		batchWidth = DefaultBatchWidth
	}
	return &Resolver{Invoker: invoker, RepoURI: repoURI, BatchWidth: batchWidth}
}

// parentKey identifies one `svn ls` query: a parent directory at a
// revision. Multiple requested paths sharing a parentKey are answered by a
// single listing.
type parentKey struct {
	parent   string
	revision int64
}

// request pairs the caller-facing lookup key (the map key ResolveKinds was
// called with) with the actual path being asked about (lk.Path), which
// differ for deletions redirected by the ancestor-copy rule.
type request struct {
	key        string // the map key results are written back under
	lookupPath string // the path to match against the listing, relative to g.key.parent
}

// group collects the requests waiting on one parentKey's listing.
type group struct {
	key      parentKey
	requests []request
}

// ResolveKinds classifies every requested path. lookups maps the path being
// asked about to the LookupKey (the point in history to check) for it —
// the two differ for deletions, whose lookup point is resolved by the
// caller via the nearest-ancestor scan (see internal/effect).
//
// Positional binding without echo: SVN's `svn ls --xml` response carries no
// indication of which request URI produced which <list> element, and two
// requests for the same parent path at different revisions decode to
// indistinguishable <list path="..."> attributes. Binding is therefore done
// purely by document order within a batch, using an ordered queue (never a
// map keyed by URI) to track which group is still waiting for its listing.
// A linkedlistqueue gives O(1) Enqueue/Dequeue directly, which is the
// "producer/consumer pair with an ordered queue" the design calls for
// without needing a reverse-then-pop workaround for a plain slice.
func (r *Resolver) ResolveKinds(ctx context.Context, lookups map[string]LookupKey) (map[string]FileKind, error) {
	groups := r.buildGroups(lookups)
	kinds := make(map[string]FileKind, len(lookups))

	pending := linkedlistqueue.New()
	for _, g := range groups {
		pending.Enqueue(g)
	}

	for start := 0; start < len(groups); start += r.BatchWidth {
		end := min(start+r.BatchWidth, len(groups))
		batch := groups[start:end]

		uris := make([]string, len(batch))
		for i, g := range batch {
			uris[i] = r.RepoURI + svnpath.Encode(g.key.parent) + "@" + strconv.FormatInt(g.key.revision, 10)
		}

		raw, err := r.Invoker.FetchList(ctx, uris)
		if err != nil {
			return nil, err
		}
		listed, err := svnxml.DecodeFlatList(raw)
		if err != nil {
			return nil, err
		}
		if len(listed) != len(batch) {
			return nil, fmt.Errorf("svn ls returned %d lists for %d requested uris: %w", len(listed), len(batch), svnerr.ErrProtocol)
		}

		for i := range batch {
			pendingVal, ok := pending.Dequeue()
			if !ok {
				return nil, fmt.Errorf("kind resolver: queue underflow: %w", svnerr.ErrProtocol)
			}
			g := pendingVal.(*group)
			applyListing(g, listed[i], kinds)
		}
	}

	for path := range lookups {
		if _, ok := kinds[path]; !ok {
			kinds[path] = Deleted
		}
	}
	return kinds, nil
}

// buildGroups partitions lookups by (parent, revision), returning a stable
// slice. Iteration order over the input map is not reproducible across
// runs, but that's immaterial here: the same order is used for both
// dispatch and queueing, so the positional binding stays internally
// consistent regardless of which order is chosen.
func (r *Resolver) buildGroups(lookups map[string]LookupKey) []*group {
	index := make(map[parentKey]*group)
	var ordered []*group
	for path, lk := range lookups {
		pk := parentKey{parent: svnpath.Parent(lk.Path), revision: lk.Revision}
		g, ok := index[pk]
		if !ok {
			g = &group{key: pk}
			index[pk] = g
			ordered = append(ordered, g)
		}
		g.requests = append(g.requests, request{key: path, lookupPath: lk.Path})
	}
	return ordered
}

// applyListing records the kind of every requested path under g that
// appears in the listing. A path absent from the listing is left unset;
// ResolveKinds fills it in as Deleted once all batches have run.
func applyListing(g *group, listing svnxml.ListGroup, kinds map[string]FileKind) {
	byName := make(map[string]FileKind, len(listing.Entries))
	for _, e := range listing.Entries {
		byName[e.Name] = fromEntryKind(e.Kind)
	}
	parent := svnpath.TrimTrailingSlash(g.key.parent)
	for _, req := range g.requests {
		name := req.lookupPath[len(parent):]
		name = trimLeadingSlash(name)
		if k, ok := byName[name]; ok {
			kinds[req.key] = k
		}
	}
}

func trimLeadingSlash(s string) string {
	if len(s) > 0 && s[0] == '/' {
		return s[1:]
	}
	return s
}
