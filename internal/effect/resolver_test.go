package effect_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojciec-dev/svnparse/internal/effect"
	"github.com/ojciec-dev/svnparse/internal/kind"
	"github.com/ojciec-dev/svnparse/internal/svnpath"
	"github.com/ojciec-dev/svnparse/internal/svnxml"
)

// fakeKinds answers ResolveKinds from a map keyed by the LookupKey's Path,
// ignoring revision — enough for these fixtures, which never need two
// different answers for the same path string.
type fakeKinds struct {
	answers  map[string]kind.FileKind
	received map[string]kind.LookupKey
}

func (f *fakeKinds) ResolveKinds(ctx context.Context, lookups map[string]kind.LookupKey) (map[string]kind.FileKind, error) {
	f.received = lookups
	out := make(map[string]kind.FileKind, len(lookups))
	for subject, lk := range lookups {
		if k, ok := f.answers[lk.Path]; ok {
			out[subject] = k
		} else {
			out[subject] = kind.Deleted
		}
	}
	return out, nil
}

// fakeLister answers ListRecursive from a map keyed by "path@rev".
type fakeLister struct {
	subtrees map[string]map[string]kind.FileKind
}

func (f *fakeLister) ListRecursive(ctx context.Context, key kind.LookupKey) (map[string]kind.FileKind, error) {
	return f.subtrees[fmt.Sprintf("%s@%d", key.Path, key.Revision)], nil
}

func TestResolveSimpleAdd(t *testing.T) {
	// S1
	kinds := &fakeKinds{answers: map[string]kind.FileKind{"/foo/bar.txt": kind.File}}
	r := effect.New(kinds, &fakeLister{})

	entry := svnxml.LogEntry{Revision: 5, Paths: []svnxml.RawPath{{Path: "/foo/bar.txt", Action: "A"}}}
	effects, err := r.Resolve(context.Background(), entry)
	require.NoError(t, err)

	require.Contains(t, effects, "/foo/bar.txt")
	e := effects["/foo/bar.txt"]
	assert.Equal(t, effect.Add, e.ChangeKind)
	assert.Equal(t, kind.File, e.FileKind)
	assert.True(t, e.Direct)
	assert.False(t, e.HasTarget)

	for _, anc := range []string{"/foo", "/"} {
		require.Contains(t, effects, anc)
		assert.Equal(t, effect.Child, effects[anc].ChangeKind)
		assert.False(t, effects[anc].Direct)
		assert.Equal(t, kind.Directory, effects[anc].FileKind)
	}
	assert.Len(t, effects, 3)
}

func TestResolveDirectoryDeleteExpandsDescendants(t *testing.T) {
	// S2
	kinds := &fakeKinds{answers: map[string]kind.FileKind{"/lib": kind.Directory}}
	lister := &fakeLister{subtrees: map[string]map[string]kind.FileKind{
		"/lib@6": {"a.c": kind.File, "sub": kind.Directory, "sub/b.c": kind.File},
	}}
	r := effect.New(kinds, lister)

	entry := svnxml.LogEntry{Revision: 7, Paths: []svnxml.RawPath{{Path: "/lib", Action: "D"}}}
	effects, err := r.Resolve(context.Background(), entry)
	require.NoError(t, err)

	want := map[string]kind.FileKind{
		"/lib":         kind.Directory,
		"/lib/a.c":     kind.File,
		"/lib/sub":     kind.Directory,
		"/lib/sub/b.c": kind.File,
	}
	for path, fk := range want {
		require.Contains(t, effects, path)
		assert.Equal(t, effect.Delete, effects[path].ChangeKind, path)
		assert.Equal(t, fk, effects[path].FileKind, path)
		assert.True(t, effects[path].Direct, path)
	}
	require.Contains(t, effects, "/")
	assert.Equal(t, effect.Child, effects["/"].ChangeKind)
	assert.Len(t, effects, 5)
}

func TestResolveFileMove(t *testing.T) {
	// S3
	kinds := &fakeKinds{answers: map[string]kind.FileKind{"/b.txt": kind.File, "/a.txt": kind.File}}
	r := effect.New(kinds, &fakeLister{})

	entry := svnxml.LogEntry{Revision: 42, Paths: []svnxml.RawPath{
		{Path: "/b.txt", Action: "A", CopyFromPath: "/a.txt", CopyFromRev: 41},
		{Path: "/a.txt", Action: "D"},
	}}
	effects, err := r.Resolve(context.Background(), entry)
	require.NoError(t, err)

	b := effects["/b.txt"]
	assert.Equal(t, effect.MoveHere, b.ChangeKind)
	assert.True(t, b.Direct)
	require.True(t, b.HasTarget)
	assert.Equal(t, "/a.txt", b.TargetPath)
	assert.Equal(t, int64(41), b.TargetRev)

	a := effects["/a.txt"]
	assert.Equal(t, effect.MoveAway, a.ChangeKind)
	assert.True(t, a.Direct)

	assert.Equal(t, kind.LookupKey{Path: "/a.txt", Revision: 41}, kinds.received["/a.txt"])
}

func TestResolveMulticopy(t *testing.T) {
	// S4
	kinds := &fakeKinds{answers: map[string]kind.FileKind{"/x": kind.File, "/y": kind.File, "/src": kind.File}}
	r := effect.New(kinds, &fakeLister{})

	entry := svnxml.LogEntry{Revision: 10, Paths: []svnxml.RawPath{
		{Path: "/x", Action: "A", CopyFromPath: "/src", CopyFromRev: 10},
		{Path: "/y", Action: "A", CopyFromPath: "/src", CopyFromRev: 10},
		{Path: "/src", Action: "D"},
	}}
	effects, err := r.Resolve(context.Background(), entry)
	require.NoError(t, err)

	assert.Equal(t, effect.Multicopy, effects["/src"].ChangeKind)
	assert.Equal(t, effect.CopyHere, effects["/x"].ChangeKind)
	assert.Equal(t, effect.CopyHere, effects["/y"].ChangeKind)
}

func TestResolveDirectoryCopyWithInlineModify(t *testing.T) {
	// S5 — the "ultradisaster" case.
	kinds := &fakeKinds{answers: map[string]kind.FileKind{"/dst": kind.Directory, "/src": kind.Directory}}
	lister := &fakeLister{subtrees: map[string]map[string]kind.FileKind{
		"/src@20": {"inner.txt": kind.File, "other.txt": kind.File},
	}}
	r := effect.New(kinds, lister)

	entry := svnxml.LogEntry{Revision: 21, Paths: []svnxml.RawPath{
		{Path: "/dst", Action: "A", CopyFromPath: "/src", CopyFromRev: 20},
		{Path: "/dst/inner.txt", Action: "M"},
	}}
	effects, err := r.Resolve(context.Background(), entry)
	require.NoError(t, err)

	other := effects["/dst/other.txt"]
	require.NotNil(t, other)
	assert.Equal(t, effect.CopyHere, other.ChangeKind)
	assert.True(t, other.Direct)
	require.True(t, other.HasTarget)
	assert.Equal(t, "/src/other.txt", other.TargetPath)
	assert.Equal(t, int64(20), other.TargetRev)

	inner := effects["/dst/inner.txt"]
	require.NotNil(t, inner)
	assert.Equal(t, effect.CopyHere, inner.ChangeKind, "M promoted to COPY_HERE")
	assert.True(t, inner.Direct)
	require.True(t, inner.HasTarget)
	assert.Equal(t, "/src/inner.txt", inner.TargetPath)
	assert.Equal(t, int64(20), inner.TargetRev)

	srcInner := effects["/src/inner.txt"]
	require.NotNil(t, srcInner)
	assert.Equal(t, effect.CopyAway, srcInner.ChangeKind)
	assert.False(t, srcInner.Direct)

	srcOther := effects["/src/other.txt"]
	require.NotNil(t, srcOther)
	assert.Equal(t, effect.CopyAway, srcOther.ChangeKind)
	assert.False(t, srcOther.Direct)

	dst := effects["/dst"]
	require.NotNil(t, dst)
	assert.Equal(t, effect.CopyHere, dst.ChangeKind)
	require.True(t, dst.HasTarget)
	assert.Equal(t, "/src", dst.TargetPath)
	assert.Equal(t, int64(20), dst.TargetRev)
}

func TestResolveDeleteInsideCopiedSubtreeUsesAncestorScan(t *testing.T) {
	// S6
	kinds := &fakeKinds{answers: map[string]kind.FileKind{"/dst": kind.Directory, "/src/inner.txt": kind.File}}
	r := effect.New(kinds, &fakeLister{})

	entry := svnxml.LogEntry{Revision: 21, Paths: []svnxml.RawPath{
		{Path: "/dst", Action: "A", CopyFromPath: "/src", CopyFromRev: 20},
		{Path: "/dst/inner.txt", Action: "D"},
	}}
	_, err := r.Resolve(context.Background(), entry)
	require.NoError(t, err)

	assert.Equal(t, kind.LookupKey{Path: "/src/inner.txt", Revision: 20}, kinds.received["/dst/inner.txt"])
}

func TestResolveInvariantsHoldAcrossScenarios(t *testing.T) {
	kinds := &fakeKinds{answers: map[string]kind.FileKind{"/a/b/c.txt": kind.File}}
	r := effect.New(kinds, &fakeLister{})

	entry := svnxml.LogEntry{Revision: 3, Paths: []svnxml.RawPath{{Path: "/a/b/c.txt", Action: "A"}}}
	effects, err := r.Resolve(context.Background(), entry)
	require.NoError(t, err)

	for path, e := range effects {
		// Invariant 1: every effect's parent has an effect, except "/".
		if path != "/" {
			assert.Contains(t, effects, svnpath.Parent(path), path)
		}
		// Invariant 2.
		if e.ChangeKind == effect.Child {
			assert.False(t, e.Direct, path)
			assert.Equal(t, kind.Directory, e.FileKind, path)
		}
	}
	require.Contains(t, effects, "/a/b")
	require.Contains(t, effects, "/a")
	require.Contains(t, effects, "/")
}
