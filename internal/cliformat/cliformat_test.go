package cliformat_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ojciec-dev/svnparse/internal/cliformat"
	"github.com/ojciec-dev/svnparse/internal/store"
)

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require := assert.New(t)
	require.NoError(cliformat.Table(&buf, nil))
	require.Equal("no path changes\n", buf.String())
}

func TestTableListsPathsSortedWithTargets(t *testing.T) {
	var buf bytes.Buffer
	changes := []store.PathChange{
		{Path: "/trunk/b.txt", ChangeKind: "ADD", FileKind: "file"},
		{
			Path: "/trunk/a.txt", ChangeKind: "MOVE_HERE", FileKind: "file", Direct: true,
			TargetPath: "/trunk/old.txt", HasTargetPath: true, TargetRevision: 4, HasTargetRev: true,
		},
	}
	err := cliformat.Table(&buf, changes)
	assert.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "/trunk/a.txt")
	assert.Contains(t, out, "/trunk/old.txt@4")
	aIdx := indexOf(out, "/trunk/a.txt")
	bIdx := indexOf(out, "/trunk/b.txt")
	assert.Less(t, aIdx, bIdx, "rows should be sorted by path")
}

func TestTreeMarksDeletedPaths(t *testing.T) {
	var buf bytes.Buffer
	entries := []store.FSEntry{
		{ParentPath: "/", Path: "/trunk", Existed: true, FileKind: "DIRECTORY"},
		{ParentPath: "/trunk", Path: "/trunk/a.txt", Existed: false, FileKind: "FILE"},
	}
	err := cliformat.Tree(&buf, entries)
	assert.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "trunk")
	assert.Contains(t, out, "a.txt [deleted]")
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
