package kind_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojciec-dev/svnparse/internal/kind"
)

func recursiveListXML(pairs ...string) []byte {
	out := `<?xml version="1.0"?><lists><list path="/trunk/removed">`
	for _, p := range pairs {
		name, k := p, "file"
		for i := range p {
			if p[i] == ':' {
				name, k = p[:i], p[i+1:]
				break
			}
		}
		out += `<entry kind="` + k + `"><name>` + name + `</name></entry>`
	}
	out += `</list></lists>`
	return []byte(out)
}

func TestListRecursiveReturnsSubtreeKinds(t *testing.T) {
	fetcher := &fakeFetcher{
		recOut: recursiveListXML("a.txt:file", "sub:dir", "sub/b.txt:file"),
	}
	l := kind.NewLister(fetcher, "https://svn.example.com/repo")

	kinds, err := l.ListRecursive(context.Background(), kind.LookupKey{Path: "/trunk/removed", Revision: 7})
	require.NoError(t, err)
	assert.Equal(t, "https://svn.example.com/repo/trunk/removed", fetcher.recURI)
	assert.Equal(t, int64(7), fetcher.recRev)
	assert.Equal(t, kind.File, kinds["a.txt"])
	assert.Equal(t, kind.Directory, kinds["sub"])
	assert.Equal(t, kind.File, kinds["sub/b.txt"])
}

func TestListRecursiveEmptySubtree(t *testing.T) {
	fetcher := &fakeFetcher{
		recOut: recursiveListXML(),
	}
	l := kind.NewLister(fetcher, "https://svn.example.com/repo")

	kinds, err := l.ListRecursive(context.Background(), kind.LookupKey{Path: "/trunk/empty", Revision: 2})
	require.NoError(t, err)
	assert.Empty(t, kinds)
}
