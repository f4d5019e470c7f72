package svnpath_test

import (
	"testing"

	"github.com/ojciec-dev/svnparse/internal/svnpath"
	"github.com/stretchr/testify/assert"
)

func TestParent(t *testing.T) {
	cases := map[string]string{
		"/":          "/",
		"/a":         "/",
		"/a/":        "/",
		"/a/b":       "/a",
		"/a/b/":      "/a",
		"/a/b/c.txt": "/a/b",
	}
	for in, want := range cases {
		assert.Equal(t, want, svnpath.Parent(in), "Parent(%q)", in)
	}
}

func TestAncestorsIncludeSelf(t *testing.T) {
	assert.Equal(t, []string{"/a/b/c", "/a/b", "/a", "/"}, svnpath.Ancestors("/a/b/c", true))
}

func TestAncestorsExcludeSelf(t *testing.T) {
	assert.Equal(t, []string{"/a/b", "/a", "/"}, svnpath.Ancestors("/a/b/c", false))
}

func TestAncestorsRoot(t *testing.T) {
	assert.Equal(t, []string{"/"}, svnpath.Ancestors("/", true))
	assert.Empty(t, svnpath.Ancestors("/", false))
}

func TestEncodePreservesSlash(t *testing.T) {
	assert.Equal(t, "/a%20b/c%23d", svnpath.Encode("/a b/c#d"))
}

func TestJoinTrimsTrailingSlash(t *testing.T) {
	assert.Equal(t, "/a/b", svnpath.Join("/a/", "b"))
	assert.Equal(t, "/a/b", svnpath.Join("/a", "b"))
}
