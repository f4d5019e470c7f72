package validate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojciec-dev/svnparse/internal/validate"
)

func TestRepoURITrimsTrailingSlash(t *testing.T) {
	out, err := validate.RepoURI("https://svn.example.com/repo/")
	require.NoError(t, err)
	assert.Equal(t, "https://svn.example.com/repo", out)
}

func TestRepoURIRejectsMissingScheme(t *testing.T) {
	_, err := validate.RepoURI("svn.example.com/repo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, validate.ErrInvalidRepoURI))
}

func TestPathRequiresLeadingSlash(t *testing.T) {
	require.NoError(t, validate.Path("/trunk/foo"))
	err := validate.Path("trunk/foo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, validate.ErrInvalidPath))
}

func TestRevisionRejectsNegative(t *testing.T) {
	require.NoError(t, validate.Revision(41, false))
	require.NoError(t, validate.Revision(0, true))
	err := validate.Revision(0, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, validate.ErrInvalidRevision))
	err = validate.Revision(-1, true)
	require.Error(t, err)
}
