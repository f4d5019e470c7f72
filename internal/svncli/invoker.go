// Package svncli drives the `svn` command-line client. It knows nothing
// about XML shapes or the effect-resolution algorithm — it builds argument
// lists, runs the subprocess, and hands back raw stdout for internal/svnxml
// to decode.
package svncli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/ojciec-dev/svnparse/internal/svnerr"
)

// Fetcher lists the Invoker methods that internal/kind, internal/parse and
// internal/mcp depend on. Separated so tests can substitute a fake that
// returns canned XML instead of shelling out to a real svn binary.
type Fetcher interface {
	FetchLog(ctx context.Context, uri string, rev int64) ([]byte, error)
	FetchList(ctx context.Context, uris []string) ([]byte, error)
	FetchRecursiveList(ctx context.Context, uri string, rev int64) ([]byte, error)
}

// Invoker executes `svn --non-interactive --xml ...` subprocesses.
type Invoker struct {
	// SVNPath is the svn executable, looked up on PATH if not absolute.
	SVNPath string
	// Timeout bounds a single subprocess invocation. Zero means no timeout.
	Timeout time.Duration
}

var _ Fetcher = (*Invoker)(nil)

// New returns an Invoker using the given svn binary path and timeout.
func New(svnPath string, timeout time.Duration) *Invoker {
	if svnPath == "" {
		svnPath = "svn"
	}
	return &Invoker{SVNPath: svnPath, Timeout: timeout}
}

// FetchLog runs `svn log --verbose --xml --limit 1 <uri>@<rev>` and returns
// the raw XML.
func (inv *Invoker) FetchLog(ctx context.Context, uri string, rev int64) ([]byte, error) {
	target := fmt.Sprintf("%s@%d", uri, rev)
	return inv.run(ctx, "log", "--verbose", "--xml", "--limit", "1", target)
}

// FetchList runs `svn ls --xml <uri1> <uri2> ...` for an arbitrary batch of
// already-URL-encoded, revision-pinned URIs and returns the raw XML. One
// process per call; callers (internal/kind) are responsible for keeping
// each batch under the OS argv limit.
func (inv *Invoker) FetchList(ctx context.Context, uris []string) ([]byte, error) {
	args := append([]string{"ls", "--xml"}, uris...)
	return inv.run(ctx, args...)
}

// FetchRecursiveList runs `svn ls -R --xml <uri>@<rev>` and returns the raw
// XML covering the full subtree.
func (inv *Invoker) FetchRecursiveList(ctx context.Context, uri string, rev int64) ([]byte, error) {
	target := uri + "@" + strconv.FormatInt(rev, 10)
	return inv.run(ctx, "ls", "-R", "--xml", target)
}

// run executes svn with the given arguments (after prepending
// --non-interactive; each caller passes its own --xml) and returns stdout. A non-zero exit wraps svnerr.ErrExecFailure in an
// *svnerr.ExecError carrying the shell-quoted command and captured stderr.
func (inv *Invoker) run(ctx context.Context, args ...string) ([]byte, error) {
	full := append([]string{"--non-interactive"}, args...)

	runCtx := ctx
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, inv.SVNPath, full...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if runCtx.Err() != nil {
			return nil, fmt.Errorf("%w: %s", svnerr.ErrCancelled, runCtx.Err())
		}
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return nil, &svnerr.ExecError{
			Command:  shellquote.Join(append([]string{inv.SVNPath}, full...)...),
			ExitCode: exitCode,
			Stderr:   stderr.String(),
		}
	}
	return stdout.Bytes(), nil
}
