// tools_parse.go implements the svnparse_parse MCP tool, a thin wrapper
// over internal/parse.Service identical to what `svnparse parse` runs from
// the CLI, so the two surfaces never drift.

package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ojciec-dev/svnparse/internal/log"
	"github.com/ojciec-dev/svnparse/internal/parse"
	"github.com/ojciec-dev/svnparse/internal/validate"
)

func (h *handlers) parseCommit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repoURI, err := req.RequireString("repo_uri")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	repoURI, err = validate.RepoURI(repoURI)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	revision := getInt64(req, "revision", -1)
	if err := validate.Revision(revision, false); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	svc := parse.NewForRepo(h.invoker, repoURI, h.cfg.ListBatchWidth(), h.store)

	start := time.Now()
	result, runErr := svc.Parse(ctx, repoURI, revision)
	if h.cfg.AuditEnabled() {
		log.Event("mcp:svnparse_parse", "parse").
			Repo(repoURI).
			Revision(revision).
			Detail("effects", result.Effects).
			Detail("duration_ms", time.Since(start).Milliseconds()).
			Write(runErr)
	}
	if runErr != nil {
		return mcp.NewToolResultError(runErr.Error()), nil
	}
	return jsonResult(result)
}
