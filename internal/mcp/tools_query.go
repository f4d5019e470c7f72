// tools_query.go implements the svnparse_query MCP tool, reading back the
// two persistence emissions (path-change log, filesystem delta) C7 wrote
// for an already-parsed revision.

package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ojciec-dev/svnparse/internal/validate"
)

// queryResult is the structured payload returned to the caller, combining
// both views C7 persists for a revision.
type queryResult struct {
	RepoURI      string     `json:"repo_uri"`
	Revision     int64      `json:"revision"`
	PathChanges  []pathRow  `json:"path_changes"`
	FilesystemAt []deltaRow `json:"filesystem_delta"`
}

type pathRow struct {
	Path           string `json:"path"`
	TargetPath     string `json:"target_path,omitempty"`
	TargetRevision int64  `json:"target_revision,omitempty"`
	ChangeKind     string `json:"change_kind"`
	FileKind       string `json:"file_kind"`
	Direct         bool   `json:"direct"`
}

type deltaRow struct {
	ParentPath string `json:"parent_path"`
	Path       string `json:"path"`
	Existed    bool   `json:"existed"`
	FileKind   string `json:"file_kind"`
}

func (h *handlers) queryCommit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	changes, err := h.store.PathChangesForCommit(ctx, repoURI, revision)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	delta, err := h.store.FilesystemDeltaForRevision(ctx, repoURI, revision)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := queryResult{RepoURI: repoURI, Revision: revision}
	for _, c := range changes {
		row := pathRow{Path: c.Path, ChangeKind: c.ChangeKind, FileKind: c.FileKind, Direct: c.Direct}
		if c.HasTargetPath {
			row.TargetPath = c.TargetPath
		}
		if c.HasTargetRev {
			row.TargetRevision = c.TargetRevision
		}
		out.PathChanges = append(out.PathChanges, row)
	}
	for _, d := range delta {
		out.FilesystemAt = append(out.FilesystemAt, deltaRow{
			ParentPath: d.ParentPath, Path: d.Path, Existed: d.Existed, FileKind: d.FileKind,
		})
	}
	return jsonResult(out)
}
