// read.go implements read-back queries over the path-change log and
// filesystem delta, used by the CLI's `parse --output table` diagnostic
// printer and the MCP query tool. These are plain joins against the
// dictionary tables; there is no caching layer, matching the parser's
// batch-then-query usage pattern rather than a hot read path.

package store

import (
	"context"
	"fmt"
)

// PathChange is one row of the path-change log, denormalized for display.
type PathChange struct {
	Path           string
	TargetPath     string
	HasTargetPath  bool
	TargetRevision int64
	HasTargetRev   bool
	ChangeKind     string
	FileKind       string
	Direct         bool
	Revision       int64
}

// PathChangesForCommit returns every path-change row for repoURI at
// revision, in no particular order (callers that need a stable order sort
// by Path themselves).
func (s *Store) PathChangesForCommit(ctx context.Context, repoURI string, revision int64) ([]PathChange, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.path, tp.path, tc.revision, pc.change_kind, pc.file_kind, pc.direct, pc.revision
		FROM path_changes pc
		JOIN repos r ON r.id = pc.repo_id
		JOIN paths p ON p.id = pc.path_id
		LEFT JOIN paths tp ON tp.id = pc.target_path_id
		LEFT JOIN commits tc ON tc.id = pc.target_commit_id
		WHERE r.uri = ? AND pc.revision = ?`, repoURI, revision)
	if err != nil {
		return nil, fmt.Errorf("query path changes: %w", err)
	}
	defer rows.Close()

	var out []PathChange
	for rows.Next() {
		var c PathChange
		var targetPath *string
		var changeKind, fileKind string
		var targetRev *int64
		var direct bool
		if err := rows.Scan(&c.Path, &targetPath, &targetRev, &changeKind, &fileKind, &direct, &c.Revision); err != nil {
			return nil, fmt.Errorf("scan path change: %w", err)
		}
		c.ChangeKind, c.FileKind, c.Direct = changeKind, fileKind, direct
		if targetPath != nil {
			c.TargetPath, c.HasTargetPath = *targetPath, true
		}
		if targetRev != nil {
			c.TargetRevision, c.HasTargetRev = *targetRev, true
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// FSEntry is one row of the filesystem-delta view.
type FSEntry struct {
	ParentPath string
	Path       string
	Existed    bool
	FileKind   string
}

// FilesystemDeltaForRevision returns every filesystem-delta row for repoURI
// at revision.
func (s *Store) FilesystemDeltaForRevision(ctx context.Context, repoURI string, revision int64) ([]FSEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT parent.path, p.path, fd.existed, fd.file_kind
		FROM fs_deltas fd
		JOIN repos r ON r.id = fd.repo_id
		JOIN paths p ON p.id = fd.path_id
		JOIN paths parent ON parent.id = fd.parent_path_id
		WHERE r.uri = ? AND fd.revision = ?`, repoURI, revision)
	if err != nil {
		return nil, fmt.Errorf("query filesystem delta: %w", err)
	}
	defer rows.Close()

	var out []FSEntry
	for rows.Next() {
		var e FSEntry
		var existed bool
		if err := rows.Scan(&e.ParentPath, &e.Path, &existed, &e.FileKind); err != nil {
			return nil, fmt.Errorf("scan fs delta entry: %w", err)
		}
		e.Existed = existed
		out = append(out, e)
	}
	return out, rows.Err()
}
