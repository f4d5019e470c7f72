// write.go implements the two persistence emissions a completed parse
// produces: the path-change log (one row per effect, full fidelity) and the
// filesystem delta (a pruned view usable to reconstruct directory state at
// a revision). Both are replaced wholesale for the commit on every write,
// inside a single transaction, so a crash between the delete and the last
// insert batch leaves either the old rows or the fully-new rows, never a
// mix.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ojciec-dev/svnparse/internal/effect"
	"github.com/ojciec-dev/svnparse/internal/svnpath"
)

// WriteCommit persists the effect set for one (repo, revision) parse,
// recording the commit dictionary entry in the same transaction so a
// concurrent reader never observes effects for a commit id that doesn't
// exist yet.
func (s *Store) WriteCommit(ctx context.Context, repoID, revision int64, effects map[string]*effect.Effect) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		commitID, err := s.RecordCommit(ctx, tx, repoID, revision)
		if err != nil {
			return err
		}
		if err := replacePathChanges(ctx, tx, repoID, commitID, revision, effects); err != nil {
			return fmt.Errorf("write path changes: %w", err)
		}
		if err := replaceFilesystemDelta(ctx, tx, repoID, revision, effects); err != nil {
			return fmt.Errorf("write filesystem delta: %w", err)
		}
		return nil
	})
}

type pathChangeRow struct {
	pathID, commitID               int64
	targetPathID, targetCommitID   int64
	hasTargetPath, hasTargetCommit bool
	changeKind, fileKind           string
	direct                         bool
}

func replacePathChanges(ctx context.Context, tx *sql.Tx, repoID, commitID, revision int64, effects map[string]*effect.Effect) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM path_changes WHERE commit_id = ?`, commitID); err != nil {
		return fmt.Errorf("delete existing rows: %w", err)
	}

	rows := make([]pathChangeRow, 0, len(effects))
	for _, e := range effects {
		row := pathChangeRow{
			pathID:        e.PathID,
			commitID:      commitID,
			changeKind:    e.ChangeKind.String(),
			fileKind:      e.FileKind.String(),
			direct:        e.Direct,
			hasTargetPath: e.HasTarget,
		}
		if e.HasTarget {
			row.targetPathID = e.TargetPathID
		}
		if e.HasTargetID {
			row.targetCommitID = e.TargetCommitID
			row.hasTargetCommit = true
		}
		rows = append(rows, row)
	}

	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))
		if err := insertPathChangeBatch(ctx, tx, repoID, revision, rows[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func insertPathChangeBatch(ctx context.Context, tx *sql.Tx, repoID, revision int64, rows []pathChangeRow) error {
	if len(rows) == 0 {
		return nil
	}
	placeholders := make([]string, len(rows))
	args := make([]any, 0, len(rows)*9)
	for i, r := range rows {
		placeholders[i] = "(?, ?, ?, ?, ?, ?, ?, ?, ?)"
		var targetPathID, targetCommitID any
		if r.hasTargetPath {
			targetPathID = r.targetPathID
		}
		if r.hasTargetCommit {
			targetCommitID = r.targetCommitID
		}
		args = append(args, repoID, r.pathID, r.commitID, targetPathID, targetCommitID, r.changeKind, r.fileKind, r.direct, revision)
	}
	query := fmt.Sprintf(`INSERT INTO path_changes
		(repo_id, path_id, commit_id, target_path_id, target_commit_id, change_kind, file_kind, direct, revision)
		VALUES %s`, strings.Join(placeholders, ", "))
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// existedZero holds the change kinds that mean "the path stopped existing
// at this revision" for the filesystem-delta view.
var existedZero = map[effect.ChangeKind]bool{
	effect.Delete:    true,
	effect.MoveAway:  true,
	effect.Multicopy: true,
}

type fsDeltaRow struct {
	parentPathID, pathID int64
	existed              bool
	fileKind             string
}

func replaceFilesystemDelta(ctx context.Context, tx *sql.Tx, repoID, revision int64, effects map[string]*effect.Effect) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM fs_deltas WHERE repo_id = ? AND revision = ?`, repoID, revision); err != nil {
		return fmt.Errorf("delete existing rows: %w", err)
	}

	rows := make([]fsDeltaRow, 0, len(effects))
	for path, e := range effects {
		if path == "/" {
			continue
		}
		if !e.Direct && e.ChangeKind == effect.CopyAway {
			continue
		}
		parent, ok := effects[svnpath.Parent(path)]
		if !ok {
			return fmt.Errorf("filesystem delta: parent of %q missing from effect set", path)
		}
		rows = append(rows, fsDeltaRow{
			parentPathID: parent.PathID,
			pathID:       e.PathID,
			existed:      !existedZero[e.ChangeKind],
			fileKind:     e.FileKind.String(),
		})
	}

	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))
		if err := insertFSDeltaBatch(ctx, tx, repoID, revision, rows[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func insertFSDeltaBatch(ctx context.Context, tx *sql.Tx, repoID, revision int64, rows []fsDeltaRow) error {
	if len(rows) == 0 {
		return nil
	}
	placeholders := make([]string, len(rows))
	args := make([]any, 0, len(rows)*6)
	for i, r := range rows {
		placeholders[i] = "(?, ?, ?, ?, ?, ?)"
		args = append(args, repoID, r.parentPathID, revision, r.pathID, r.existed, r.fileKind)
	}
	query := fmt.Sprintf(`INSERT INTO fs_deltas (repo_id, parent_path_id, revision, path_id, existed, file_kind) VALUES %s`,
		strings.Join(placeholders, ", "))
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}
