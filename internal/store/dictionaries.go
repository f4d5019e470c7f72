// dictionaries.go implements the repo/path/commit dictionary tables that
// back internal/ids's PathAllocator and CommitResolver interfaces.
//
// Design: paths and commits are looked up by natural key (the repository
// path string; the (repo, revision) pair) and allocated on first sight.
// SQLite's UNIQUE constraint plus "INSERT OR IGNORE then SELECT" avoids a
// round trip for the common case where most paths in a commit already
// exist, at the cost of one extra statement for genuinely new ones.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ojciec-dev/svnparse/internal/ids"
)

// Compile-time interface compliance checks, so a signature drift here fails
// the build instead of surfacing as a runtime type assertion panic in
// internal/parse.
var (
	_ ids.PathAllocator  = (*Store)(nil)
	_ ids.CommitResolver = (*Store)(nil)
)

// ResolveOrCreateRepo returns the id for uri, allocating one if this is the
// first time the repository has been parsed.
func (s *Store) ResolveOrCreateRepo(ctx context.Context, uri string) (int64, error) {
	var id int64
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO repos (uri) VALUES (?)`, uri); err != nil {
			return fmt.Errorf("insert repo: %w", err)
		}
		return tx.QueryRowContext(ctx, `SELECT id FROM repos WHERE uri = ?`, uri).Scan(&id)
	})
	return id, err
}

// AllocatePaths implements internal/ids.PathAllocator.
func (s *Store) AllocatePaths(ctx context.Context, paths []string) (map[string]int64, error) {
	out := make(map[string]int64, len(paths))
	if len(paths) == 0 {
		return out, nil
	}
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		for _, batch := range chunkStrings(paths, insertBatchSize) {
			if err := insertIgnoreBatch(ctx, tx, "paths", "path", batch); err != nil {
				return fmt.Errorf("insert paths: %w", err)
			}
		}
		rows, err := selectIDsByString(ctx, tx, "paths", "path", paths)
		if err != nil {
			return fmt.Errorf("select path ids: %w", err)
		}
		for k, v := range rows {
			out[k] = v
		}
		return nil
	})
	return out, err
}

// ResolveCommits implements internal/ids.CommitResolver. A revision with no
// recorded commit for repoID is simply absent from the result.
func (s *Store) ResolveCommits(ctx context.Context, repoID int64, revisions []int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(revisions))
	if len(revisions) == 0 {
		return out, nil
	}
	placeholders, args := intPlaceholders(revisions)
	args = append([]any{repoID}, args...)
	query := fmt.Sprintf(`SELECT revision, id FROM commits WHERE repo_id = ? AND revision IN (%s)`, placeholders)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("resolve commits: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rev, id int64
		if err := rows.Scan(&rev, &id); err != nil {
			return nil, fmt.Errorf("scan commit: %w", err)
		}
		out[rev] = id
	}
	return out, rows.Err()
}

// RecordCommit upserts the (repoID, revision) pair, returning its id.
// WriteCommit calls it first, inside the same transaction that then writes
// the commit's effects, so later commits whose copy provenance points back
// at this revision can resolve it.
func (s *Store) RecordCommit(ctx context.Context, tx *sql.Tx, repoID, revision int64) (int64, error) {
	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO commits (repo_id, revision) VALUES (?, ?)`, repoID, revision); err != nil {
		return 0, fmt.Errorf("insert commit: %w", err)
	}
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM commits WHERE repo_id = ? AND revision = ?`, repoID, revision).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("select commit id: %w", err)
	}
	return id, nil
}

func chunkStrings(items []string, size int) [][]string {
	var out [][]string
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}

func insertIgnoreBatch(ctx context.Context, tx *sql.Tx, table, column string, values []string) error {
	placeholders, args := stringPlaceholders(values)
	query := fmt.Sprintf(`INSERT OR IGNORE INTO %s (%s) VALUES %s`, table, column, placeholders)
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

func selectIDsByString(ctx context.Context, tx *sql.Tx, table, column string, values []string) (map[string]int64, error) {
	out := make(map[string]int64, len(values))
	for _, batch := range chunkStrings(values, insertBatchSize) {
		placeholders, args := inPlaceholders(batch)
		query := fmt.Sprintf(`SELECT id, %s FROM %s WHERE %s IN (%s)`, column, table, column, placeholders)
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var id int64
			var val string
			if err := rows.Scan(&id, &val); err != nil {
				rows.Close()
				return nil, err
			}
			out[val] = id
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}
	return out, nil
}
