// parse.go implements `svnparse parse <repo-uri> <revision>`, the CLI
// surface over internal/parse.Service.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ojciec-dev/svnparse/internal/cliformat"
	"github.com/ojciec-dev/svnparse/internal/config"
	"github.com/ojciec-dev/svnparse/internal/log"
	"github.com/ojciec-dev/svnparse/internal/parse"
	"github.com/ojciec-dev/svnparse/internal/store"
	"github.com/ojciec-dev/svnparse/internal/svncli"
	"github.com/ojciec-dev/svnparse/internal/validate"
)

var parseDBPath string

var parseCmd = &cobra.Command{
	Use:   "parse <repo-uri> <revision>",
	Short: "Parse one commit and persist its effect set",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		repoURI, err := validate.RepoURI(args[0])
		if err != nil {
			return err
		}
		rev, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid revision %q: %w", args[1], err)
		}
		if err := validate.Revision(rev, false); err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		path := dbPath()
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("creating store directory: %w", err)
		}
		s, err := store.Open(path)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.Init(); err != nil {
			return err
		}

		invoker := svncli.New(cfg.SVNBinary(), time.Duration(cfg.TimeoutSeconds())*time.Second)
		svc := parse.NewForRepo(invoker, repoURI, cfg.ListBatchWidth(), s)

		start := time.Now()
		result, runErr := svc.Parse(cmd.Context(), repoURI, rev)
		if cfg.AuditEnabled() {
			log.Event("parse:commit", "parse").
				Repo(repoURI).
				Revision(rev).
				Detail("effects", result.Effects).
				Detail("duration_ms", time.Since(start).Milliseconds()).
				Write(runErr)
		}
		if runErr != nil {
			return runErr
		}

		if JSON() {
			return PrintJSON(result)
		}
		if result.Empty {
			fmt.Fprintf(Out(), "r%d: no path changes (empty log entry)\n", rev)
			return nil
		}
		if Output() == "table" {
			changes, err := s.PathChangesForCommit(cmd.Context(), repoURI, rev)
			if err != nil {
				return err
			}
			return cliformat.Table(Out(), changes)
		}
		fmt.Fprintf(Out(), "r%d: %d effects persisted\n", rev, result.Effects)
		return nil
	},
}

func dbPath() string {
	if parseDBPath != "" {
		return parseDBPath
	}
	if env := os.Getenv("SVNPARSE_DB"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".svnparse", "store.db")
	}
	return filepath.Join(home, ".svnparse", "store.db")
}

func init() {
	parseCmd.Flags().StringVar(&parseDBPath, "db", "", "Path to the SQLite store (default ~/.svnparse/store.db)")
	rootCmd.AddCommand(parseCmd)
}
