// root.go defines the root command and CLI execution entry point.
//
// Separated from flags.go to isolate cobra setup from flag definitions.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ojciec-dev/svnparse/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "svnparse",
	Short: "Parses Subversion commits into queryable effect sets",
	Long:  `svnparse turns a single Subversion commit's raw path changes into a canonical set of effects (add, delete, move, copy, ...) and persists them for later querying.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging before dispatch and ensures it is closed on exit.
// Exit code 1 indicates error.
func Execute() {
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
