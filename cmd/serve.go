// serve.go implements `svnparse serve`, starting the MCP server over stdio.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ojciec-dev/svnparse/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcp.Serve(dbPath())
	},
}

func init() {
	serveCmd.Flags().StringVar(&parseDBPath, "db", "", "Path to the SQLite store (default ~/.svnparse/store.db)")
	rootCmd.AddCommand(serveCmd)
}
