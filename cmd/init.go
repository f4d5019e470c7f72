// init.go implements `svnparse init`, writing a default config file so a
// project can pin its own svn binary, batch width, or timeout.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ojciec-dev/svnparse/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		scope := config.ScopeGlobal
		path := config.GlobalPath()
		if Local() {
			scope = config.ScopeLocal
			path = config.LocalPath()
		}

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s", path)
		}

		cfg, err := config.LoadScope(scope)
		if err != nil {
			return err
		}
		if err := cfg.SaveScope(scope); err != nil {
			return err
		}

		fmt.Fprintf(Out(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
