// config.go implements `svnparse config`, for reading and writing the
// svn/store/audit settings in internal/config.
package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ojciec-dev/svnparse/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set svnparse configuration",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		switch len(args) {
		case 0:
			return printAll(cfg)
		case 1:
			val, err := cfg.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(Out(), val)
			return nil
		default:
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			scope := config.ScopeGlobal
			if Local() {
				scope = config.ScopeLocal
			}
			return cfg.SaveScope(scope)
		}
	},
}

func printAll(cfg *config.Config) error {
	if JSON() {
		return PrintJSON(cfg.All())
	}
	all := cfg.All()
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(Out(), "%s = %s\n", k, all[k])
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
}
