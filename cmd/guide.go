// guide.go implements `svnparse guide [topic]`, printing embedded
// documentation with glamour rendering when attached to a terminal.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ojciec-dev/svnparse/guide"
)

var guideCmd = &cobra.Command{
	Use:   "guide [topic]",
	Short: "Show the svnparse usage guide",
	Long: `Outputs the svnparse guide for LLMs and humans.

  svnparse guide          # main guide
  svnparse guide parse    # parse command reference
  svnparse guide config   # config command reference`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}

		content, err := guide.Get(name)
		if err != nil {
			available, listErr := guide.List()
			if listErr != nil {
				return listErr
			}
			return fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", "))
		}

		if term.IsTerminal(int(os.Stdout.Fd())) {
			rendered, err := glamour.Render(content, "dark")
			if err == nil {
				fmt.Fprint(Out(), rendered)
				return nil
			}
		}

		fmt.Fprint(Out(), content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(guideCmd)
}
