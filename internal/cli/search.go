package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [text...]",
	Short: "Set the search text and list matching records",
	Long: `Set the search text and list the records whose title contains it,
ignoring case. The search is saved and applies to later list and load
commands. Run without arguments to clear it.

Examples:
  recdesk search qui est
  recdesk search          # clear the search`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	s.ctrl.SetSearch(strings.Join(args, " "))
	if err := s.persist(); err != nil {
		return err
	}

	view := s.ctrl.View()
	if GetJSONOutput() {
		return printJSON(out, view)
	}

	if view.Search != "" && !IsQuiet() {
		fmt.Fprintf(out, "Search: %q (%d of %d)\n\n", view.Search, len(view.Records), view.Total)
	}
	printRecords(out, view.Records)
	return nil
}
