package cli

import (
	"github.com/spf13/cobra"
)

var listAll bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List records in the working set",
	Long: `List the records currently shown: the working set filtered by the
saved search text, newest creations first.

  --all   Ignore the search text and list the full working set

Examples:
  recdesk list
  recdesk list --all
  recdesk list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listAll, "all", false, "List the full working set, ignoring the search")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	records := s.ctrl.View().Records
	if listAll {
		records = s.ctrl.State().Records
	}

	if GetJSONOutput() {
		return printJSON(out, records)
	}

	printRecords(out, records)
	return nil
}
