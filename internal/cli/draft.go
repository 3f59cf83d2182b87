package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var draftCmd = &cobra.Command{
	Use:   "draft [text...]",
	Short: "Set the draft title",
	Long: `Replace the draft title without saving it. The session mode is kept:
in edit mode the draft is the new title for the record being edited.

Examples:
  recdesk draft buy milk
  recdesk save`,
	RunE: runDraft,
}

func init() {
	rootCmd.AddCommand(draftCmd)
}

func runDraft(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	s.ctrl.SetDraft(strings.Join(args, " "))
	if err := s.persist(); err != nil {
		return err
	}

	view := s.ctrl.View()
	if GetJSONOutput() {
		return printJSON(out, view)
	}

	acknowledge(out, fmt.Sprintf("Draft (%s): %s", view.Mode, view.Draft))
	return nil
}
