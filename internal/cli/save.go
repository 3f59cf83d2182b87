package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/recdesk/internal/controller"
)

var saveCmd = &cobra.Command{
	Use:     "save [title...]",
	Aliases: []string{"add"},
	Short:   "Create or update a record from the draft",
	Long: `Save the draft title. In create mode a new record is sent to the
record service and added to the top of the working set. In edit mode
the record being edited is retitled.

A title given as arguments replaces the draft first. A blank title is
rejected without calling the service.

Examples:
  recdesk save buy milk
  recdesk edit 3 && recdesk save "renamed"
  recdesk draft "later" && recdesk save`,
	RunE: runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	draft := s.ctrl.View().Draft
	if len(args) > 0 {
		draft = strings.Join(args, " ")
	}

	op := controller.OpCreate
	if s.ctrl.State().Session.IsEditing() {
		op = controller.OpUpdate
	}

	outcome, saveErr := s.ctrl.Save(commandContext(cmd), draft)
	// The draft is kept on failure, so persist either way.
	if err := s.persist(); err != nil {
		return err
	}
	if saveErr != nil {
		return exitForOpError(out, errOut, op, saveErr)
	}

	if GetJSONOutput() {
		return printJSON(out, map[string]interface{}{
			"op":     outcome.Op,
			"record": outcome.Record,
		})
	}

	acknowledge(out, controller.Acknowledgment(outcome.Op, nil))
	return nil
}
