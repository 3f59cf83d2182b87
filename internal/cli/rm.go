package cli

import (
	"github.com/spf13/cobra"

	"github.com/user/recdesk/internal/controller"
	"github.com/user/recdesk/internal/model"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a record",
	Long: `Delete a record on the record service, then remove it from the
working set. The id does not have to be in the working set; the service
decides whether it exists.

Examples:
  recdesk rm 3`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	id, err := model.ParseID(args[0])
	if err != nil {
		return exitInvalidID(out, errOut, args[0])
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.ctrl.Delete(commandContext(cmd), id); err != nil {
		return exitForOpError(out, errOut, controller.OpDelete, err)
	}
	if err := s.persist(); err != nil {
		return err
	}

	if GetJSONOutput() {
		return printJSON(out, map[string]interface{}{
			"op":        controller.OpDelete,
			"record_id": id,
		})
	}

	acknowledge(out, controller.Acknowledgment(controller.OpDelete, nil))
	return nil
}
