package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/recdesk/internal/model"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Start editing a record",
	Long: `Switch the session to edit mode for a record in the working set and
copy its title into the draft. The next save updates that record.

Examples:
  recdesk edit 3
  recdesk save "a better title"`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
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

	rec, ok := s.ctrl.Record(id)
	if !ok {
		return exitRecordNotFound(out, errOut, id)
	}

	s.ctrl.BeginEdit(rec)
	if err := s.persist(); err != nil {
		return err
	}

	if GetJSONOutput() {
		return printJSON(out, s.ctrl.View())
	}

	acknowledge(out, fmt.Sprintf("Editing record %d: %s", rec.ID, rec.Title))
	return nil
}
