package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/recdesk/internal/controller"
)

var loadCmd = &cobra.Command{
	Use:     "load",
	Aliases: []string{"fetch", "reload"},
	Short:   "Fetch records from the record service",
	Long: `Fetch the record list from the record service and replace the local
working set with its first entries (10 unless config.yaml sets a limit).

The current search text is kept and applied to the new set. If the
service cannot be reached the working set is left as it was.

Examples:
  recdesk load
  recdesk load --json`,
	Args: cobra.NoArgs,
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.ctrl.Load(commandContext(cmd)); err != nil {
		return exitForOpError(out, errOut, controller.OpLoad, err)
	}
	if err := s.persist(); err != nil {
		return err
	}

	view := s.ctrl.View()
	if GetJSONOutput() {
		return printJSON(out, view)
	}

	acknowledge(out, fmt.Sprintf("%s (%d)", controller.Acknowledgment(controller.OpLoad, nil), view.Total))
	return nil
}
