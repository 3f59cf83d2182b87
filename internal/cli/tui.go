package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/recdesk/internal/model"
	"github.com/user/recdesk/internal/tui"
	"github.com/user/recdesk/internal/workspace"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive desk",
	Long: `Open the interactive terminal desk. Records are loaded on start.

Keys:
  tab      cycle focus: title, search, list
  enter    create (or update, when editing) from the title
  ↑/↓ j/k  move in the list
  e        edit the selected record
  d        delete the selected record
  r        reload from the record service
  ctrl+c   quit

While the desk is open, failed calls are logged to recdesk.log in the
data directory instead of stderr.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Anything written to stderr would land on the alt screen.
	log, closeLog, err := newFileLogger(workspace.ResolveDataDir(dataDir))
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := openSessionWithLogger(log)
	if err != nil {
		return err
	}
	defer s.close()

	persist := func(state model.State) {
		if err := s.store.SaveState(state); err != nil {
			s.log.Warn("failed to save session", zap.Error(err))
		}
	}

	if err := tui.Run(commandContext(cmd), s.ctrl, persist); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return s.persist()
}
