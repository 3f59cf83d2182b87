package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/recdesk/internal/model"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the session state",
	Long: `Show the data directory, the record service, the edit session and
the size of the working set.

Examples:
  recdesk status
  recdesk status --json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// statusInfo is the status command's JSON shape.
type statusInfo struct {
	DataDir  string     `json:"data_dir"`
	BaseURL  string     `json:"base_url"`
	Actor    string     `json:"actor"`
	Limit    int        `json:"limit"`
	Mode     model.Mode `json:"mode"`
	TargetID *int       `json:"target_id,omitempty"`
	Draft    string     `json:"draft"`
	Search   string     `json:"search"`
	Total    int        `json:"total"`
	Shown    int        `json:"shown"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	view := s.ctrl.View()
	info := statusInfo{
		DataDir:  s.ws.DataDir,
		BaseURL:  s.client.BaseURL(),
		Actor:    s.ws.Actor,
		Limit:    s.ws.Limit,
		Mode:     view.Mode,
		TargetID: view.TargetID,
		Draft:    view.Draft,
		Search:   view.Search,
		Total:    view.Total,
		Shown:    len(view.Records),
	}

	if GetJSONOutput() {
		return printJSON(out, info)
	}

	fmt.Fprintf(out, "Data dir: %s\n", info.DataDir)
	fmt.Fprintf(out, "Service:  %s\n", info.BaseURL)
	fmt.Fprintf(out, "Actor:    %s\n", info.Actor)
	if info.TargetID != nil {
		fmt.Fprintf(out, "Mode:     %s (record %d)\n", info.Mode, *info.TargetID)
	} else {
		fmt.Fprintf(out, "Mode:     %s\n", info.Mode)
	}
	fmt.Fprintf(out, "Draft:    %q\n", info.Draft)
	fmt.Fprintf(out, "Search:   %q\n", info.Search)
	fmt.Fprintf(out, "Records:  %d shown of %d\n", info.Shown, info.Total)
	return nil
}
