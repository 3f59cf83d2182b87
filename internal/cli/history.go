package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/recdesk/internal/storage"
)

var (
	historyOp    string
	historyBy    string
	historySince string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the journal of service calls",
	Long: `Display the journal of record service calls made from this data
directory, most recent first.

Options:
  --op <op>        Filter by operation (load, create, update, delete)
  --by <actor>     Filter by actor
  --since <dur>    Filter by time (e.g., 24h, 7d, 1w)
  --limit <n>      Limit to N most recent entries

Examples:
  recdesk history
  recdesk history --op delete
  recdesk history --since 24h --limit 20
  recdesk history --json`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyOp, "op", "", "Filter by operation")
	historyCmd.Flags().StringVar(&historyBy, "by", "", "Filter by actor")
	historyCmd.Flags().StringVar(&historySince, "since", "", "Filter by time (e.g., 24h, 7d)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Limit results (0 = no limit)")
	rootCmd.AddCommand(historyCmd)
}

// parseDuration parses duration strings like "24h", "7d", "1w"
func parseDuration(s string) (time.Duration, error) {
	// Handle week suffix
	if strings.HasSuffix(s, "w") {
		var n int
		if _, err := fmt.Sscanf(strings.TrimSuffix(s, "w"), "%d", &n); err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	}

	// Handle day suffix
	if strings.HasSuffix(s, "d") {
		var n int
		if _, err := fmt.Sscanf(strings.TrimSuffix(s, "d"), "%d", &n); err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	return time.ParseDuration(s)
}

func runHistory(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	var cutoff time.Time
	if historySince != "" {
		d, err := parseDuration(historySince)
		if err != nil {
			return ExitWithError(out, errOut, exitValidation, ErrCodeValidation,
				fmt.Sprintf("invalid duration: %s", historySince), nil)
		}
		cutoff = time.Now().Add(-d)
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	entries, err := s.store.ReadJournal(0)
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}

	// Newest first, filtered.
	history := make([]storage.JournalEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if historyOp != "" && e.Op != historyOp {
			continue
		}
		if historyBy != "" && e.Actor != historyBy {
			continue
		}
		if !cutoff.IsZero() && e.At.Before(cutoff) {
			continue
		}
		history = append(history, e)
	}
	if historyLimit > 0 && len(history) > historyLimit {
		history = history[:historyLimit]
	}

	if GetJSONOutput() {
		return printJSON(out, history)
	}

	if len(history) == 0 {
		fmt.Fprintln(out, "No history found.")
		return nil
	}

	fmt.Fprintf(out, "%-19s  %-6s  %-6s  %-15s  %-6s  %s\n",
		"Timestamp", "Op", "ID", "Actor", "Result", "Title")
	fmt.Fprintf(out, "%s  %s  %s  %s  %s  %s\n",
		strings.Repeat("-", 19),
		strings.Repeat("-", 6),
		strings.Repeat("-", 6),
		strings.Repeat("-", 15),
		strings.Repeat("-", 6),
		strings.Repeat("-", 5),
	)

	for _, e := range history {
		id := ""
		if e.RecordID != 0 {
			id = fmt.Sprint(e.RecordID)
		}
		result := "ok"
		if !e.OK {
			result = "failed"
		}
		fmt.Fprintf(out, "%-19s  %-6s  %-6s  %-15s  %-6s  %s\n",
			e.At.Local().Format("2006-01-02 15:04:05"),
			e.Op, id, truncate(e.Actor, 15), result, truncate(e.Title, 40))
	}

	fmt.Fprintf(out, "\n%d entries\n", len(history))
	return nil
}
