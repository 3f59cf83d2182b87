package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/user/recdesk/internal/model"
)

const titleWidth = 60

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// printRecords writes records as an ID/TITLE table.
func printRecords(w io.Writer, records []model.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records found.")
		return
	}

	idWidth := 2
	for _, r := range records {
		if n := len(fmt.Sprint(r.ID)); n > idWidth {
			idWidth = n
		}
	}

	fmt.Fprintf(w, "%-*s  %s\n", idWidth, "ID", "TITLE")
	fmt.Fprintf(w, "%s  %s\n", strings.Repeat("-", idWidth), strings.Repeat("-", 5))
	for _, r := range records {
		fmt.Fprintf(w, "%-*d  %s\n", idWidth, r.ID, truncate(r.Title, titleWidth))
	}
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// acknowledge prints the confirmation for a finished operation unless --quiet.
func acknowledge(w io.Writer, msg string) {
	if !IsQuiet() {
		fmt.Fprintln(w, msg)
	}
}
