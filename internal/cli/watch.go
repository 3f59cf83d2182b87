package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/user/recdesk/internal/model"
	"github.com/user/recdesk/internal/storage"
	"github.com/user/recdesk/internal/watch"
	"github.com/user/recdesk/internal/workspace"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the session whenever it changes",
	Long: `Watch the data directory and print a summary line each time another
recdesk command (or the TUI) changes the saved session. Stops on Ctrl+C.

Examples:
  recdesk watch
  recdesk watch --json`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	ws, err := workspace.Resolve(workspaceFlags())
	if err != nil {
		return err
	}

	// One store for the whole run so reads do not recreate the WAL files.
	store, err := storage.NewStore(ws.DataDir)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	p := &viewPrinter{out: out}
	if err := p.refresh(store); err != nil {
		return err
	}

	log := newLogger(errOut)
	defer func() { _ = log.Sync() }()

	w, err := watch.NewWatcher(ws.DataDir, func() error {
		return p.refresh(store)
	}, log.Sugar().Errorf)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !IsQuiet() && !GetJSONOutput() {
		fmt.Fprintf(errOut, "Watching %s (Ctrl+C to stop)\n", ws.DataDir)
	}
	<-ctx.Done()
	return nil
}

// commandContext returns the command's context, or Background when run
// without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// viewPrinter prints the saved view each time it differs from the last one
// printed.
type viewPrinter struct {
	out io.Writer

	mu   sync.Mutex
	last *model.View
}

func (p *viewPrinter) refresh(store storage.Storage) error {
	state, err := store.LoadState()
	if err != nil {
		return err
	}
	view := state.View()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.last != nil && cmp.Equal(*p.last, view) {
		return nil
	}
	p.last = &view

	if GetJSONOutput() {
		data, err := json.Marshal(view)
		if err != nil {
			return err
		}
		fmt.Fprintln(p.out, string(data))
		return nil
	}

	line := fmt.Sprintf("[%s] %d of %d records", time.Now().Format("15:04:05"), len(view.Records), view.Total)
	if view.Search != "" {
		line += fmt.Sprintf(", search %q", view.Search)
	}
	if view.TargetID != nil {
		line += fmt.Sprintf(", editing record %d", *view.TargetID)
	}
	if view.Draft != "" {
		line += fmt.Sprintf(", draft %q", view.Draft)
	}
	fmt.Fprintln(p.out, line)
	return nil
}
