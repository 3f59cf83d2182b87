// Package cli provides the command-line interface for recdesk.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/user/recdesk/internal/workspace"
)

// Global flags
var (
	jsonOutput bool
	dataDir    string
	baseURL    string
	actorName  string
	quiet      bool
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "recdesk",
	Short: "A small CRUD desk for records served by a REST API",
	Long: `recdesk keeps a local working view of records served by a REST record
service and lets you create, edit, delete and search them.

Features:
  - Load the first records from the service into a local working set
  - Create and edit titles; delete records
  - Case-insensitive live search over titles
  - Session kept between commands in .recdesk/session.db
  - Journal of every service call in .recdesk/journal.jsonl
  - Interactive terminal UI: recdesk tui`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		Exit(exitCodeFor(err, os.Stderr))
	}
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "", "Data directory (default: $RECDESK_DIR or nearest .recdesk)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Record service URL (default: $RECDESK_BASE_URL, config, or "+"jsonplaceholder)")
	rootCmd.PersistentFlags().StringVar(&actorName, "actor", "", "Actor recorded in the journal (default: $RECDESK_ACTOR or $USER)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress acknowledgments (failures are still logged)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
}

// ExitCode is used to communicate exit codes for testing
var ExitCode int

// ExitFunc is the function called to exit the program
// Can be overridden for testing
var ExitFunc = os.Exit

// Exit sets the exit code and calls the exit function
func Exit(code int) {
	ExitCode = code
	ExitFunc(code)
}

// GetJSONOutput returns whether JSON output is enabled
func GetJSONOutput() bool {
	return jsonOutput
}

// IsQuiet returns whether quiet mode is enabled
func IsQuiet() bool {
	return quiet
}

// IsVerbose returns whether verbose mode is enabled
func IsVerbose() bool {
	return verbose
}

// workspaceFlags collects the global overrides for workspace.Resolve.
func workspaceFlags() workspace.Flags {
	return workspace.Flags{
		Actor:   actorName,
		Dir:     dataDir,
		BaseURL: baseURL,
	}
}

// newLogger builds the logger failed service calls are reported to.
// Errors only by default, everything with --verbose. --quiet does not
// silence it.
func newLogger(w io.Writer) *zap.Logger {
	level := zapcore.ErrorLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core)
}

// LogFile is the log written inside the data directory while the TUI owns
// the terminal.
const LogFile = "recdesk.log"

// newFileLogger opens dataDir/recdesk.log for appending and returns a
// logger writing to it, with a function closing the file.
func newFileLogger(dataDir string) (*zap.Logger, func(), error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dataDir, LogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log := newLogger(f)
	return log, func() {
		_ = log.Sync()
		f.Close()
	}, nil
}
