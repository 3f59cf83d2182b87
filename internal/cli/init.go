package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/recdesk/internal/storage"
	"github.com/user/recdesk/internal/workspace"
)

var (
	initLimit   int
	initTimeout time.Duration
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the data directory",
	Long: `Create the recdesk data directory and its config.yaml.

The directory is .recdesk in the current directory unless --dir or
$RECDESK_DIR says otherwise. Running init again updates config.yaml with
any values given and keeps the rest.

Examples:
  recdesk init
  recdesk init --limit 25 --timeout 5s
  recdesk init --base-url http://localhost:3000/posts`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().IntVar(&initLimit, "limit", 0, "Records kept by load (0 = default)")
	initCmd.Flags().DurationVar(&initTimeout, "timeout", 0, "Per-request timeout (0 = none)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	if initLimit < 0 {
		return ExitWithError(out, errOut, exitValidation, ErrCodeValidation,
			fmt.Sprintf("invalid limit %d (must be >= 0)", initLimit), nil)
	}
	if initTimeout < 0 {
		return ExitWithError(out, errOut, exitValidation, ErrCodeValidation,
			fmt.Sprintf("invalid timeout %s (must be >= 0)", initTimeout), nil)
	}

	dir := workspace.ResolveDataDir(dataDir)
	store, err := storage.NewStore(dir)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	cfg, err := store.ReadConfig()
	if err != nil {
		return err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if cmd.Flags().Changed("limit") {
		cfg.Limit = initLimit
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = initTimeout
	}
	if err := store.WriteConfig(cfg); err != nil {
		return err
	}

	if GetJSONOutput() {
		return printJSON(out, map[string]interface{}{
			"dir":    dir,
			"config": cfg,
		})
	}

	acknowledge(out, fmt.Sprintf("Initialized recdesk in %s", dir))
	return nil
}
