package workspace

import (
	"fmt"
	"os"
	"time"

	"github.com/user/recdesk/internal/model"
	"github.com/user/recdesk/internal/remote"
	"github.com/user/recdesk/internal/storage"
)

// Flags carries the global command-line overrides.
type Flags struct {
	Actor   string
	Dir     string
	BaseURL string
}

// Context holds the resolved runtime context for recdesk commands.
type Context struct {
	Actor   string        // Resolved actor name
	DataDir string        // Path to .recdesk directory (may not exist yet)
	BaseURL string        // Record service collection URL
	Limit   int           // Records kept by load
	Timeout time.Duration // Per-request timeout, zero for transport default
}

// Resolve builds the full context from flags, environment and config.yaml.
//
// Base URL priority: --base-url, $RECDESK_BASE_URL, config.yaml, remote.DefaultBaseURL.
// Limit and timeout come from config.yaml only.
func Resolve(flags Flags) (*Context, error) {
	ctx := &Context{
		Actor:   ResolveActor(flags.Actor),
		DataDir: ResolveDataDir(flags.Dir),
		Limit:   model.DefaultLoadLimit,
	}

	cfg, err := storage.NewConfigStore(ctx.DataDir).Read()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	switch {
	case flags.BaseURL != "":
		ctx.BaseURL = flags.BaseURL
	case os.Getenv(EnvBaseURL) != "":
		ctx.BaseURL = os.Getenv(EnvBaseURL)
	case cfg.BaseURL != "":
		ctx.BaseURL = cfg.BaseURL
	default:
		ctx.BaseURL = remote.DefaultBaseURL
	}

	if cfg.Limit > 0 {
		ctx.Limit = cfg.Limit
	}
	ctx.Timeout = cfg.Timeout

	return ctx, nil
}
