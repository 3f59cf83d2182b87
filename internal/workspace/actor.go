// Package workspace resolves where recdesk keeps its data, who is acting,
// and which record service to talk to.
package workspace

import "os"

// Environment variables
const (
	EnvActor   = "RECDESK_ACTOR"
	EnvDir     = "RECDESK_DIR"
	EnvBaseURL = "RECDESK_BASE_URL"
)

// ResolveActor returns the actor name following priority order:
// 1. flagValue (--actor flag) if non-empty
// 2. $RECDESK_ACTOR environment variable if set
// 3. $USER environment variable if set
// 4. "unknown" as fallback
func ResolveActor(flagValue string) string {
	// Priority 1: Flag value
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: RECDESK_ACTOR environment variable
	if actor := os.Getenv(EnvActor); actor != "" {
		return actor
	}

	// Priority 3: USER environment variable
	if user := os.Getenv("USER"); user != "" {
		return user
	}

	// Priority 4: Fallback
	return "unknown"
}
