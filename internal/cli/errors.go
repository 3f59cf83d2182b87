package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/user/recdesk/internal/controller"
	"github.com/user/recdesk/internal/model"
)

// Error codes for structured error responses
const (
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeRemote         = "REMOTE_ERROR"
	ErrCodeRecordNotFound = "RECORD_NOT_FOUND"
	ErrCodeInvalidID      = "INVALID_ID"
)

// Exit codes
const (
	exitFailure    = 1
	exitValidation = 2
)

// JSONError represents a structured error response for --json output
type JSONError struct {
	Error   bool                   `json:"error"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ExitError carries the process exit code for a failure that has already
// been reported. Execute exits with Code once the command has returned, so
// deferred cleanup in the command still runs.
type ExitError struct {
	Code    int
	ErrCode string
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// exitCodeFor maps an error returned by a command to an exit code. Errors
// that were not reported yet are printed to stderr.
func exitCodeFor(err error, stderr io.Writer) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintln(stderr, "Error:", err)
	return exitFailure
}

// ExitWithError outputs an error message and returns the *ExitError the
// command should return.
// If --json flag is set, outputs structured JSON error to stdout.
// Otherwise outputs plain text to stderr.
func ExitWithError(stdout, stderr io.Writer, code int, errCode, message string, details map[string]interface{}) error {
	if GetJSONOutput() {
		errResp := JSONError{
			Error:   true,
			Code:    errCode,
			Message: message,
			Details: details,
		}
		data, _ := json.Marshal(errResp)
		fmt.Fprintln(stdout, string(data))
	} else {
		fmt.Fprintln(stderr, "Error:", message)
	}
	return &ExitError{Code: code, ErrCode: errCode, Message: message}
}

// exitForOpError reports a failed controller operation with the generic
// acknowledgment and the matching exit code.
func exitForOpError(stdout, stderr io.Writer, op controller.Op, err error) error {
	switch {
	case errors.Is(err, model.ErrValidation):
		return ExitWithError(stdout, stderr, exitValidation, ErrCodeValidation,
			controller.Acknowledgment(op, err), nil)
	case errors.Is(err, model.ErrRemote):
		return ExitWithError(stdout, stderr, exitFailure, ErrCodeRemote,
			controller.Acknowledgment(op, err),
			map[string]interface{}{"op": string(op), "cause": err.Error()})
	default:
		return ExitWithError(stdout, stderr, exitFailure, ErrCodeRemote, err.Error(), nil)
	}
}

// exitRecordNotFound outputs a record not found error
func exitRecordNotFound(stdout, stderr io.Writer, id int) error {
	return ExitWithError(stdout, stderr, exitFailure, ErrCodeRecordNotFound,
		fmt.Sprintf("record %d not found in the working set (run 'recdesk load' first?)", id),
		map[string]interface{}{"record_id": id})
}

// exitInvalidID outputs an invalid id error
func exitInvalidID(stdout, stderr io.Writer, raw string) error {
	return ExitWithError(stdout, stderr, exitValidation, ErrCodeInvalidID,
		fmt.Sprintf("invalid record id '%s'", raw),
		map[string]interface{}{"record_id": raw})
}
