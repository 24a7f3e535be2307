package output

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	loomerr "github.com/keyloom/keyloom/pkg/errors"
)

// ErrorOutput represents a structured error for JSON output.
type ErrorOutput struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details.
type ErrorDetail struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	Suggestion string            `json:"suggestion,omitempty"`
	ExitCode   int               `json:"exit_code"`
}

// FormatError formats an error for display.
func FormatError(w io.Writer, err error, format Format) error {
	if err == nil {
		return nil
	}

	if format == FormatJSON {
		return encodeJSON(w, errorOutput(err))
	}
	return formatErrorText(w, err)
}

// errorOutput builds the structured representation of an error.
func errorOutput(err error) ErrorOutput {
	var le *loomerr.LoomError
	if errors.As(err, &le) {
		return ErrorOutput{
			Error: ErrorDetail{
				Code:       le.Code,
				Message:    le.Message,
				Details:    le.Details,
				Suggestion: le.Suggestion,
				ExitCode:   le.ExitCode,
			},
		}
	}

	return ErrorOutput{
		Error: ErrorDetail{
			Code:     "GENERAL_ERROR",
			Message:  err.Error(),
			ExitCode: loomerr.ExitGeneral,
		},
	}
}

// formatErrorText outputs error in text format.
func formatErrorText(w io.Writer, err error) error {
	var sb strings.Builder

	var le *loomerr.LoomError
	if errors.As(err, &le) {
		sb.WriteString(fmt.Sprintf("Error: %s\n", le.Message))

		if len(le.Details) > 0 {
			sb.WriteString("\nDetails:\n")
			keys := make([]string, 0, len(le.Details))
			for k := range le.Details {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				sb.WriteString(fmt.Sprintf("  %s: %s\n", k, le.Details[k]))
			}
		}

		if le.Suggestion != "" {
			sb.WriteString(fmt.Sprintf("\nSuggestion: %s\n", le.Suggestion))
		}
	} else {
		sb.WriteString(fmt.Sprintf("Error: %s\n", err.Error()))
	}

	_, writeErr := io.WriteString(w, sb.String())
	return writeErr
}

// FormatSuccess formats a success message.
func FormatSuccess(w io.Writer, message string, format Format) error {
	if format == FormatJSON {
		return encodeJSON(w, map[string]string{"status": "success", "message": message})
	}
	_, err := fmt.Fprintln(w, message)
	return err
}
