// Package errors provides structured error handling for keyloom.
// It defines sentinel errors, exit codes, and helpers for adding
// context, details, and suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes for the CLI surface.
const (
	ExitSuccess  = 0 // Successful execution
	ExitGeneral  = 1 // General/unknown error
	ExitInput    = 2 // Invalid input
	ExitState    = 3 // Operation invalid in the current registry state
	ExitNotFound = 4 // Resource not found
)

// LoomError is the structured error type for keyloom.
type LoomError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *LoomError) Error() string {
	msg := e.Message

	// Include details in error message (sorted for deterministic output)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *LoomError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for LoomError.
func (e *LoomError) Is(target error) bool {
	var t *LoomError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &LoomError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &LoomError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	// Mnemonic errors.
	ErrInvalidMnemonic = &LoomError{
		Code:     "INVALID_MNEMONIC",
		Message:  "invalid mnemonic phrase",
		ExitCode: ExitInput,
	}

	// Derivation errors.
	ErrUnsupportedChain = &LoomError{
		Code:     "UNSUPPORTED_CHAIN",
		Message:  "unsupported chain",
		ExitCode: ExitInput,
	}

	ErrDerivation = &LoomError{
		Code:     "DERIVATION_ERROR",
		Message:  "key derivation failed",
		ExitCode: ExitGeneral,
	}

	ErrIndexOverflow = &LoomError{
		Code:     "INDEX_OVERFLOW",
		Message:  "account index exceeds the hardened derivation range",
		ExitCode: ExitInput,
	}

	ErrInvalidScalar = &LoomError{
		Code:     "INVALID_SCALAR",
		Message:  "derived scalar is not a valid private key",
		ExitCode: ExitGeneral,
	}

	ErrKeyDerivation = &LoomError{
		Code:     "KEY_DERIVATION_ERROR",
		Message:  "keypair construction failed",
		ExitCode: ExitGeneral,
	}

	// Registry errors.
	ErrNoMnemonicEstablished = &LoomError{
		Code:     "NO_MNEMONIC_ESTABLISHED",
		Message:  "no mnemonic established - generate a wallet first",
		ExitCode: ExitState,
	}

	ErrChainAlreadySelected = &LoomError{
		Code:     "CHAIN_ALREADY_SELECTED",
		Message:  "a chain is already selected for this session",
		ExitCode: ExitState,
	}

	ErrNoChainSelected = &LoomError{
		Code:     "NO_CHAIN_SELECTED",
		Message:  "no chain selected - select a chain first",
		ExitCode: ExitState,
	}

	ErrIndexOutOfRange = &LoomError{
		Code:     "INDEX_OUT_OF_RANGE",
		Message:  "wallet position out of range",
		ExitCode: ExitInput,
	}

	// Store errors.
	ErrStoreCorrupted = &LoomError{
		Code:     "STORE_CORRUPTED",
		Message:  "stored wallet data is corrupted",
		ExitCode: ExitGeneral,
	}

	ErrDecryptionFailed = &LoomError{
		Code:     "DECRYPTION_FAILED",
		Message:  "decryption failed - wrong passphrase or corrupted data",
		ExitCode: ExitInput,
	}

	// Config errors.
	ErrConfigNotFound = &LoomError{
		Code:     "CONFIG_NOT_FOUND",
		Message:  "configuration file not found",
		ExitCode: ExitNotFound,
	}

	ErrConfigInvalid = &LoomError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}
)

// New creates a new LoomError with the given code and message.
func New(code, message string) *LoomError {
	return &LoomError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var le *LoomError
	if errors.As(err, &le) {
		return &LoomError{
			Code:       le.Code,
			Message:    fmt.Sprintf("%s: %s", msg, le.Message),
			Details:    le.Details,
			Suggestion: le.Suggestion,
			Cause:      err,
			ExitCode:   le.ExitCode,
		}
	}

	return &LoomError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var le *LoomError
	if errors.As(err, &le) {
		return &LoomError{
			Code:       le.Code,
			Message:    le.Message,
			Details:    details,
			Suggestion: le.Suggestion,
			Cause:      le.Cause,
			ExitCode:   le.ExitCode,
		}
	}

	return &LoomError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var le *LoomError
	if errors.As(err, &le) {
		return &LoomError{
			Code:       le.Code,
			Message:    le.Message,
			Details:    le.Details,
			Suggestion: suggestion,
			Cause:      le.Cause,
			ExitCode:   le.ExitCode,
		}
	}

	return &LoomError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var le *LoomError
	if errors.As(err, &le) {
		return le.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var le *LoomError
	if errors.As(err, &le) {
		return le.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
