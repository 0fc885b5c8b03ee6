package errors

import (
	"fmt"
	"log"
	"time"
)

// ErrorHandler provides interface-specific error handling
type ErrorHandler interface {
	HandleError(err error) error
	FormatError(err error) string
}

// CLIErrorHandler handles errors for the command-line host
type CLIErrorHandler struct {
	Verbose bool
}

// NewCLIErrorHandler creates a new CLI error handler
func NewCLIErrorHandler(verbose bool) *CLIErrorHandler {
	return &CLIErrorHandler{
		Verbose: verbose,
	}
}

// HandleError handles errors for the command-line host
func (h *CLIErrorHandler) HandleError(err error) error {
	appErr := GetAppError(err)

	// Log error for debugging
	if h.Verbose {
		log.Printf("[%s] %s: %s", appErr.Severity, appErr.Code, appErr.Error())
		if appErr.Cause != nil {
			log.Printf("Caused by: %v", appErr.Cause)
		}
	}

	// Return formatted error for display
	return fmt.Errorf("%s", h.FormatError(appErr))
}

// FormatError formats an error for CLI display
func (h *CLIErrorHandler) FormatError(err error) string {
	appErr := GetAppError(err)

	// Format based on severity
	switch appErr.Severity {
	case SeverityCritical:
		return fmt.Sprintf("CRITICAL: %s", appErr.Message)
	case SeverityError:
		return fmt.Sprintf("ERROR: %s", appErr.Message)
	case SeverityWarning:
		return fmt.Sprintf("WARNING: %s", appErr.Message)
	case SeverityInfo:
		return fmt.Sprintf("INFO: %s", appErr.Message)
	default:
		return appErr.Message
	}
}

// ErrorRecovery retries operations that fail with transient transport
// errors, for serial links that drop a reply or refuse the first open.
type ErrorRecovery struct {
	MaxRetries int
	RetryDelay time.Duration
}

// NewErrorRecovery creates a new error recovery instance
func NewErrorRecovery(maxRetries int, retryDelay time.Duration) *ErrorRecovery {
	return &ErrorRecovery{
		MaxRetries: maxRetries,
		RetryDelay: retryDelay,
	}
}

// ShouldRetry determines if an operation should be retried
func (r *ErrorRecovery) ShouldRetry(err error, attempt int) bool {
	if attempt >= r.MaxRetries {
		return false
	}

	appErr := GetAppError(err)
	return appErr.IsRetryable()
}

// GetRetryDelay returns the delay before next retry
func (r *ErrorRecovery) GetRetryDelay(attempt int) time.Duration {
	// Exponential backoff: delay * 2^attempt
	return r.RetryDelay * (1 << attempt)
}

// Retry runs fn up to MaxRetries+1 times, sleeping between attempts,
// and returns the last error if every attempt fails.
func (r *ErrorRecovery) Retry(fn func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !r.ShouldRetry(err, attempt) {
			return err
		}
		time.Sleep(r.GetRetryDelay(attempt))
	}
}
