package fetcher

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the browser-side condition that failed.
type ErrorCode string

const (
	CodeBrowserNotFound ErrorCode = "BROWSER_NOT_FOUND"
	CodeNavigation      ErrorCode = "NAVIGATION"
	CodeTimeout         ErrorCode = "TIMEOUT"
)

// FetchError wraps a fetch failure with its condition. Any FetchError aborts
// the run; every step that can fail runs exactly once, there is no retry.
type FetchError struct {
	Code       ErrorCode
	Message    string
	Underlying error
}

func (e *FetchError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *FetchError) Unwrap() error { return e.Underlying }

// Is matches other FetchErrors by code, otherwise defers to the underlying
// error chain.
func (e *FetchError) Is(target error) bool {
	if t, ok := target.(*FetchError); ok {
		return e.Code == t.Code
	}
	return errors.Is(e.Underlying, target)
}

func newFetchError(code ErrorCode, message string, err error) *FetchError {
	return &FetchError{Code: code, Message: message, Underlying: err}
}
