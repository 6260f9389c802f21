package ai

import "errors"

var (
	// ErrQuotaExceeded means the completion API reported an exhausted quota
	// or rate limit. The API key is typically valid.
	ErrQuotaExceeded = errors.New("ai: quota exceeded")

	// ErrAuthentication means the completion API rejected the API key.
	ErrAuthentication = errors.New("ai: invalid credentials")
)

// NetworkError wraps transport failures and upstream errors that are not
// quota or credential problems.
type NetworkError struct{ Err error }

func (e NetworkError) Error() string { return "ai network: " + e.Err.Error() }
func (e NetworkError) Unwrap() error { return e.Err }
