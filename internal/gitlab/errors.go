package gitlab

import "errors"

var (
	// ErrNotFound means the project, merge request or commit does not exist
	// (or the token cannot see it).
	ErrNotFound = errors.New("gitlab: not found")

	// ErrAuthentication means GitLab rejected the configured token.
	ErrAuthentication = errors.New("gitlab: authentication failed")
)

// NetworkError wraps transport failures and unexpected upstream statuses
// distinct from the semantic errors above.
type NetworkError struct{ Err error }

func (e NetworkError) Error() string { return "gitlab network: " + e.Err.Error() }
func (e NetworkError) Unwrap() error { return e.Err }
