package domain

import "errors"

// Sentinel errors returned by the database access boundary.
// Handlers translate these to HTTP status codes via a single mapError function.
var (
	ErrConfigMissing = errors.New("database connection string is not configured")
	ErrUnreachable   = errors.New("database is unreachable")
	ErrAuthFailed    = errors.New("database authentication failed")
)
