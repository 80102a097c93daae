package models

// ErrorKind classifies per-URL failures for logging and run history.
// Per-URL errors are recovered locally: they get a log line and an error note
// in the report, but never abort the run.
type ErrorKind string

const (
	ErrInvalidURL  ErrorKind = "invalid_url"
	ErrTimeout     ErrorKind = "timeout"
	ErrConnection  ErrorKind = "connection_error"
	ErrHTTPStatus  ErrorKind = "http_error"
	ErrParse       ErrorKind = "parse_error"
	ErrUnreachable ErrorKind = "unreachable" // preflight HEAD check failed
)
