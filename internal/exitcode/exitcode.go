// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, empty text, unknown task id).
	UserError = 1

	// ConfigError indicates a configuration or startup error (bad server URL,
	// unreadable config file, listener failure).
	ConfigError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)
