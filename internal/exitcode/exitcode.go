// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, bad task reference, unknown task).
	UserError = 1

	// ConfigError indicates an unreadable config file or invalid setting.
	ConfigError = 2

	// BackendError indicates an API/network error.
	BackendError = 3
)
