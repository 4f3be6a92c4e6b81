// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, validation, not found,
	// invalid transition).
	UserError = 1

	// ConfigError indicates a configuration error.
	ConfigError = 2

	// StorageError indicates a storage/document error.
	StorageError = 3
)
