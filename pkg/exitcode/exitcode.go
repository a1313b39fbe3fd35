// Package exitcode provides standardized exit codes for vidlist
package exitcode

// Exit codes for vidlist CLI
const (
	Success         = 0
	GeneralError    = 1
	ConfigError     = 2
	ValidationError = 3
	FileSystemError = 4
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Configuration error"
	case ValidationError:
		return "Generated content is stale"
	case FileSystemError:
		return "File system error"
	default:
		return "Unknown error"
	}
}
