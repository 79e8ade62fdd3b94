// Package cmd provides command implementations for the shellpack CLI.
package cmd

// Exit codes for the shellpack CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates configuration validation failed.
	ExitValidationError = 2

	// ExitBundleError indicates a bundling step failed.
	ExitBundleError = 3

	// ExitSetupError indicates the output root could not be prepared.
	ExitSetupError = 4

	// ExitNotFound indicates an entry point, tool, or config file was not found.
	ExitNotFound = 5
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitBundleError:
		return "Bundle Error"
	case ExitSetupError:
		return "Setup Error"
	case ExitNotFound:
		return "Not Found"
	default:
		return "Unknown"
	}
}
