// Package cli parses the tool's command line with kingpin. Validation failures
// are returned as ExitError so the entry point decides how the process exits.
package cli
