package main

// Exit codes shared by all subcommands.
const (
	ExitSuccess     = 0 // Success, no error-severity issues
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (bad config file, unknown style)
	ExitDataError   = 3 // Data error (unreadable document, unsupported format)
	ExitIssuesFound = 4 // Validation completed and found error-severity issues
)
