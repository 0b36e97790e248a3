package main

// Exit codes used by all cw commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration/environment error (bad config, missing tool)
	ExitDataError   = 3 // Data error (unparseable bibliography, malformed input)
)
