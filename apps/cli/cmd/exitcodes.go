package cmd

// Exit codes for respvars CLI
const (
	// ExitSuccess indicates the command completed
	ExitSuccess = 0

	// ExitHookError indicates the hook or a store operation failed
	ExitHookError = 1

	// ExitDefinitionError indicates invalid variable definitions
	ExitDefinitionError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitNetworkError indicates a network/connection error
	ExitNetworkError = 4

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
