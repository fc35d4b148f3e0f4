package domain

import "context"

// Completer is a remote chat completion API.
type Completer interface {
	// Complete performs a single completion call. Any transport or provider
	// failure is returned as an error; an empty Content is not an error.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error)

	// Name returns the completer identifier.
	Name() string
}

// CompleterRegistry manages available completers.
type CompleterRegistry interface {
	// Register adds a completer to the registry.
	Register(ctx context.Context, completer Completer) error

	// Get retrieves a completer by name.
	Get(ctx context.Context, name string) (Completer, error)

	// List returns the names of all registered completers.
	List(ctx context.Context) ([]string, error)
}
