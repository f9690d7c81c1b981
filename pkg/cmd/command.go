// Package cmd is the transport-agnostic command core. A command is a name,
// a description, and Run(ctx, invocation); everything transport-specific,
// like Discord slash registration or message dispatch, lives in adapters
// that wrap it.
package cmd

import "context"

// Invocation is the input any runner can hand a command: positional args
// plus an opaque payload. Adapters put their own context in Data, for
// Discord that is a session and the triggering event.
type Invocation struct {
	Args []string
	Data interface{}
}

// Command is the universal contract. Anything richer, such as subcommands
// or permission metadata, belongs to the adapter layer.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}
