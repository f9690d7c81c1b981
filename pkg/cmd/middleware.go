package cmd

import "context"

// Middleware decorates a command and returns it still as a Command, so
// chains compose freely.
type Middleware func(Command) Command

// Apply wraps c in the given middlewares. The first middleware listed ends
// up outermost.
func Apply(c Command, mws ...Middleware) Command {
	for _, mw := range mws {
		c = mw(c)
	}
	return c
}

// Unwrappable is implemented by decorated commands so adapters can reach
// through to the base command and its interfaces.
type Unwrappable interface {
	Command
	Unwrap() Command
}

type wrapped struct {
	inner Command
	run   func(ctx context.Context, inv *Invocation) error
}

func (w *wrapped) Name() string        { return w.inner.Name() }
func (w *wrapped) Description() string { return w.inner.Description() }

func (w *wrapped) Run(ctx context.Context, inv *Invocation) error {
	if w.run != nil {
		return w.run(ctx, inv)
	}
	return w.inner.Run(ctx, inv)
}

func (w *wrapped) Unwrap() Command { return w.inner }

// Wrap builds a middleware layer: the returned command runs run in place
// of c.Run while keeping c's identity, and exposes c through Unwrap.
func Wrap(c Command, run func(ctx context.Context, inv *Invocation) error) Command {
	return &wrapped{inner: c, run: run}
}

// Root peels middleware layers until it reaches a command that is not
// Unwrappable. Type assertions against adapter interfaces go through here.
func Root(c Command) Command {
	for {
		u, ok := c.(Unwrappable)
		if !ok {
			return c
		}
		c = u.Unwrap()
	}
}
