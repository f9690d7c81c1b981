package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoCommand struct {
	trace *[]string
}

func (e *echoCommand) Name() string        { return "echo" }
func (e *echoCommand) Description() string { return "echoes" }
func (e *echoCommand) Run(ctx context.Context, inv *Invocation) error {
	*e.trace = append(*e.trace, "base")
	return nil
}

func tracing(label string, trace *[]string) Middleware {
	return func(c Command) Command {
		return Wrap(c, func(ctx context.Context, inv *Invocation) error {
			*trace = append(*trace, label)
			return c.Run(ctx, inv)
		})
	}
}

func TestApplyFirstMiddlewareIsOutermost(t *testing.T) {
	var trace []string
	c := Apply(&echoCommand{trace: &trace}, tracing("inner", &trace), tracing("outer", &trace))

	require.NoError(t, c.Run(context.Background(), &Invocation{}))
	assert.Equal(t, []string{"outer", "inner", "base"}, trace)
}

func TestRootPeelsAllLayers(t *testing.T) {
	var trace []string
	base := &echoCommand{trace: &trace}
	c := Apply(base, tracing("a", &trace), tracing("b", &trace))

	assert.Same(t, base, Root(c).(*echoCommand))
	assert.Same(t, base, Root(Command(base)).(*echoCommand))
}

func TestWrappedKeepsIdentity(t *testing.T) {
	var trace []string
	base := &echoCommand{trace: &trace}
	c := Wrap(base, func(ctx context.Context, inv *Invocation) error { return nil })

	assert.Equal(t, "echo", c.Name())
	assert.Equal(t, "echoes", c.Description())
}

func TestRegistryReturnsSorted(t *testing.T) {
	var trace []string
	r := NewRegistry()
	r.Register(Wrap(&echoCommand{trace: &trace}, nil))

	all := r.GetAll()
	require.Len(t, all, 1)
	assert.Equal(t, "echo", all[0].Name())
	assert.NotNil(t, r.Get("echo"))
	assert.Nil(t, r.Get("missing"))
}
