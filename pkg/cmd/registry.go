package cmd

import "sort"

// DefaultRegistry is the process-wide registry commands join from init().
var DefaultRegistry = NewRegistry()

// Registry stores commands by name. It never dispatches; adapters look
// commands up and invoke them with their own context.
type Registry struct {
	commands map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command, replacing any previous command with the same name.
func (r *Registry) Register(c Command) {
	r.commands[c.Name()] = c
}

// Get returns the named command, or nil.
func (r *Registry) Get(name string) Command {
	return r.commands[name]
}

// GetAll returns every registered command, sorted by name.
func (r *Registry) GetAll() []Command {
	list := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}
