package session

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Handler executes one command. The returned bool is true to continue
// the session and false to terminate it. Errors propagate to the session
// loop, which logs them and keeps the loop alive.
type Handler func(ctx context.Context, args []string, sctx *Context) (bool, error)

// Command is the static descriptor for one session command.
type Command struct {
	Name        string
	Aliases     []string
	MinArgs     int
	Usage       string
	Description string
	Handler     Handler
}

// Registry resolves command names and aliases case-insensitively. The
// alias index is built once at construction; duplicate names or aliases
// are a configuration error surfaced at startup.
type Registry struct {
	commands []*Command
	index    map[string]*Command
}

// NewRegistry builds a registry from descriptors, failing on any name or
// alias collision.
func NewRegistry(commands []*Command) (*Registry, error) {
	r := &Registry{
		commands: commands,
		index:    make(map[string]*Command),
	}
	for _, cmd := range commands {
		for _, key := range append([]string{cmd.Name}, cmd.Aliases...) {
			lower := strings.ToLower(key)
			if existing, ok := r.index[lower]; ok {
				return nil, fmt.Errorf("command name/alias collision: %q used by both %q and %q", key, existing.Name, cmd.Name)
			}
			r.index[lower] = cmd
		}
	}
	return r, nil
}

// Find resolves a token to its descriptor, or nil if unknown.
func (r *Registry) Find(token string) *Command {
	return r.index[strings.ToLower(token)]
}

// Names returns all canonical command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for _, cmd := range r.commands {
		names = append(names, cmd.Name)
	}
	sort.Strings(names)
	return names
}

// Commands returns the descriptors in registration order, for help text.
func (r *Registry) Commands() []*Command {
	return r.commands
}
