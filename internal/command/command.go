// Package command maps command names to handlers and implements the
// keeva command set: PING, ECHO, GET, SET and RPUSH.
//
// Argument errors are never Go errors; they surface to the client as
// BulkError replies of the shape "ERR <reason> for '<NAME>' command"
// and leave the connection open.
package command

import (
	"sort"
	"strings"

	"github.com/keevadb/keeva-go/internal/resp"
	"github.com/keevadb/keeva-go/internal/store"
)

// Command is one executable database command.
type Command interface {
	// Name is the registration name, conventionally uppercase.
	Name() string

	// Handle runs the command against the shared store. args excludes
	// the command name itself.
	Handle(args []resp.Value, st *store.Store) resp.Value
}

// Registry holds the command set, keyed by uppercase name. The set is
// fixed after construction and shared read-only by all connections.
type Registry struct {
	commands map[string]Command
}

// NewRegistry creates a registry holding the given commands.
func NewRegistry(cmds ...Command) *Registry {
	r := &Registry{commands: make(map[string]Command, len(cmds))}
	for _, cmd := range cmds {
		r.Register(cmd)
	}
	return r
}

// Default returns the full keeva command set.
func Default() *Registry {
	return NewRegistry(Ping{}, Echo{}, Get{}, Set{}, Rpush{})
}

// Register adds one command, normalizing its name to uppercase.
func (r *Registry) Register(cmd Command) {
	r.commands[strings.ToUpper(cmd.Name())] = cmd
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch looks up name case-insensitively and runs its handler. An
// unknown command yields a SimpleError without touching the store.
func (r *Registry) Dispatch(name string, args []resp.Value, st *store.Store) resp.Value {
	cmd, ok := r.commands[strings.ToUpper(name)]
	if !ok {
		return resp.SimpleError("ERR Command (" + name + ") is not valid")
	}
	return cmd.Handle(args, st)
}

// argError wraps an argument-extraction failure in the fixed reply
// shape shared by every command.
func argError(cmd, reason string) resp.Value {
	return resp.BulkError("ERR " + reason + " for '" + cmd + "' command")
}
