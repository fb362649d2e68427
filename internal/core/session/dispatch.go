package session

import (
	"context"
	"fmt"
	"strings"

	"discogs-cli/internal/shared"
)

const separator = "────────────────────────────────────────"

// Dispatcher tokenizes raw input lines and routes them to registered
// command handlers.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a dispatcher over a registry.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Execute runs one input line. The returned bool is true to continue the
// session. Handler errors are not caught here; the session loop decides
// how to report them.
func (d *Dispatcher) Execute(ctx context.Context, raw string, sctx *Context) (bool, error) {
	name, args := Tokenize(raw)
	if name == "" {
		return true, nil
	}

	trimmed := strings.TrimSpace(raw)
	if sctx.Log != nil {
		if err := sctx.Log.Append("command: " + trimmed); err != nil {
			sctx.Services.Logger.Warning("Could not write session log: %v", err)
		}
	}

	if sctx.Flags.Verbose {
		shared.ColorHeader.Printf("» input=%q command=%s args=%d\n", trimmed, name, len(args))
	} else {
		fmt.Println(separator)
	}
	defer fmt.Println(separator)

	cmd := d.registry.Find(name)
	if cmd == nil {
		sctx.Services.Logger.Error("Unknown command: %s", name)
		sctx.Services.Logger.Info("Type 'help' to list available commands.")
		return true, nil
	}

	if len(args) < cmd.MinArgs {
		sctx.Services.Logger.Error("Missing arguments for '%s'", cmd.Name)
		sctx.Services.Logger.Info("Usage: %s", cmd.Usage)
		return true, nil
	}

	return cmd.Handler(ctx, args, sctx)
}
