package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ErrUnknownCommand reports a command name outside the registry.
var ErrUnknownCommand = errors.New("unknown command")

// commandEntry binds a command name to its constructor. The registry is
// assembled here, at startup, so the full command set is visible in one
// place instead of being discovered at runtime.
type commandEntry struct {
	name      string
	construct func(*app) *cobra.Command
}

var registry = []commandEntry{
	{name: "init", construct: newInitCmd},
	{name: "remote", construct: newRemoteCmd},
	{name: "status", construct: newStatusCmd},
	{name: "info", construct: newInfoCmd},
}

// lookup resolves a command name against the registry.
func lookup(name string) (commandEntry, error) {
	for _, entry := range registry {
		if entry.name == name {
			return entry, nil
		}
	}
	return commandEntry{}, fmt.Errorf("%w %q: run 'lingo --help' for the command list", ErrUnknownCommand, name)
}
