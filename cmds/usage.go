package cmds

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
)

func (e *Executor) PrintUsage() {
	e.WriteUsage(os.Stderr)
}

func (e *Executor) WriteUsage(w io.Writer) {
	writeCommands(w, e.commands, 0)
}

func writeCommands(w io.Writer, commands map[string]*Command, depth int) {
	names := slices.Sorted(maps.Keys(commands))
	indent := strings.Repeat("  ", depth)
	for _, name := range names {
		command := commands[name]
		if command == nil || slices.Contains(command.Aliases, name) {
			continue
		}

		line := indent + name
		if len(command.Aliases) > 0 {
			line += " (" + strings.Join(command.Aliases, ", ") + ")"
		}
		if command.Description != "" {
			line += "\t" + command.Description
		}
		fmt.Fprintln(w, line)

		if len(command.Subs) > 0 {
			writeCommands(w, command.Subs, depth+1)
		}
	}
}
