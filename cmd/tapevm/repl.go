package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/reusee/tapevm/bfconfigs"
	"github.com/reusee/tapevm/bfvm"
)

// runREPL runs each line on one VM. Tape, cursor and pending input carry
// over between lines. A line starting with ":in " appends the rest to the input.
func runREPL(
	ctx context.Context,
	newVM bfvm.NewVMFunc,
	execute bfvm.Execute,
	encoding bfconfigs.OutputEncoding,
) {
	var historyFile string
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".tapevm_history")
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "> ",
		HistoryFile: historyFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	defer rl.Close()

	vm, err := newVM("", "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}

	for {
		line, err := rl.Readline()
		if err != nil { // Ctrl-C or Ctrl-D
			break
		}
		replLine(ctx, vm, line, execute, encoding, os.Stdout, os.Stderr)
	}
}

// replLine runs one line on vm. An interrupt stops this line only.
func replLine(
	ctx context.Context,
	vm *bfvm.VM,
	line string,
	execute bfvm.Execute,
	encoding bfconfigs.OutputEncoding,
	stdout io.Writer,
	stderr io.Writer,
) {
	if line == "" {
		return
	}
	if rest, ok := strings.CutPrefix(line, ":in "); ok {
		vm.Feed(rest)
		return
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	written := len(vm.Output)
	vm.LoadProgram(bfvm.Compile(line))
	if err := execute(ctx, vm); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}
	if out := vm.Output[written:]; len(out) > 0 {
		writeOutput(stdout, out, encoding)
	}
	fmt.Fprintf(stderr, "cursor=%d cell=%d\n", vm.Cursor, vm.Cell())
}
