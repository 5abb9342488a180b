package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"sync"

	"github.com/reusee/dscope"
	"github.com/reusee/tapevm/bfconfigs"
	"github.com/reusee/tapevm/bfvm"
	"github.com/reusee/tapevm/checkpoints"
	"github.com/reusee/tapevm/cmds"
	"github.com/reusee/tapevm/debugs"
	"github.com/reusee/tapevm/logs"
	"github.com/reusee/tapevm/modes"
	"github.com/reusee/tapevm/syncs"
	"github.com/reusee/tapevm/vars"
	"golang.org/x/term"
)

var (
	files          = cmds.Collect[string]("-file")
	programText    = cmds.Var[string]("-e")
	inputText      = cmds.Var[string]("-input")
	jobs           = cmds.Var[int]("-jobs")
	checkpointPath = cmds.Var[string]("-checkpoint")
	tapOnFault     = cmds.Switch("-tap")
	printPartial   = cmds.Switch("-partial")
	replMode       = cmds.Switch("repl")
)

func init() {
	for name, desc := range map[string]string{
		"-file":       "run a program file, may be repeated",
		"-e":          "run the program text",
		"-input":      "input of read instructions, stdin if not a terminal",
		"-jobs":       "number of program files run concurrently",
		"-checkpoint": "save the VM here when the step budget runs out, and resume from it",
		"-tap":        "open a starlark REPL over the VM state on fault",
		"-partial":    "print the output produced before a fault",
		"repl":        "interactive mode, tape persists between lines",
	} {
		cmds.GlobalExecutor.Describe(name, desc)
	}
}

type source struct {
	name    string
	program string
}

type result struct {
	vm  *bfvm.VM
	err error
}

func main() {
	cmds.Execute(os.Args[1:])

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	if *replMode {
		// interrupts are scoped to each line
		scope.Call(func(
			newVM bfvm.NewVMFunc,
			execute bfvm.Execute,
			encoding bfconfigs.OutputEncoding,
		) {
			runREPL(context.Background(), newVM, execute, encoding)
		})
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var failed bool
	scope.Call(func(
		logger logs.Logger,
		defaultProgram bfconfigs.DefaultProgram,
		encoding bfconfigs.OutputEncoding,
		config bfvm.Config,
		newVM bfvm.NewVMFunc,
		execute bfvm.Execute,
		newStore checkpoints.NewStore,
		tap debugs.Tap,
	) {
		sources, err := loadSources(string(defaultProgram))
		if err != nil {
			logger.Error("load program", "error", err)
			failed = true
			return
		}
		input, err := readInput()
		if err != nil {
			logger.Error("read input", "error", err)
			failed = true
			return
		}

		var results []result
		if *checkpointPath != "" {
			if len(sources) != 1 {
				logger.Error("checkpoint needs exactly one program", "programs", len(sources))
				failed = true
				return
			}
			results = []result{
				runWithCheckpoint(ctx, logger, newStore(*checkpointPath), sources[0], input, config, newVM, execute),
			}
		} else {
			results = runAll(ctx, sources, input, newVM, execute)
		}

		for i, res := range results {
			name := sources[i].name
			if res.err != nil && *checkpointPath != "" && resumable(res.err) {
				failed = true
				logger.Info("run suspended", "program", name, "checkpoint", *checkpointPath)
				continue
			}
			if res.err != nil {
				failed = true
				logger.Error("run failed", "program", name, "error", res.err)
				var runtimeErr *bfvm.RuntimeError
				if *printPartial && errors.As(res.err, &runtimeErr) {
					writeOutput(os.Stdout, runtimeErr.Output, encoding)
				}
				if *tapOnFault && res.vm != nil {
					tap(ctx, name, res.vm.State())
				}
				continue
			}
			writeOutput(os.Stdout, res.vm.Output, encoding)
		}
	})

	if failed {
		os.Exit(1)
	}
}

func loadSources(defaultProgram string) ([]source, error) {
	var sources []source
	for _, path := range *files {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source{
			name:    path,
			program: string(content),
		})
	}
	if *programText != "" {
		sources = append(sources, source{
			name:    "-e",
			program: *programText,
		})
	}
	if len(sources) == 0 {
		sources = append(sources, source{
			name:    "default",
			program: defaultProgram,
		})
	}
	return sources, nil
}

func readInput() (string, error) {
	if *inputText != "" || term.IsTerminal(int(os.Stdin.Fd())) {
		return *inputText, nil
	}
	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func runAll(
	ctx context.Context,
	sources []source,
	input string,
	newVM bfvm.NewVMFunc,
	execute bfvm.Execute,
) []result {
	results := make([]result, len(sources))
	sem := syncs.NewSemaphore(vars.FirstNonZero(*jobs, runtime.NumCPU()))
	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Go(func() {
			sem.Acquire()
			defer sem.Release()
			vm, err := newVM(src.program, input)
			if err != nil {
				results[i] = result{err: err}
				return
			}
			results[i] = result{
				vm:  vm,
				err: execute(ctx, vm),
			}
		})
	}
	wg.Wait()
	return results
}

// resumable reports whether a VM stopped by err is left in a state worth checkpointing.
func resumable(err error) bool {
	return errors.Is(err, bfvm.ErrStepLimit) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// runWithCheckpoint resumes the VM in store if there is one, or starts src.
// A VM that suspends or is cancelled is saved back; one that finishes or
// faults has its checkpoint removed. The step budget and yield interval of
// config apply to a resumed VM, the rest of its config comes from the checkpoint.
func runWithCheckpoint(
	ctx context.Context,
	logger logs.Logger,
	store *checkpoints.Store,
	src source,
	input string,
	config bfvm.Config,
	newVM bfvm.NewVMFunc,
	execute bfvm.Execute,
) result {
	vm, checkpoint, err := store.Load()
	switch {
	case errors.Is(err, os.ErrNotExist):
		vm, err = newVM(src.program, input)
	case err == nil:
		if vm.Program.Source != src.program {
			logger.Warn("checkpoint program differs, resuming the checkpoint",
				"program", src.name,
				"checkpoint", checkpoint.ID,
			)
		}
		vm.Config.MaxSteps = config.MaxSteps
		vm.Config.YieldInterval = config.YieldInterval
	}
	if err != nil {
		return result{err: err}
	}

	err = execute(ctx, vm)
	if resumable(err) {
		if saveErr := store.Save(vm); saveErr != nil {
			return result{vm: vm, err: saveErr}
		}
		return result{vm: vm, err: err}
	}
	if err != nil {
		logger.Warn("run faulted, checkpoint removed", "program", src.name, "error", err)
	}
	if err := store.Remove(); err != nil {
		return result{vm: vm, err: err}
	}
	return result{vm: vm, err: err}
}

func writeOutput(w io.Writer, output []byte, encoding bfconfigs.OutputEncoding) {
	str := string(output)
	if encoding == bfconfigs.OutputLatin1 {
		str = bfvm.Latin1(str)
	}
	fmt.Fprintln(w, str)
}
