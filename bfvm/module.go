package bfvm

import (
	"context"
	"errors"
	"time"

	"github.com/reusee/dscope"
	"github.com/reusee/tapevm/bfconfigs"
	"github.com/reusee/tapevm/logs"
)

type Module struct {
	dscope.Module
	Configs bfconfigs.Module
	Logs    logs.Module
}

func (Module) Config(
	tapeSize bfconfigs.TapeSize,
	wideCursor bfconfigs.WideCursor,
	literalLoops bfconfigs.LiteralLoops,
	maxSteps bfconfigs.MaxSteps,
	yieldInterval bfconfigs.YieldInterval,
) Config {
	config := Config{
		TapeSize:      int(tapeSize),
		WideCursor:    bool(wideCursor),
		MaxSteps:      int64(maxSteps),
		YieldInterval: int64(yieldInterval),
	}
	if literalLoops {
		config.Loops = LoopsLiteral
	}
	return config
}

type NewVMFunc func(program string, input string) (*VM, error)

func (Module) NewVM(
	config Config,
) NewVMFunc {
	return func(program string, input string) (*VM, error) {
		return NewVM(Compile(program), input, config)
	}
}

// Execute runs vm in a new span until it finishes, faults, is cancelled or suspends.
type Execute func(ctx context.Context, vm *VM) error

func (Module) Execute(
	logger logs.Logger,
	newSpan logs.NewSpan,
) Execute {
	return func(ctx context.Context, vm *VM) error {
		if vm.Config.YieldInterval == 0 && ctx.Done() != nil {
			vm.Config.YieldInterval = defaultCancelInterval
		}
		ctx, _ = newSpan(ctx, "")
		logger.DebugContext(ctx, "run",
			"instructions", vm.Program.Len(),
			"ip", vm.IP,
			"loops", vm.Config.Loops,
			"wide_cursor", vm.Config.WideCursor,
		)

		start := time.Now()
		steps := vm.Steps
		err := vm.RunContext(ctx)
		args := []any{
			"steps", vm.Steps - steps,
			"output", len(vm.Output),
			"duration", time.Since(start),
		}

		switch {
		case err == nil:
			logger.DebugContext(ctx, "run done", args...)
		case errors.Is(err, ErrStepLimit):
			logger.InfoContext(ctx, "run suspended", append(args, "ip", vm.IP)...)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			logger.InfoContext(ctx, "run cancelled", append(args, "ip", vm.IP)...)
		default:
			logger.WarnContext(ctx, "run fault", append(args, "error", err)...)
		}

		return logs.WrapSpan(ctx, err)
	}
}
