package bfvm

import (
	"context"
)

// Run executes until the program ends, a fault occurs, or yield returns false.
// A fault is yielded as a *RuntimeError and stops execution. A stopped or
// suspended VM resumes from where it left off when Run is called again.
func (v *VM) Run(yield func(*Interrupt, error) bool) {
	ops := v.Program.Ops
	maxSteps := v.Config.MaxSteps
	interval := v.Config.YieldInterval
	var steps int64

	for v.IP < len(ops) {
		if maxSteps > 0 && steps >= maxSteps {
			yield(InterruptSuspend, nil)
			return
		}
		if interval > 0 && steps > 0 && steps%interval == 0 {
			if !yield(InterruptYield, nil) {
				return
			}
		}

		switch ops[v.IP] {

		case OpInc:
			v.Tape[v.Cursor]++

		case OpDec:
			v.Tape[v.Cursor]--

		case OpRight:
			v.Cursor++
			if v.Cursor == v.span {
				v.Cursor = 0
			}

		case OpLeft:
			if v.Cursor == 0 {
				v.Cursor = v.span
			}
			v.Cursor--

		case OpRead:
			if v.InputPos >= len(v.Input) {
				yield(nil, v.fault(ErrInputExhausted))
				return
			}
			v.Tape[v.Cursor] = byte(v.Input[v.InputPos])
			v.InputPos++

		case OpWrite:
			v.Output = append(v.Output, v.Tape[v.Cursor])

		case OpLoopOpen:
			if err := v.loopOpen(); err != nil {
				yield(nil, err)
				return
			}

		case OpLoopClose:
			if err := v.loopClose(); err != nil {
				yield(nil, err)
				return
			}

		}

		v.IP++
		v.Steps++
		steps++
	}
}

func (v *VM) loopOpen() error {
	if v.Config.Loops == LoopsLiteral {
		v.Loops = append(v.Loops, v.IP)
		if v.Tape[v.Cursor] != 0 {
			return nil
		}
		ops := v.Program.Ops
		for ip := v.IP; ip < len(ops); ip++ {
			if ops[ip] == OpLoopClose {
				v.IP = ip
				return nil
			}
		}
		return v.fault(ErrUnmatchedLoopOpen)
	}

	if v.Tape[v.Cursor] != 0 {
		return nil
	}
	target := v.Program.Jumps[v.IP]
	if target < 0 {
		return v.fault(ErrUnmatchedLoopOpen)
	}
	v.IP = target
	return nil
}

func (v *VM) loopClose() error {
	if v.Tape[v.Cursor] == 0 {
		return nil
	}

	if v.Config.Loops == LoopsLiteral {
		if len(v.Loops) == 0 {
			return v.fault(ErrUnmatchedLoopClose)
		}
		v.IP = v.Loops[len(v.Loops)-1]
		return nil
	}

	target := v.Program.Jumps[v.IP]
	if target < 0 {
		return v.fault(ErrUnmatchedLoopClose)
	}
	v.IP = target
	return nil
}

// Run executes program against input with the default config and returns the output.
func Run(program, input string) (string, error) {
	return RunContext(context.Background(), program, input, DefaultConfig())
}

const defaultCancelInterval = 1 << 16

// RunContext is Run with a config and cancellation. ctx is checked every
// config.YieldInterval steps, or every 65536 steps if the interval is zero.
// Exhausting config.MaxSteps fails with ErrStepLimit.
func RunContext(ctx context.Context, program, input string, config Config) (string, error) {
	if config.YieldInterval == 0 && ctx.Done() != nil {
		config.YieldInterval = defaultCancelInterval
	}
	vm, err := NewVM(Compile(program), input, config)
	if err != nil {
		return "", err
	}
	if err := vm.RunContext(ctx); err != nil {
		return "", err
	}
	return string(vm.Output), nil
}

// RunContext drives Run until completion, fault, cancellation or suspension.
func (v *VM) RunContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return v.fault(err)
	}
	for interrupt, err := range v.Run {
		if err != nil {
			return err
		}
		if interrupt == InterruptSuspend {
			return v.fault(ErrStepLimit)
		}
		if err := ctx.Err(); err != nil {
			return v.fault(err)
		}
	}
	return nil
}
