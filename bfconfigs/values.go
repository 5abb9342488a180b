package bfconfigs

import (
	"fmt"

	"github.com/reusee/tapevm/cmds"
	"github.com/reusee/tapevm/configs"
	"github.com/reusee/tapevm/vars"
)

var (
	tapeSizeFlag      = cmds.Var[int]("-tape-size")
	wideCursorFlag    = cmds.Switch("-wide-cursor")
	literalLoopsFlag  = cmds.Switch("-literal-loops")
	maxStepsFlag      = cmds.Var[int64]("-max-steps")
	yieldIntervalFlag = cmds.Var[int64]("-yield-interval")
	latin1Flag        = cmds.Switch("-latin1")
)

func init() {
	for name, desc := range map[string]string{
		"-tape-size":      "number of tape cells",
		"-wide-cursor":    "let the tape cursor address the whole tape",
		"-literal-loops":  "use the unpaired loop stack semantics",
		"-max-steps":      "instruction budget per run",
		"-yield-interval": "steps between cancellation checks",
		"-latin1":         "render output bytes as latin-1 code points",
	} {
		cmds.GlobalExecutor.Describe(name, desc)
	}
}

type TapeSize int

func (Module) TapeSize(
	loader configs.Loader,
) TapeSize {
	return TapeSize(vars.FirstNonZero(
		*tapeSizeFlag,
		configs.First[int](loader, "tape_size"),
	))
}

type WideCursor bool

func (Module) WideCursor(
	loader configs.Loader,
) WideCursor {
	return WideCursor(*wideCursorFlag || configs.First[bool](loader, "wide_cursor"))
}

type LiteralLoops bool

func (Module) LiteralLoops(
	loader configs.Loader,
) LiteralLoops {
	return LiteralLoops(*literalLoopsFlag || configs.First[bool](loader, "literal_loops"))
}

type MaxSteps int64

func (Module) MaxSteps(
	loader configs.Loader,
) MaxSteps {
	return MaxSteps(vars.FirstNonZero(
		*maxStepsFlag,
		configs.First[int64](loader, "max_steps"),
	))
}

type YieldInterval int64

func (Module) YieldInterval(
	loader configs.Loader,
) YieldInterval {
	return YieldInterval(vars.FirstNonZero(
		*yieldIntervalFlag,
		configs.First[int64](loader, "yield_interval"),
	))
}

// Greeting prints "Hello World!\n".
const Greeting = "++++++++++[>+++++++>++++++++++>+++>+<<<<-]>++.>+.+++++++..+++.>++.<<+++++++++++++++.>.+++.------.--------.>+.>."

// DefaultProgram runs when no program is given on the command line.
type DefaultProgram string

func (Module) DefaultProgram(
	loader configs.Loader,
) DefaultProgram {
	return DefaultProgram(vars.FirstNonZero(
		configs.First[string](loader, "default_program"),
		Greeting,
	))
}

type OutputEncoding string

const (
	OutputRaw    OutputEncoding = "raw"
	OutputLatin1 OutputEncoding = "latin1"
)

func (Module) OutputEncoding(
	loader configs.Loader,
) OutputEncoding {
	if *latin1Flag {
		return OutputLatin1
	}
	encoding := OutputEncoding(vars.FirstNonZero(
		configs.First[string](loader, "output_encoding"),
		string(OutputRaw),
	))
	switch encoding {
	case OutputRaw, OutputLatin1:
		return encoding
	}
	panic(fmt.Errorf("unknown output encoding: %s", encoding))
}
