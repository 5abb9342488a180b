package bfvm

import "fmt"

const (
	DefaultTapeSize = 30000

	// the tape cursor is 8 bits wide unless Config.WideCursor is set
	narrowCursorSpan = 256
)

type LoopMode uint8

const (
	// LoopsMatched jumps between brackets paired at compile time.
	LoopsMatched LoopMode = iota
	// LoopsLiteral keeps a loop stack that is never popped, and skips a loop
	// body by scanning for the first ']' regardless of nesting.
	// A ']' taken with an empty stack faults with ErrUnmatchedLoopClose
	// rather than falling through.
	LoopsLiteral
)

func (m LoopMode) String() string {
	switch m {
	case LoopsMatched:
		return "matched"
	case LoopsLiteral:
		return "literal"
	}
	return fmt.Sprintf("LoopMode(%d)", uint8(m))
}

type Config struct {
	// TapeSize is the number of cells. Zero means DefaultTapeSize.
	TapeSize int
	// WideCursor lets the tape cursor address the whole tape.
	// Otherwise it wraps within the first 256 cells.
	WideCursor bool
	Loops      LoopMode
	// MaxSteps bounds the instructions executed by one Run call. Zero is unbounded.
	MaxSteps int64
	// YieldInterval is the number of steps between InterruptYield. Zero never yields.
	YieldInterval int64
}

func DefaultConfig() Config {
	return Config{
		TapeSize: DefaultTapeSize,
	}
}

func (c Config) normalize() (Config, error) {
	if c.TapeSize == 0 {
		c.TapeSize = DefaultTapeSize
	}
	switch {
	case c.TapeSize < 0:
		return c, fmt.Errorf("%w: tape size %d", ErrInvalidConfig, c.TapeSize)
	case !c.WideCursor && c.TapeSize < narrowCursorSpan:
		return c, fmt.Errorf("%w: tape size %d is smaller than the 8-bit cursor range", ErrInvalidConfig, c.TapeSize)
	case c.Loops != LoopsMatched && c.Loops != LoopsLiteral:
		return c, fmt.Errorf("%w: loop mode %v", ErrInvalidConfig, c.Loops)
	case c.MaxSteps < 0:
		return c, fmt.Errorf("%w: max steps %d", ErrInvalidConfig, c.MaxSteps)
	case c.YieldInterval < 0:
		return c, fmt.Errorf("%w: yield interval %d", ErrInvalidConfig, c.YieldInterval)
	}
	return c, nil
}

// cursorSpan is the modulus of tape cursor movement.
func (c Config) cursorSpan() int {
	if c.WideCursor {
		return c.TapeSize
	}
	return narrowCursorSpan
}
