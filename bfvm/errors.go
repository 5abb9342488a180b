package bfvm

import (
	"errors"
	"fmt"
)

var (
	ErrInputExhausted     = errors.New("input exhausted")
	ErrUnmatchedLoopOpen  = errors.New("unmatched loop open")
	ErrUnmatchedLoopClose = errors.New("unmatched loop close")
	ErrStepLimit          = errors.New("step limit reached")
	ErrInvalidConfig      = errors.New("invalid config")
)

// RuntimeError is a fault raised while executing a program.
// Output holds everything written before the fault.
type RuntimeError struct {
	Err    error
	IP     int
	Op     OpCode
	Output []byte
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%v: instruction %d (%v)", e.Err, e.IP, e.Op)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}
