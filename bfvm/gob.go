package bfvm

import (
	"encoding/gob"
	"fmt"
	"io"
	"slices"
)

type snapshot struct {
	Source   string
	Config   Config
	IP       int
	Cursor   int
	Tape     []byte
	Loops    []int
	Input    []rune
	InputPos int
	Output   []byte
	Steps    int64
}

// Save writes the complete VM state to w.
func (v *VM) Save(w io.Writer) error {
	return gob.NewEncoder(w).Encode(snapshot{
		Source:   v.Program.Source,
		Config:   v.Config,
		IP:       v.IP,
		Cursor:   v.Cursor,
		Tape:     v.Tape,
		Loops:    v.Loops,
		Input:    v.Input,
		InputPos: v.InputPos,
		Output:   v.Output,
		Steps:    v.Steps,
	})
}

// Load reads a VM saved by Save.
func Load(r io.Reader) (*VM, error) {
	var s snapshot
	if err := gob.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	vm, err := NewVM(Compile(s.Source), "", s.Config)
	if err != nil {
		return nil, err
	}

	switch {
	case len(s.Tape) != len(vm.Tape):
		return nil, fmt.Errorf("bad snapshot: tape size %d, config says %d", len(s.Tape), len(vm.Tape))
	case s.IP < 0 || s.IP > vm.Program.Len():
		return nil, fmt.Errorf("bad snapshot: instruction cursor %d out of range", s.IP)
	case s.Cursor < 0 || s.Cursor >= vm.span:
		return nil, fmt.Errorf("bad snapshot: tape cursor %d out of range", s.Cursor)
	case s.InputPos < 0 || s.InputPos > len(s.Input):
		return nil, fmt.Errorf("bad snapshot: input cursor %d out of range", s.InputPos)
	case slices.ContainsFunc(s.Loops, func(ip int) bool {
		return ip < 0 || ip >= vm.Program.Len() || vm.Program.Ops[ip] != OpLoopOpen
	}):
		return nil, fmt.Errorf("bad snapshot: loop stack %v does not point at loop opens", s.Loops)
	}

	vm.IP = s.IP
	vm.Cursor = s.Cursor
	copy(vm.Tape, s.Tape)
	vm.Loops = s.Loops
	vm.Input = s.Input
	vm.InputPos = s.InputPos
	vm.Output = s.Output
	vm.Steps = s.Steps
	return vm, nil
}
