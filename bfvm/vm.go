package bfvm

type VM struct {
	Program *Program
	Config  Config

	IP       int
	Cursor   int
	Tape     []byte
	Loops    []int
	Input    []rune
	InputPos int
	Output   []byte
	Steps    int64

	span int
}

func NewVM(program *Program, input string, config Config) (*VM, error) {
	config, err := config.normalize()
	if err != nil {
		return nil, err
	}
	return &VM{
		Program: program,
		Config:  config,
		Tape:    make([]byte, config.TapeSize),
		Input:   []rune(input),
		span:    config.cursorSpan(),
	}, nil
}

// Done reports whether the instruction cursor reached the end of the program.
func (v *VM) Done() bool {
	return v.IP >= v.Program.Len()
}

// Cell returns the value under the tape cursor.
func (v *VM) Cell() byte {
	return v.Tape[v.Cursor]
}

// Feed appends more input for subsequent read instructions.
func (v *VM) Feed(input string) {
	v.Input = append(v.Input, []rune(input)...)
}

// LoadProgram replaces the program and rewinds the instruction cursor.
// Tape, cursors, input and output are kept.
func (v *VM) LoadProgram(program *Program) {
	v.Program = program
	v.IP = 0
	v.Loops = v.Loops[:0]
}

func (v *VM) fault(err error) *RuntimeError {
	ret := &RuntimeError{
		Err:    err,
		IP:     v.IP,
		Output: append([]byte(nil), v.Output...),
	}
	if v.IP < v.Program.Len() {
		ret.Op = v.Program.Ops[v.IP]
	}
	return ret
}
