package bfvm

// Program is a decoded source text. One source character is one instruction.
type Program struct {
	Source string
	Ops    []OpCode
	// Jumps maps each bracket to the position of its partner, -1 if it has none.
	// Non-bracket positions hold -1.
	Jumps []int
}

func Compile(source string) *Program {
	runes := []rune(source)
	program := &Program{
		Source: source,
		Ops:    make([]OpCode, len(runes)),
		Jumps:  make([]int, len(runes)),
	}

	var opens []int
	for i, r := range runes {
		op := Decode(r)
		program.Ops[i] = op
		program.Jumps[i] = -1

		switch op {
		case OpLoopOpen:
			opens = append(opens, i)
		case OpLoopClose:
			if len(opens) == 0 {
				// unmatched, faults when taken
				continue
			}
			open := opens[len(opens)-1]
			opens = opens[:len(opens)-1]
			program.Jumps[open] = i
			program.Jumps[i] = open
		}
	}

	return program
}

func (p *Program) Len() int {
	return len(p.Ops)
}
