package bfvm

type OpCode uint8

const (
	OpNop OpCode = iota
	OpInc
	OpDec
	OpRight
	OpLeft
	OpRead
	OpWrite
	OpLoopOpen
	OpLoopClose
)

func Decode(r rune) OpCode {
	switch r {
	case '+':
		return OpInc
	case '-':
		return OpDec
	case '>':
		return OpRight
	case '<':
		return OpLeft
	case ',':
		return OpRead
	case '.':
		return OpWrite
	case '[':
		return OpLoopOpen
	case ']':
		return OpLoopClose
	}
	return OpNop
}

func (o OpCode) String() string {
	switch o {
	case OpInc:
		return "+"
	case OpDec:
		return "-"
	case OpRight:
		return ">"
	case OpLeft:
		return "<"
	case OpRead:
		return ","
	case OpWrite:
		return "."
	case OpLoopOpen:
		return "["
	case OpLoopClose:
		return "]"
	}
	return "nop"
}
