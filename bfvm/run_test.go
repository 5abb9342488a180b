package bfvm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/reusee/tapevm/bfconfigs"
)

func TestRun(t *testing.T) {
	testCases := []struct {
		name     string
		program  string
		input    string
		expected string
	}{
		{"empty", "", "", ""},
		{"inert", "hello world\n# no instructions here", "", ""},
		{"add", "+++.", "", "\x03"},
		{"echo", ",.", "A", "A"},
		{"multiply", "++[>++++<-]>.", "", "\x08"},
		{"greeting", bfconfigs.Greeting, "", "Hello World!\n"},
		{"cell overflow", strings.Repeat("+", 256) + ".", "", "\x00"},
		{"cell underflow", "-.", "", "\xff"},
		{"cursor wraps right", "+" + strings.Repeat(">", 256) + ".", "", "\x01"},
		{"cursor wraps left", "<+" + strings.Repeat(">", 256) + ".", "", "\x01"},
		{"skip loop", "[+++.]+.", "", "\x01"},
		{"countdown", "+++[.-]", "", "\x03\x02\x01"},
		{"move loop", "+++++[>+<-]>.", "", "\x05"},
		{"nested", "++[>+<-[>+<-]]>.", "", "\x02"},
		{"nested skip", "[[].].", "", "\x00"},
		{"comments in loops", "++ two [ loop > ++++ four < - ] > .", "", "\x08"},
		{"read truncates", ",.,.", "Āé", "\x00\xe9"},
		{"input left over", ",.", "xyz", "x"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			output, err := Run(tc.program, tc.input)
			if err != nil {
				t.Fatal(err)
			}
			if output != tc.expected {
				t.Fatalf("got %q, want %q", output, tc.expected)
			}
		})
	}
}

func TestZeroLoopIsRemovable(t *testing.T) {
	for _, program := range []string{
		">+<[->+<]>.",
		">+<[[-]>[-]<]>.",
		">+<[,,,.]>.",
	} {
		withLoop, err := Run(program, "")
		if err != nil {
			t.Fatal(err)
		}
		start := strings.Index(program, "[")
		end := strings.LastIndex(program, "]")
		withoutLoop, err := Run(program[:start]+program[end+1:], "")
		if err != nil {
			t.Fatal(err)
		}
		if withLoop != withoutLoop {
			t.Fatalf("%s: got %q, want %q", program, withLoop, withoutLoop)
		}
	}
}

func TestLoopRunsNTimes(t *testing.T) {
	for n := range 20 {
		program := strings.Repeat("+", n) + "[>+++<-]>."
		output, err := Run(program, "")
		if err != nil {
			t.Fatal(err)
		}
		if output != string([]byte{byte(3 * n)}) {
			t.Fatalf("n=%d: got %q", n, output)
		}
	}
}

func TestFaults(t *testing.T) {
	testCases := []struct {
		name    string
		program string
		input   string
		loops   LoopMode
		err     error
		ip      int
		output  string
	}{
		{"input exhausted", ",", "", LoopsMatched, ErrInputExhausted, 0, ""},
		{"input exhausted after output", "+.,", "", LoopsMatched, ErrInputExhausted, 2, "\x01"},
		{"second read", ",.,.", "a", LoopsMatched, ErrInputExhausted, 2, "a"},
		{"unmatched open", "[", "", LoopsMatched, ErrUnmatchedLoopOpen, 0, ""},
		{"unmatched close", "+.]", "", LoopsMatched, ErrUnmatchedLoopClose, 2, "\x01"},
		{"literal input exhausted", ",", "", LoopsLiteral, ErrInputExhausted, 0, ""},
		{"literal unmatched open", "+.-[", "", LoopsLiteral, ErrUnmatchedLoopOpen, 3, "\x01"},
		{"literal unmatched close", "+]", "", LoopsLiteral, ErrUnmatchedLoopClose, 1, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig()
			config.Loops = tc.loops
			output, err := RunContext(context.Background(), tc.program, tc.input, config)
			if !errors.Is(err, tc.err) {
				t.Fatalf("got %v", err)
			}
			if output != "" {
				t.Fatalf("got output %q", output)
			}
			var runtimeErr *RuntimeError
			if !errors.As(err, &runtimeErr) {
				t.Fatalf("got %T", err)
			}
			if runtimeErr.IP != tc.ip {
				t.Fatalf("got ip %d", runtimeErr.IP)
			}
			if string(runtimeErr.Output) != tc.output {
				t.Fatalf("got partial output %q", runtimeErr.Output)
			}
		})
	}
}

func TestUntakenUnmatchedBrackets(t *testing.T) {
	for _, loops := range []LoopMode{LoopsMatched, LoopsLiteral} {
		config := DefaultConfig()
		config.Loops = loops
		// an unmatched '[' over a non-zero cell and an unmatched ']' over a zero cell never jump
		for _, program := range []string{"+[.", "].", "+[-]]."} {
			if _, err := RunContext(context.Background(), program, "", config); err != nil {
				t.Fatalf("%v %s: %v", loops, program, err)
			}
		}
	}
}

func TestLiteralLoops(t *testing.T) {
	config := DefaultConfig()
	config.Loops = LoopsLiteral

	output, err := RunContext(context.Background(), bfconfigs.Greeting, "", config)
	if err != nil {
		t.Fatal(err)
	}
	if output != "Hello World!\n" {
		t.Fatalf("got %q", output)
	}

	// the body skip stops at the first ']', entering the outer loop body
	output, err = RunContext(context.Background(), "[[].].", "", config)
	if err != nil {
		t.Fatal(err)
	}
	if output != "\x00\x00" {
		t.Fatalf("got %q", output)
	}

	// a finished inner loop stays on the stack, so the outer ']' re-enters it forever
	config.MaxSteps = 1000
	_, err = RunContext(context.Background(), "++[>++[-]<-]>.", "", config)
	if !errors.Is(err, ErrStepLimit) {
		t.Fatalf("got %v", err)
	}
	config.Loops = LoopsMatched
	output, err = RunContext(context.Background(), "++[>++[-]<-]>.", "", config)
	if err != nil {
		t.Fatal(err)
	}
	if output != "\x00" {
		t.Fatalf("got %q", output)
	}
}

func TestWideCursor(t *testing.T) {
	config := DefaultConfig()
	config.WideCursor = true
	vm, err := NewVM(Compile(strings.Repeat(">", 256)+"+"), "", config)
	if err != nil {
		t.Fatal(err)
	}
	if err := vm.RunContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if vm.Cursor != 256 || vm.Tape[256] != 1 || vm.Tape[0] != 0 {
		t.Fatalf("got cursor %d", vm.Cursor)
	}

	vm, err = NewVM(Compile("<+"), "", config)
	if err != nil {
		t.Fatal(err)
	}
	if err := vm.RunContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if vm.Cursor != DefaultTapeSize-1 || vm.Cell() != 1 {
		t.Fatalf("got cursor %d", vm.Cursor)
	}
}

func TestNarrowCursor(t *testing.T) {
	vm, err := NewVM(Compile("<+"+strings.Repeat(">", 256)), "", DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := vm.RunContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if vm.Cursor != 255 || vm.Tape[255] != 1 {
		t.Fatalf("got cursor %d", vm.Cursor)
	}
	for i := 256; i < len(vm.Tape); i++ {
		if vm.Tape[i] != 0 {
			t.Fatalf("cell %d touched", i)
		}
	}
}

func TestStepLimit(t *testing.T) {
	config := DefaultConfig()
	config.MaxSteps = 10
	_, err := RunContext(context.Background(), "+[]", "", config)
	if !errors.Is(err, ErrStepLimit) {
		t.Fatalf("got %v", err)
	}

	// a program finishing within the budget is not affected
	output, err := RunContext(context.Background(), "+++.", "", config)
	if err != nil {
		t.Fatal(err)
	}
	if output != "\x03" {
		t.Fatalf("got %q", output)
	}
}

func TestCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunContext(ctx, "+.", "", DefaultConfig())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}

	ctx, cancel = context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = RunContext(ctx, "+[]", "", DefaultConfig())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v", err)
	}
}

func TestYield(t *testing.T) {
	config := DefaultConfig()
	config.YieldInterval = 3
	vm, err := NewVM(Compile(strings.Repeat("+", 10)+"."), "", config)
	if err != nil {
		t.Fatal(err)
	}

	n := 0
	for interrupt, err := range vm.Run {
		if err != nil {
			t.Fatal(err)
		}
		if interrupt != InterruptYield {
			t.Fatalf("got %+v", interrupt)
		}
		n++
	}
	if n != 3 {
		t.Fatalf("got %d yields", n)
	}
	if !vm.Done() || string(vm.Output) != "\x0a" {
		t.Fatalf("got %q", vm.Output)
	}
}

func TestResume(t *testing.T) {
	config := DefaultConfig()
	config.YieldInterval = 5
	vm, err := NewVM(Compile(bfconfigs.Greeting), "", config)
	if err != nil {
		t.Fatal(err)
	}

	stops := 0
	for !vm.Done() {
		for _, err := range vm.Run {
			if err != nil {
				t.Fatal(err)
			}
			// stop at every interrupt
			stops++
			break
		}
	}
	if stops == 0 {
		t.Fatal("should stop")
	}
	if string(vm.Output) != "Hello World!\n" {
		t.Fatalf("got %q", vm.Output)
	}
	if vm.Steps != 390 {
		t.Fatalf("got %d steps", vm.Steps)
	}
}

func TestNewVMConfig(t *testing.T) {
	for _, config := range []Config{
		{TapeSize: -1},
		{TapeSize: 255},
		{Loops: 9},
		{MaxSteps: -1},
		{YieldInterval: -1},
	} {
		if _, err := NewVM(Compile(""), "", config); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%+v: got %v", config, err)
		}
	}

	vm, err := NewVM(Compile(""), "", Config{})
	if err != nil {
		t.Fatal(err)
	}
	if len(vm.Tape) != DefaultTapeSize {
		t.Fatalf("got %d", len(vm.Tape))
	}

	vm, err = NewVM(Compile(">>>>"), "", Config{TapeSize: 3, WideCursor: true})
	if err != nil {
		t.Fatal(err)
	}
	if err := vm.RunContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if vm.Cursor != 1 {
		t.Fatalf("got %d", vm.Cursor)
	}
}

func TestLoadProgram(t *testing.T) {
	vm, err := NewVM(Compile(",+"), "a", DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := vm.RunContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	vm.LoadProgram(Compile(".,."))
	vm.Feed("z")
	if err := vm.RunContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if string(vm.Output) != "bz" {
		t.Fatalf("got %q", vm.Output)
	}
}

func TestLatin1(t *testing.T) {
	if s := Latin1("\xe9A"); s != "éA" {
		t.Fatalf("got %q", s)
	}
	if s := Latin1(""); s != "" {
		t.Fatalf("got %q", s)
	}
}

func BenchmarkGreeting(b *testing.B) {
	for b.Loop() {
		if _, err := Run(bfconfigs.Greeting, ""); err != nil {
			b.Fatal(err)
		}
	}
}
