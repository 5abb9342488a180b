package bfvm

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/tapevm/configs"
	"github.com/reusee/tapevm/logs"
	"github.com/reusee/tapevm/modes"
)

func TestModule(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		dscope.Provide(configs.NewLoader(nil, "")),
		func() logs.Writer {
			return buf
		},
	).Call(func(
		config Config,
		newVM NewVMFunc,
		execute Execute,
	) {
		if config.TapeSize != 0 || config.Loops != LoopsMatched {
			t.Fatalf("got %+v", config)
		}

		vm, err := newVM(",.", "A")
		if err != nil {
			t.Fatal(err)
		}
		if err := execute(context.Background(), vm); err != nil {
			t.Fatal(err)
		}
		if string(vm.Output) != "A" {
			t.Fatalf("got %q", vm.Output)
		}

		vm, err = newVM(",", "")
		if err != nil {
			t.Fatal(err)
		}
		err = execute(context.Background(), vm)
		if !errors.Is(err, ErrInputExhausted) {
			t.Fatalf("got %v", err)
		}
		if !strings.Contains(err.Error(), "span: ") {
			t.Fatalf("got %v", err)
		}
	})

	if !strings.Contains(buf.String(), "run fault") {
		t.Fatalf("got %q", buf.String())
	}
}
