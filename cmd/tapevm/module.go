package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/tapevm/bfvm"
	"github.com/reusee/tapevm/checkpoints"
	"github.com/reusee/tapevm/debugs"
)

type Module struct {
	dscope.Module
	VM          bfvm.Module
	Checkpoints checkpoints.Module
	Debugs      debugs.Module
}
