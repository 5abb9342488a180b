package bfconfigs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/tapevm/configs"
	"github.com/reusee/tapevm/logs"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}
