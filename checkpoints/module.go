package checkpoints

import (
	"github.com/reusee/dscope"
	"github.com/reusee/tapevm/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

type NewStore func(path string) *Store

func (Module) NewStore(
	logger logs.Logger,
) NewStore {
	return func(path string) *Store {
		return &Store{
			FilePath: path,
			Logger:   logger,
		}
	}
}
