package checkpoints

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/reusee/tapevm/bfvm"
	"github.com/reusee/tapevm/logs"
)

var ErrLocked = errors.New("checkpoint locked")

// Checkpoint is the on-disk form of a suspended VM.
type Checkpoint struct {
	ID    string    `json:"id"`
	Saved time.Time `json:"saved"`
	IP    int       `json:"ip"`
	Steps int64     `json:"steps"`
	// State is the VM as written by bfvm.VM.Save.
	State []byte `json:"state"`
}

// Store keeps one checkpoint in a file. Concurrent access from other
// processes is excluded by a lock file next to it.
type Store struct {
	FilePath string
	Logger   logs.Logger
}

func (s *Store) lock() (unlock func(), err error) {
	lockFile := s.FilePath + ".lock"
	f, err := os.OpenFile(lockFile, os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrLocked, lockFile)
		}
		return nil, err
	}
	f.Close()
	return func() {
		os.Remove(lockFile)
	}, nil
}

// Save writes vm to the file, keeping the checkpoint id if one exists.
func (s *Store) Save(vm *bfvm.VM) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	id := uuid.NewString()
	if prev, err := s.read(); err == nil {
		id = prev.ID
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	buf := new(bytes.Buffer)
	if err := vm.Save(buf); err != nil {
		return err
	}
	data, err := json.MarshalIndent(Checkpoint{
		ID:    id,
		Saved: time.Now(),
		IP:    vm.IP,
		Steps: vm.Steps,
		State: buf.Bytes(),
	}, "", "  ")
	if err != nil {
		return err
	}

	// atomic write
	tmp := s.FilePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.FilePath); err != nil {
		return err
	}

	s.Logger.Info("checkpoint saved",
		"path", s.FilePath,
		"id", id,
		"ip", vm.IP,
		"steps", vm.Steps,
	)
	return nil
}

// Load restores the VM in the file. The error wraps os.ErrNotExist if there is none.
func (s *Store) Load() (*bfvm.VM, *Checkpoint, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, nil, err
	}
	defer unlock()

	checkpoint, err := s.read()
	if err != nil {
		return nil, nil, err
	}
	vm, err := bfvm.Load(bytes.NewReader(checkpoint.State))
	if err != nil {
		return nil, nil, fmt.Errorf("checkpoint %s: %w", checkpoint.ID, err)
	}

	s.Logger.Info("checkpoint loaded",
		"path", s.FilePath,
		"id", checkpoint.ID,
		"ip", vm.IP,
		"steps", vm.Steps,
	)
	return vm, checkpoint, nil
}

// Remove deletes the checkpoint, typically after the VM it holds has finished.
func (s *Store) Remove() error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if err := os.Remove(s.FilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) read() (*Checkpoint, error) {
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		return nil, err
	}
	var checkpoint Checkpoint
	if err := json.Unmarshal(data, &checkpoint); err != nil {
		return nil, fmt.Errorf("checkpoint %s: %w", s.FilePath, err)
	}
	return &checkpoint, nil
}
