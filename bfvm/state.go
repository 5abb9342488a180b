package bfvm

import "slices"

// State returns the VM registers and the non-zero tape cells, keyed by name.
func (v *VM) State() map[string]any {
	cells := make(map[int]int)
	for i, c := range v.Tape {
		if c != 0 {
			cells[i] = int(c)
		}
	}
	return map[string]any{
		"program":   v.Program.Source,
		"ip":        v.IP,
		"cursor":    v.Cursor,
		"cell":      int(v.Tape[v.Cursor]),
		"cells":     cells,
		"loops":     slices.Clone(v.Loops),
		"input":     string(v.Input),
		"input_pos": v.InputPos,
		"output":    string(v.Output),
		"steps":     v.Steps,
		"loop_mode": v.Config.Loops.String(),
	}
}
