package combat

import (
	"fmt"
	"math"

	"lanesim/internal/grid"
)

type moveResult int8

const (
	stayed moveResult = iota
	moved
	scored
	selfDestructed
)

// advance runs one tick of the movement rules for u against the fields of the
// current tick. It updates the unit in place; scoring and self-destruct only
// zero its stability, health is left to the caller.
func advance(u *Unit, fs *grid.FieldSet) (moveResult, error) {
	if !u.Kind.Mobile() {
		return stayed, nil
	}
	u.Stationary++
	if u.Stationary < u.Speed {
		return stayed, nil
	}
	u.Stationary = 0

	field := fs.Border(u.Target)
	if field == nil {
		return stayed, fmt.Errorf("%s has no target edge", u)
	}
	switch field.At(u.Pos) {
	case 0:
		u.Stability = 0
		return scored, nil
	case grid.Unreachable:
		dest := deepestReachable(fs.Grid(), u.Pos, u.Target)
		f, err := fs.Toward(dest)
		if err != nil {
			return stayed, fmt.Errorf("self-destruct route for %s: %w", u, err)
		}
		if f.At(u.Pos) == 0 {
			u.Stability = 0
			return selfDestructed, nil
		}
		field = f
	}

	dir, ok, err := chooseStep(u, field, fs.Grid())
	if err != nil || !ok {
		return stayed, err
	}
	u.Pos = u.Pos.Add(dir)
	u.PrevMove = dir
	u.HasMoved = true
	return moved, nil
}

// deepestReachable picks the cell of from's region furthest into the target
// edge's quadrant: y first, then x, each in the quadrant's direction.
func deepestReachable(g *grid.Grid, from grid.Cell, target grid.Border) grid.Cell {
	q := target.Quadrant()
	best := from
	for _, c := range grid.Region(g, from) {
		by, cy := best.Y*q.DY, c.Y*q.DY
		if cy > by || (cy == by && c.X*q.DX > best.X*q.DX) {
			best = c
		}
	}
	return best
}

// chooseStep applies the neighbour selection and tie-break rules. ok is false
// when no neighbour is passable.
func chooseStep(u *Unit, f *grid.Field, g *grid.Grid) (grid.Dir, bool, error) {
	best := math.MaxInt
	var cands []grid.Dir
	for _, d := range grid.Neighbours {
		n := u.Pos.Add(d)
		if !g.Passable(n) {
			continue
		}
		switch v := f.At(n); {
		case v < best:
			best = v
			cands = append(cands[:0], d)
		case v == best:
			cands = append(cands, d)
		}
	}
	switch len(cands) {
	case 0:
		return grid.Dir{}, false, nil
	case 1:
		return cands[0], true, nil
	}

	var pool []grid.Dir
	if !u.HasMoved {
		pool = filterDirs(cands, grid.Dir.Vertical)
	} else {
		wasVertical := u.PrevMove.Vertical()
		pool = filterDirs(cands, func(d grid.Dir) bool { return d.Vertical() != wasVertical })
	}
	if len(pool) == 1 {
		return pool[0], true, nil
	}
	if len(pool) == 0 {
		pool = cands
	}
	for _, p := range u.Target.Preferred() {
		for _, d := range pool {
			if d == p {
				return d, true, nil
			}
		}
	}
	return grid.Dir{}, false, fmt.Errorf("%s candidates %v: %w", u, pool, ErrTieBreak)
}

func filterDirs(dirs []grid.Dir, keep func(grid.Dir) bool) []grid.Dir {
	var out []grid.Dir
	for _, d := range dirs {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}
