package grid

import (
	"errors"
	"fmt"
)

// Unreachable marks cells with no path to the field's sources.
const Unreachable = 1<<30 - 1

// ErrOccupiedTarget is returned when a field is requested toward a cell a
// mobile unit can never stand on.
var ErrOccupiedTarget = errors.New("target cell is not passable")

// Field holds the minimum 4-connected step count from every cell to a source set.
type Field struct {
	dist [Size * Size]int
}

func newField() *Field {
	f := &Field{}
	for i := range f.dist {
		f.dist[i] = Unreachable
	}
	return f
}

// At returns the distance at c, Unreachable when off the board or cut off.
func (f *Field) At(c Cell) int {
	if !InBounds(c) {
		return Unreachable
	}
	return f.dist[c.index()]
}

// Reachable reports whether c has a finite distance.
func (f *Field) Reachable(c Cell) bool {
	return f.At(c) < Unreachable
}

// BuildBorderField seeds every free cell of b at distance 0. When all seeds are
// blocked the result is unreachable everywhere.
func BuildBorderField(g *Grid, b Border) *Field {
	f := newField()
	queue := make([]Cell, 0, Size*Size)
	for _, c := range b.Cells() {
		if !g.Passable(c) {
			continue
		}
		f.dist[c.index()] = 0
		queue = append(queue, c)
	}
	f.flood(g, queue)
	return f
}

// BuildCellField computes distances toward a single target cell.
func BuildCellField(g *Grid, target Cell) (*Field, error) {
	if !g.Passable(target) {
		return nil, fmt.Errorf("field toward (%d,%d) [%s]: %w", target.X, target.Y, g.At(target), ErrOccupiedTarget)
	}
	f := newField()
	f.dist[target.index()] = 0
	f.flood(g, []Cell{target})
	return f, nil
}

// flood runs a breadth-first expansion from the seeded queue. A cell is set
// once, the first time it is reached.
func (f *Field) flood(g *Grid, queue []Cell) {
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		next := f.dist[cur.index()] + 1
		for _, d := range Neighbours {
			n := cur.Add(d)
			if !g.Passable(n) || f.dist[n.index()] <= next {
				continue
			}
			f.dist[n.index()] = next
			queue = append(queue, n)
		}
	}
}

// Region returns every passable cell connected to from, in breadth-first order
// starting with from itself. It is empty when from is not passable.
func Region(g *Grid, from Cell) []Cell {
	if !g.Passable(from) {
		return nil
	}
	var seen [Size * Size]bool
	seen[from.index()] = true
	out := []Cell{from}
	for head := 0; head < len(out); head++ {
		for _, d := range Neighbours {
			n := out[head].Add(d)
			if !g.Passable(n) || seen[n.index()] {
				continue
			}
			seen[n.index()] = true
			out = append(out, n)
		}
	}
	return out
}
