package grid

// CellState classifies a cell for pathing.
type CellState uint8

const (
	OutOfBounds CellState = iota
	Empty
	Structure
)

func (s CellState) String() string {
	switch s {
	case Empty:
		return "empty"
	case Structure:
		return "structure"
	}
	return "out-of-bounds"
}

var carved = func() [Size * Size]CellState {
	var cells [Size * Size]CellState
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			c := Cell{X: x, Y: y}
			if Playable(c) {
				cells[c.index()] = Empty
			}
		}
	}
	return cells
}()

// Grid is the per-tick classification of every cell. Only structures block.
type Grid struct {
	cells [Size * Size]CellState
}

// NewGrid returns an empty diamond.
func NewGrid() *Grid {
	return &Grid{cells: carved}
}

// At classifies c; anything off the padded square is OutOfBounds.
func (g *Grid) At(c Cell) CellState {
	if !InBounds(c) {
		return OutOfBounds
	}
	return g.cells[c.index()]
}

// Passable reports whether a mobile unit may stand on c.
func (g *Grid) Passable(c Cell) bool {
	return g.At(c) == Empty
}

// Block marks c as held by a structure. Cells outside the diamond are ignored.
func (g *Grid) Block(c Cell) {
	if g.At(c) == OutOfBounds {
		return
	}
	g.cells[c.index()] = Structure
}

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	cp := *g
	return &cp
}
