package grid

// Cell is a coordinate on the padded board.
type Cell struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Dir is a unit step between 4-adjacent cells.
type Dir struct{ DX, DY int }

var (
	Up    = Dir{DX: 0, DY: 1}
	Down  = Dir{DX: 0, DY: -1}
	Right = Dir{DX: 1, DY: 0}
	Left  = Dir{DX: -1, DY: 0}
)

// Neighbours lists the four step directions in expansion order.
var Neighbours = [4]Dir{Right, Left, Up, Down}

func (c Cell) Add(d Dir) Cell { return Cell{X: c.X + d.DX, Y: c.Y + d.DY} }

// L1 is the Manhattan distance between two cells.
func (c Cell) L1(o Cell) int { return abs(c.X-o.X) + abs(c.Y-o.Y) }

func (c Cell) index() int { return c.X*Size + c.Y }

// Vertical reports whether the step has no horizontal component.
func (d Dir) Vertical() bool { return d.DX == 0 }

func (d Dir) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Right:
		return "right"
	case Left:
		return "left"
	}
	return "none"
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
