package grid

import "fmt"

// The board is a 28x28 diamond carved out of a 30x30 square. The one-cell
// padding ring guarantees every playable cell has four in-array neighbours.
const (
	Size     = 30
	Midline  = 15 // first enemy row
	MinCoord = 1
	MaxCoord = Size - 2

	borderLen   = 14
	borderCount = 4
)

// Side is one half of the board.
type Side int8

const (
	SideFriendly Side = iota
	SideEnemy
)

func (s Side) String() string {
	if s == SideEnemy {
		return "enemy"
	}
	return "friendly"
}

// SideOf returns the half of the board a cell lies in.
func SideOf(c Cell) Side {
	if c.Y < Midline {
		return SideFriendly
	}
	return SideEnemy
}

// InBounds reports whether c indexes the padded square.
func InBounds(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < Size && c.Y < Size
}

// Playable reports whether c lies inside the diamond.
func Playable(c Cell) bool {
	if !InBounds(c) {
		return false
	}
	i := min(c.X, Size-1-c.X)
	return i >= 1 && c.Y >= Midline-i && c.Y <= Midline-1+i
}

// LateralDistance is the distance from c to the nearer of the left and right bounds.
func LateralDistance(c Cell) int {
	return min(c.X-MinCoord, MaxCoord-c.X)
}

// Border identifies one of the four diagonal edges of the diamond.
type Border int8

const (
	NoBorder Border = iota - 1
	TopRight
	TopLeft
	BottomLeft
	BottomRight
)

var borderNames = [borderCount]string{"top-right", "top-left", "bottom-left", "bottom-right"}

// Borders lists every edge in canonical order.
var Borders = [borderCount]Border{TopRight, TopLeft, BottomLeft, BottomRight}

var borderCells = func() [borderCount][]Cell {
	var out [borderCount][]Cell
	for k := 1; k <= borderLen; k++ {
		out[TopRight] = append(out[TopRight], Cell{X: Size - 1 - k, Y: borderLen + k})
		out[TopLeft] = append(out[TopLeft], Cell{X: k, Y: borderLen + k})
		out[BottomLeft] = append(out[BottomLeft], Cell{X: Midline - k, Y: k})
		out[BottomRight] = append(out[BottomRight], Cell{X: borderLen + k, Y: k})
	}
	return out
}()

// quadrant signs: the direction "further into" the edge's corner of the board.
var quadrants = [borderCount]Dir{
	TopRight:    {DX: 1, DY: 1},
	TopLeft:     {DX: -1, DY: 1},
	BottomLeft:  {DX: -1, DY: -1},
	BottomRight: {DX: 1, DY: -1},
}

var preferred = [borderCount][2]Dir{
	TopRight:    {Up, Right},
	TopLeft:     {Up, Left},
	BottomLeft:  {Down, Left},
	BottomRight: {Down, Right},
}

func (b Border) valid() bool { return b >= TopRight && b <= BottomRight }

func (b Border) String() string {
	if !b.valid() {
		return "none"
	}
	return borderNames[b]
}

// ParseBorder is the inverse of Border.String.
func ParseBorder(s string) (Border, error) {
	for _, b := range Borders {
		if borderNames[b] == s {
			return b, nil
		}
	}
	return NoBorder, fmt.Errorf("unknown border %q", s)
}

// Cells returns the 14 cells of the edge. The slice is shared; do not modify it.
func (b Border) Cells() []Cell {
	if !b.valid() {
		return nil
	}
	return borderCells[b]
}

// Side returns the half of the board the edge belongs to.
func (b Border) Side() Side {
	if b == TopRight || b == TopLeft {
		return SideEnemy
	}
	return SideFriendly
}

// Quadrant returns the sign pair pointing deeper into the edge's corner.
func (b Border) Quadrant() Dir {
	if !b.valid() {
		return Dir{}
	}
	return quadrants[b]
}

// Preferred returns the two directions used as the last movement tie-break.
func (b Border) Preferred() [2]Dir {
	if !b.valid() {
		return [2]Dir{}
	}
	return preferred[b]
}

// Contains reports whether c is one of the edge cells.
func (b Border) Contains(c Cell) bool {
	for _, e := range b.Cells() {
		if e == c {
			return true
		}
	}
	return false
}

// OnEdge reports whether c lies on either edge owned by side.
func OnEdge(side Side, c Cell) bool {
	for _, b := range Borders {
		if b.Side() == side && b.Contains(c) {
			return true
		}
	}
	return false
}

// TargetFor picks the edge a mobile unit spawned at c by side walks to: the
// diagonally opposite edge on the other half.
func TargetFor(side Side, c Cell) Border {
	left := c.X < Midline
	switch {
	case side == SideFriendly && left:
		return TopRight
	case side == SideFriendly:
		return TopLeft
	case left:
		return BottomRight
	default:
		return BottomLeft
	}
}
