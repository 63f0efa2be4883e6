package combat

import (
	"fmt"
	"strings"

	"lanesim/internal/grid"
)

// Team owns one half of the board.
type Team int8

const (
	Friendly Team = iota
	Enemy
)

// Teams lists both teams in resolution order.
var Teams = [2]Team{Friendly, Enemy}

func (t Team) String() string {
	if t == Enemy {
		return "enemy"
	}
	return "friendly"
}

func (t Team) Opponent() Team { return 1 - t }

// Side is the half of the board the team defends.
func (t Team) Side() grid.Side {
	if t == Enemy {
		return grid.SideEnemy
	}
	return grid.SideFriendly
}

// ParseTeam accepts "friendly"/"enemy" and the short forms "s"/"a".
func ParseTeam(s string) (Team, error) {
	switch strings.ToLower(s) {
	case "friendly", "f", "s":
		return Friendly, nil
	case "enemy", "e", "a":
		return Enemy, nil
	}
	return Friendly, fmt.Errorf("unknown team %q", s)
}

// Kind is a unit type id. 1-3 are mobile, 4-6 structures.
type Kind int8

const (
	Scout Kind = iota + 1
	Demolisher
	Interceptor
	Wall
	Support
	Turret
)

var kindNames = [...]string{"", "scout", "demolisher", "interceptor", "wall", "support", "turret"}

func (k Kind) Valid() bool { return k >= Scout && k <= Turret }

func (k Kind) Mobile() bool    { return k >= Scout && k <= Interceptor }
func (k Kind) Structure() bool { return k >= Wall && k <= Turret }

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

func parseKind(s string) (Kind, bool) {
	for k := Scout; k <= Turret; k++ {
		if kindNames[k] == s {
			return k, true
		}
	}
	return 0, false
}

// Unit is a live piece on the board. Stability > 0 while it sits in a
// collection between ticks.
type Unit struct {
	ID        int
	Name      string
	Kind      Kind
	Team      Team
	Pos       grid.Cell
	Stability int

	Range  int
	Damage int
	Speed  int

	// Target is NoBorder for structures.
	Target     grid.Border
	PrevMove   grid.Dir
	HasMoved   bool
	Stationary int
}

func (u *Unit) Alive() bool { return u.Stability > 0 }

func (u *Unit) String() string {
	return fmt.Sprintf("%s %s#%d@(%d,%d)", u.Team, u.Name, u.ID, u.Pos.X, u.Pos.Y)
}
