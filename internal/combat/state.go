package combat

import (
	"slices"

	"lanesim/internal/grid"
)

// State is everything a tick reads and writes.
type State struct {
	Tick   int
	Health [2]int
	Cores  [2]int
	Bits   [2]int
	Units  [2][]*Unit
}

func newState(health, cores, bits int) *State {
	return &State{
		Health: [2]int{health, health},
		Cores:  [2]int{cores, cores},
		Bits:   [2]int{bits, bits},
	}
}

// Grid classifies the board from the structures currently standing.
func (s *State) Grid() *grid.Grid {
	g := grid.NewGrid()
	for _, team := range s.Units {
		for _, u := range team {
			if u.Kind.Structure() {
				g.Block(u.Pos)
			}
		}
	}
	return g
}

// structureAt reports whether any structure of either team holds c.
func (s *State) structureAt(c grid.Cell) bool {
	for _, team := range s.Units {
		for _, u := range team {
			if u.Kind.Structure() && u.Pos == c {
				return true
			}
		}
	}
	return false
}

// prune drops every unit with non-positive stability, keeping order, and
// returns the removed units.
func (s *State) prune() []*Unit {
	var removed []*Unit
	for t := range s.Units {
		s.Units[t] = slices.DeleteFunc(s.Units[t], func(u *Unit) bool {
			if u.Alive() {
				return false
			}
			removed = append(removed, u)
			return true
		})
	}
	return removed
}

// UnitRecord is the snapshot view of a unit.
type UnitRecord struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Pos       grid.Cell `json:"pos"`
	Stability int       `json:"stability"`
}

// Snapshot is a value copy of the state after a tick. It shares nothing with
// the engine.
type Snapshot struct {
	Tick           int          `json:"tick"`
	FriendlyHealth int          `json:"friendly_health"`
	EnemyHealth    int          `json:"enemy_health"`
	FriendlyCores  int          `json:"friendly_cores"`
	EnemyCores     int          `json:"enemy_cores"`
	FriendlyBits   int          `json:"friendly_bits"`
	EnemyBits      int          `json:"enemy_bits"`
	FriendlyUnits  []UnitRecord `json:"friendly_units"`
	EnemyUnits     []UnitRecord `json:"enemy_units"`
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Tick:           s.Tick,
		FriendlyHealth: s.Health[Friendly],
		EnemyHealth:    s.Health[Enemy],
		FriendlyCores:  s.Cores[Friendly],
		EnemyCores:     s.Cores[Enemy],
		FriendlyBits:   s.Bits[Friendly],
		EnemyBits:      s.Bits[Enemy],
		FriendlyUnits:  records(s.Units[Friendly]),
		EnemyUnits:     records(s.Units[Enemy]),
	}
}

func records(units []*Unit) []UnitRecord {
	out := make([]UnitRecord, 0, len(units))
	for _, u := range units {
		out = append(out, UnitRecord{
			ID:        u.ID,
			Name:      u.Name,
			Kind:      u.Kind.String(),
			Pos:       u.Pos,
			Stability: u.Stability,
		})
	}
	return out
}

// Units returns the records of the named team ("friendly" or "enemy").
func (s Snapshot) Units(team string) []UnitRecord {
	t, err := ParseTeam(team)
	if err != nil {
		return nil
	}
	if t == Enemy {
		return s.EnemyUnits
	}
	return s.FriendlyUnits
}

// Count returns how many units of the team match name. name may be a catalog
// name or a kind name; an empty name counts everything.
func (s Snapshot) Count(team, name string) int {
	n := 0
	for _, r := range s.Units(team) {
		if name == "" || r.Name == name || r.Kind == name {
			n++
		}
	}
	return n
}

// CountAt is Count restricted to one cell.
func (s Snapshot) CountAt(team, name string, x, y int) int {
	n := 0
	for _, r := range s.Units(team) {
		if (r.Name == name || r.Kind == name) && r.Pos.X == x && r.Pos.Y == y {
			n++
		}
	}
	return n
}

// At reports whether a matching unit stands on (x, y).
func (s Snapshot) At(team, name string, x, y int) bool {
	return s.CountAt(team, name, x, y) > 0
}
